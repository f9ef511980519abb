package dto

type BrandFilters struct {
	Search     string
	ActiveOnly bool
	Offset     int
	Limit      int
}
