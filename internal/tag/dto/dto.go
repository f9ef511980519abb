package dto

type TagFilters struct {
	Search     string
	ActiveOnly bool
	Offset     int
	Limit      int
}
