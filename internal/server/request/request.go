package request

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// cast accepts octal and hex prefixes; ids and counts are decimal only.
var decimalInt = regexp.MustCompile(`^-?[0-9]+$`)

func parseInt64(raw string) (int64, error) {
	if !decimalInt.MatchString(raw) {
		return 0, errors.Errorf("invalid integer %q", raw)
	}
	return cast.ToInt64E(trimZeros(raw))
}

// trimZeros drops leading zeros so "010" is ten, not octal eight.
func trimZeros(raw string) string {
	sign := ""
	if raw[0] == '-' {
		sign, raw = "-", raw[1:]
	}
	i := 0
	for i < len(raw)-1 && raw[i] == '0' {
		i++
	}
	return sign + raw[i:]
}

// ID parses a positive integer path parameter.
func ID(c *gin.Context, name string) (int64, error) {
	id, err := parseInt64(c.Param(name))
	if err != nil || id <= 0 {
		return 0, errors.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// Pagination reads skip/limit with defaults; limit is capped at MaxLimit.
func Pagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = Int(c, "skip", 0)
	if err != nil {
		return 0, 0, err
	}
	limit, err = Int(c, "limit", DefaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if offset < 0 {
		return 0, 0, errors.New("skip must be >= 0")
	}
	if limit <= 0 {
		return 0, 0, errors.New("limit must be > 0")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit, nil
}

func Int(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := parseInt64(raw)
	if err != nil || v != int64(int(v)) {
		return 0, errors.Errorf("%s must be an integer", key)
	}
	return int(v), nil
}

func OptionalInt64(c *gin.Context, key string) (*int64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := parseInt64(raw)
	if err != nil {
		return nil, errors.Errorf("%s must be an integer", key)
	}
	return &v, nil
}

func Bool(c *gin.Context, key string, def bool) (bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := cast.ToBoolE(raw)
	if err != nil {
		return false, errors.Errorf("%s must be a boolean", key)
	}
	return v, nil
}

func OptionalBool(c *gin.Context, key string) (*bool, error) {
	if raw, ok := c.GetQuery(key); !ok || raw == "" {
		return nil, nil
	}
	v, err := Bool(c, key, false)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func OptionalDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errors.Errorf("%s must be a number", key)
	}
	return &v, nil
}
