package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
)

func TestMakeIsDeterministic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Laptops", "laptops"},
		{"Gaming Laptops", "gaming-laptops"},
		{"  Hello,   World!  ", "hello-world"},
		{"Ноутбуки", "noutbuki"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
			assert.Equal(t, Make(tt.in), Make(tt.in))
		})
	}
}

func TestResolvePrefersExplicit(t *testing.T) {
	explicit := "custom-slug"

	s, err := Resolve(&explicit, "Something Else", 100)

	require.NoError(t, err)
	assert.Equal(t, "custom-slug", s)
}

func TestResolveRejectsMalformedExplicit(t *testing.T) {
	explicit := "Not A Slug"

	_, err := Resolve(&explicit, "x", 100)

	assert.True(t, apperror.IsValidation(err))
}

func TestResolveDerivesAndTruncates(t *testing.T) {
	s, err := Resolve(nil, "aaaa bbbb cccc", 10)

	require.NoError(t, err)
	assert.Equal(t, "aaaa-bbbb", s)
}

func TestResolveEmptyDerivedSlugFails(t *testing.T) {
	_, err := Resolve(nil, "!!!", 100)

	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
