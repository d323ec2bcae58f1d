package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/tuanvumaihuynh/product-catalog/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Men's Chill Crew Neck", "mens_chill_crew_neck"},
		{"  Summer Sale 2024 ", "summer_sale_2024"},
		{"already_a-slug", "already_a-slug"},
		{"Kids’ Tee", "kids_tee"},
		{"a  &&  b", "a_b"},
		{"__edge__", "edge"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range cases {
		t.Run("Should turn "+tc.in+" into "+tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, slug.Make(tc.in))
		})
	}
}

func TestMake_Properties(t *testing.T) {
	t.Run("Should be idempotent", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			s := slug.Make(rapid.String().Draw(t, "s"))
			if again := slug.Make(s); again != s {
				t.Fatalf("Make(%q) = %q", s, again)
			}
		})
	})

	t.Run("Should produce a valid slug or nothing", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			s := slug.Make(rapid.String().Draw(t, "s"))
			if s != "" && !slug.Valid(s) {
				t.Fatalf("Make produced invalid slug %q", s)
			}
		})
	})
}

func TestValid(t *testing.T) {
	assert.True(t, slug.Valid("mens_chill_crew_neck"))
	assert.True(t, slug.Valid("t-shirt-2"))
	assert.False(t, slug.Valid(""))
	assert.False(t, slug.Valid("Has Upper"))
	assert.False(t, slug.Valid("dot.ted"))
}
