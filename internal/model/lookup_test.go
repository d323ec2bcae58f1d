package model_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

func TestParseLookupKey(t *testing.T) {
	id := uuid.MustParse("0190a6f2-7d3b-7c4e-9a1f-2b3c4d5e6f70")

	tests := []struct {
		name  string
		input string
		want  model.LookupKey
	}{
		{name: "canonical uuid", input: id.String(), want: model.ByID{ID: id}},
		{name: "upper case uuid", input: strings.ToUpper(id.String()), want: model.ByID{ID: id}},
		{name: "title", input: "Men's Chill Crew Neck", want: model.ByTerm{Term: "Men's Chill Crew Neck"}},
		{name: "slug", input: "mens_chill_crew_neck", want: model.ByTerm{Term: "mens_chill_crew_neck"}},
		{name: "undashed uuid", input: strings.ReplaceAll(id.String(), "-", ""), want: model.ByTerm{Term: strings.ReplaceAll(id.String(), "-", "")}},
		{name: "urn uuid", input: "urn:uuid:" + id.String(), want: model.ByTerm{Term: "urn:uuid:" + id.String()}},
		{name: "empty", input: "", want: model.ByTerm{Term: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.ParseLookupKey(tt.input))
		})
	}
}

func TestParseLookupKey_Properties(t *testing.T) {
	t.Run("Should resolve every generated id by id", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			var id uuid.UUID
			copy(id[:], rapid.SliceOfN(rapid.Byte(), 16, 16).Draw(t, "id"))

			key, ok := model.ParseLookupKey(id.String()).(model.ByID)
			if !ok {
				t.Fatalf("expected ByID for %s", id)
			}
			if key.ID != id {
				t.Fatalf("got %s, want %s", key.ID, id)
			}
		})
	})

	t.Run("Should keep non-uuid input as term unchanged", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			s := rapid.StringMatching(`[a-zA-Z0-9 _'-]{0,35}`).Draw(t, "term")

			key, ok := model.ParseLookupKey(s).(model.ByTerm)
			if !ok {
				t.Fatalf("expected ByTerm for %q", s)
			}
			if key.Term != s {
				t.Fatalf("got %q, want %q", key.Term, s)
			}
		})
	})
}
