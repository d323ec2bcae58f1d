package model

import (
	"github.com/google/uuid"
)

// LookupKey addresses a single product either by its id or by a free text term.
// The concrete type is ByID or ByTerm.
type LookupKey interface {
	isLookupKey()
}

type ByID struct {
	ID uuid.UUID
}

type ByTerm struct {
	Term string
}

func (ByID) isLookupKey()   {}
func (ByTerm) isLookupKey() {}

// ParseLookupKey returns ByID when s is a UUID in its canonical 8-4-4-4-12 form,
// and ByTerm otherwise. Braced, URN and undashed forms are treated as terms.
func ParseLookupKey(s string) LookupKey {
	if id, ok := parseCanonicalUUID(s); ok {
		return ByID{ID: id}
	}
	return ByTerm{Term: s}
}

func parseCanonicalUUID(s string) (uuid.UUID, bool) {
	if len(s) != 36 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
