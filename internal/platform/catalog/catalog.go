// Package catalog holds the closed value sets behind enumerated profile fields:
// the languages a profile can use and the countries an address can be in.
//
// A Set is built once at startup and is read-only afterwards, so it can be
// shared by concurrent validations without locking.
package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// Configuration errors. A catalog that fails to build must abort startup.
var (
	ErrEmptyCatalog   = errors.New("catalog has no entries")
	ErrEmptyValue     = errors.New("catalog entry has an empty value")
	ErrDuplicateValue = errors.New("catalog entry value is duplicated")
)

// Entry is one member of a catalog with its display label for the catalog's locale.
type Entry struct {
	Value string `json:"value" doc:"Value stored on the profile" example:"FI"`
	Label string `json:"label" doc:"Display label"               example:"Suomi"`
}

// Set is an ordered, closed set of catalog entries.
type Set struct {
	entries []Entry
	index   map[string]int
}

// New builds a Set from entries, keeping their order.
func New(entries []Entry) (*Set, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	s := &Set{
		entries: slices.Clone(entries),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range s.entries {
		if e.Value == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyValue)
		}
		if _, dup := s.index[e.Value]; dup {
			return nil, fmt.Errorf("%q: %w", e.Value, ErrDuplicateValue)
		}
		s.index[e.Value] = i
	}
	return s, nil
}

// Contains reports whether value is a member. Matching is exact and case-sensitive.
func (s *Set) Contains(value string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[value]
	return ok
}

// Label returns the display label of value.
func (s *Set) Label(value string) (string, bool) {
	if s == nil {
		return "", false
	}
	i, ok := s.index[value]
	if !ok {
		return "", false
	}
	return s.entries[i].Label, true
}

// Entries returns a copy of the entries in catalog order.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	return slices.Clone(s.entries)
}

// Len returns the number of members.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Values returns the member values in catalog order.
func (s *Set) Values() []string {
	if s == nil {
		return nil
	}
	values := make([]string, len(s.entries))
	for i, e := range s.entries {
		values[i] = e.Value
	}
	return values
}
