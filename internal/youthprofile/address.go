package youthprofile

import (
	"errors"
	"fmt"
	"slices"
)

// ErrAddressIndex is returned when removing an address at a position the list does not have.
var ErrAddressIndex = errors.New("address index out of range")

// AddressEntry is one postal address of a profile.
//
// Primary follows position: it is true for ProfileRecord.PrimaryAddress and
// false for every entry of ProfileRecord.Addresses. Validation does not read
// the flag; stores rewrite it from position before saving.
type AddressEntry struct {
	Address     string `json:"address"     validate:"notblank"`
	PostalCode  string `json:"postalCode"  validate:"notblank,postalcode"`
	City        string `json:"city"        validate:"notblank"`
	CountryCode string `json:"countryCode" validate:"country"`
	Primary     bool   `json:"primary"`
}

// NewAddress returns an empty address located in country.
func NewAddress(country string, primary bool) AddressEntry {
	return AddressEntry{CountryCode: country, Primary: primary}
}

// AppendAddress returns a copy of list with an empty secondary address in country appended.
func AppendAddress(list []AddressEntry, country string) []AddressEntry {
	out := make([]AddressEntry, len(list), len(list)+1)
	copy(out, list)
	return append(out, NewAddress(country, false))
}

// RemoveAddress returns a copy of list without the entry at i.
// Entries after i move down one position.
func RemoveAddress(list []AddressEntry, i int) ([]AddressEntry, error) {
	if i < 0 || i >= len(list) {
		return nil, fmt.Errorf("remove %d of %d: %w", i, len(list), ErrAddressIndex)
	}
	return slices.Delete(slices.Clone(list), i, i+1), nil
}
