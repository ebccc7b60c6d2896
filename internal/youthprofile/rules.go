package youthprofile

import (
	"errors"
	"fmt"
	"regexp"
)

// Default format rules for Finnish registrations.
const (
	DefaultEmailPattern      = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	DefaultPhonePattern      = `^\+?[0-9][0-9 ()-]{3,18}[0-9]$`
	DefaultPostalCodePattern = `^[0-9]{5}$`
	DefaultMaxAgeYears       = 120
)

// Rules are the configurable format constraints of the validator.
type Rules struct {
	EmailPattern      string
	PhonePattern      string
	PostalCodePattern string
	// MaxAgeYears is how far before today a birth date may lie.
	MaxAgeYears int
}

// DefaultRules returns the rules used when none are configured.
func DefaultRules() Rules {
	return Rules{
		EmailPattern:      DefaultEmailPattern,
		PhonePattern:      DefaultPhonePattern,
		PostalCodePattern: DefaultPostalCodePattern,
		MaxAgeYears:       DefaultMaxAgeYears,
	}
}

type compiledRules struct {
	email       *regexp.Regexp
	phone       *regexp.Regexp
	postalCode  *regexp.Regexp
	maxAgeYears int
}

func (r Rules) compile() (compiledRules, error) {
	if r.MaxAgeYears <= 0 {
		return compiledRules{}, errors.New("max age years must be positive")
	}
	var (
		c   = compiledRules{maxAgeYears: r.MaxAgeYears}
		err error
	)
	if c.email, err = regexp.Compile(r.EmailPattern); err != nil {
		return compiledRules{}, fmt.Errorf("email pattern: %w", err)
	}
	if c.phone, err = regexp.Compile(r.PhonePattern); err != nil {
		return compiledRules{}, fmt.Errorf("phone pattern: %w", err)
	}
	if c.postalCode, err = regexp.Compile(r.PostalCodePattern); err != nil {
		return compiledRules{}, fmt.Errorf("postal code pattern: %w", err)
	}
	return c, nil
}
