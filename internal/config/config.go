// Package config loads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/delta94/youth-membership-admin-ui/internal/youthprofile"
)

// Store backends.
const (
	StoreFirestore = "firestore"
	StoreMemory    = "memory"
)

// Config is the validated server configuration.
type Config struct {
	Port            string   `validate:"required,numeric"`
	LogLevel        string   `validate:"oneof=debug info warn error"`
	ProjectID       string   `validate:"required"`
	CredentialsFile string   `validate:"omitempty,file"`
	Store           string   `validate:"oneof=firestore memory"`
	AdminCountry    string   `validate:"iso3166_1_alpha2"`
	CatalogLocale   string   `validate:"bcp47_language_tag"`
	AllowedOrigins  []string `validate:"min=1,dive,required"`

	EmailPattern         string `validate:"required"`
	PhonePattern         string `validate:"required"`
	PostalCodePattern    string `validate:"required"`
	BirthDateMaxAgeYears int    `validate:"gt=0"`
}

// Load reads an optional .env file, then the environment. Variables already
// set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return fromEnv(os.LookupEnv)
}

func fromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	maxAge, err := strconv.Atoi(get("BIRTH_DATE_MAX_AGE_YEARS", strconv.Itoa(youthprofile.DefaultMaxAgeYears)))
	if err != nil {
		return nil, fmt.Errorf("BIRTH_DATE_MAX_AGE_YEARS: %w", err)
	}

	cfg := &Config{
		Port:                 get("PORT", "8080"),
		LogLevel:             strings.ToLower(get("LOG_LEVEL", "info")),
		ProjectID:            get("FIREBASE_PROJECT_ID", get("GOOGLE_CLOUD_PROJECT", "")),
		CredentialsFile:      get("GOOGLE_APPLICATION_CREDENTIALS", ""),
		Store:                strings.ToLower(get("STORE", StoreFirestore)),
		AdminCountry:         strings.ToUpper(get("ADMIN_COUNTRY", "FI")),
		CatalogLocale:        get("CATALOG_LOCALE", "fi"),
		AllowedOrigins:       splitList(get("CORS_ALLOWED_ORIGINS", "*")),
		EmailPattern:         get("EMAIL_PATTERN", youthprofile.DefaultEmailPattern),
		PhonePattern:         get("PHONE_PATTERN", youthprofile.DefaultPhonePattern),
		PostalCodePattern:    get("POSTAL_CODE_PATTERN", youthprofile.DefaultPostalCodePattern),
		BirthDateMaxAgeYears: maxAge,
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Rules returns the validation rules configured for youth profiles.
func (c *Config) Rules() youthprofile.Rules {
	return youthprofile.Rules{
		EmailPattern:      c.EmailPattern,
		PhonePattern:      c.PhonePattern,
		PostalCodePattern: c.PostalCodePattern,
		MaxAgeYears:       c.BirthDateMaxAgeYears,
	}
}

// Locale returns the language catalog labels are rendered in.
func (c *Config) Locale() language.Tag {
	return language.Make(c.CatalogLocale)
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
