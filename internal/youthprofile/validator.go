package youthprofile

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/delta94/youth-membership-admin-ui/internal/platform/catalog"
	"github.com/delta94/youth-membership-admin-ui/internal/platform/timeutil"
)

// Validator decides whether a ProfileRecord may be submitted.
//
// A Validator is immutable after NewValidator returns and is safe for
// concurrent use.
type Validator struct {
	validate  *validator.Validate
	trans     ut.Translator
	countries *catalog.Set
	languages *catalog.Set
	rules     compiledRules
	now       func() time.Time
}

type options struct {
	rules Rules
	now   func() time.Time
}

// Option configures a Validator.
type Option func(*options)

// WithRules replaces the default format rules.
func WithRules(r Rules) Option {
	return func(o *options) { o.rules = r }
}

// WithClock sets the source of "today" for birth date checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// rule is one custom validation tag with its English message. Message
// placeholder {0} is the JSON field name; {1} comes from params.
type rule struct {
	tag    string
	fn     validator.Func
	msg    string
	params func() []string
}

// NewValidator builds a validator over the given catalogs. It fails only on
// configuration problems: an empty catalog or an invalid rule.
func NewValidator(countries, languages *catalog.Set, opts ...Option) (*Validator, error) {
	if countries.Len() == 0 {
		return nil, fmt.Errorf("country catalog: %w", catalog.ErrEmptyCatalog)
	}
	if languages.Len() == 0 {
		return nil, fmt.Errorf("language catalog: %w", catalog.ErrEmptyCatalog)
	}

	o := options{rules: DefaultRules(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.now == nil {
		return nil, errors.New("clock must not be nil")
	}
	compiled, err := o.rules.compile()
	if err != nil {
		return nil, err
	}

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator(english.Locale())

	v := &Validator{
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		trans:     trans,
		countries: countries,
		languages: languages,
		rules:     compiled,
		now:       o.now,
	}
	v.validate.RegisterTagNameFunc(jsonFieldName)

	for _, r := range v.ruleset() {
		if err := v.validate.RegisterValidation(r.tag, r.fn); err != nil {
			return nil, fmt.Errorf("register %s: %w", r.tag, err)
		}
		if err := v.validate.RegisterTranslation(r.tag, trans, addMessage(r.tag, r.msg), translate(r.params)); err != nil {
			return nil, fmt.Errorf("register %s message: %w", r.tag, err)
		}
	}
	return v, nil
}

// Validate checks every field of rec and returns the messages for all
// violations. It never fails: an invalid record yields a non-empty report.
func (v *Validator) Validate(rec ProfileRecord) ErrorReport {
	report := newReport(len(rec.Addresses))

	err := v.validate.Struct(rec)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return report
	}
	for _, fe := range fieldErrs {
		// Namespace is "ProfileRecord.addresses[2].city"; drop the type name.
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		report.set(strings.Split(path, "."), fe.Translate(v.trans))
	}
	return report
}

func (v *Validator) ruleset() []rule {
	return []rule{
		{
			tag: "notblank",
			fn:  validators.NotBlank,
			msg: "{0} is required",
		},
		{
			tag: "emailaddr",
			fn:  matches(v.rules.email.MatchString),
			msg: "{0} must be a valid email address",
		},
		{
			tag: "phone",
			fn:  matches(v.rules.phone.MatchString),
			msg: "{0} must be a valid phone number",
		},
		{
			tag: "postalcode",
			fn:  matches(v.rules.postalCode.MatchString),
			msg: "{0} must be a valid postal code",
		},
		{
			tag: "calendardate",
			fn: func(fl validator.FieldLevel) bool {
				_, err := timeutil.ParseDate(fl.Field().String())
				return err == nil
			},
			msg: "{0} must be a date in YYYY-MM-DD format",
		},
		{
			tag: "notfuture",
			fn:  v.dateRule(func(d, today time.Time) bool { return !d.After(today) }),
			msg: "{0} cannot be in the future",
		},
		{
			tag: "maxage",
			fn: v.dateRule(func(d, today time.Time) bool {
				return !d.Before(today.AddDate(-v.rules.maxAgeYears, 0, 0))
			}),
			msg:    "{0} cannot be more than {1} years ago",
			params: func() []string { return []string{strconv.Itoa(v.rules.maxAgeYears)} },
		},
		{
			tag: "country",
			fn:  matches(v.countries.Contains),
			msg: "{0} must be a known country code",
		},
		{
			tag:    "language",
			fn:     matches(v.languages.Contains),
			msg:    "{0} must be one of {1}",
			params: func() []string { return []string{strings.Join(v.languages.Values(), ", ")} },
		},
		{
			tag: "choice",
			fn: func(fl validator.FieldLevel) bool {
				_, ok := Choice(fl.Field().String()).Bool()
				return ok
			},
			msg: "{0} must be answered true or false",
		},
	}
}

// dateRule applies check to a parsed date field. Unparsable values pass here;
// the calendardate tag reports them.
func (v *Validator) dateRule(check func(d, today time.Time) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := timeutil.ParseDate(fl.Field().String())
		if err != nil {
			return true
		}
		return check(d, timeutil.StartOfDay(v.now()))
	}
}

func matches(ok func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	}
}

func addMessage(tag, msg string) validator.RegisterTranslationsFunc {
	return func(t ut.Translator) error {
		return t.Add(tag, msg, true)
	}
}

func translate(params func() []string) validator.TranslationFunc {
	return func(t ut.Translator, fe validator.FieldError) string {
		args := []string{fe.Field()}
		if params != nil {
			args = append(args, params()...)
		}
		msg, err := t.T(fe.Tag(), args...)
		if err != nil {
			return fe.Error()
		}
		return msg
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
