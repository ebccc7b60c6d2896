package youthprofile

import "github.com/delta94/youth-membership-admin-ui/internal/platform/catalog"

// Choice is an explicit yes/no answer. The zero value means the question
// has not been answered, which is never a valid submission.
type Choice string

// Choice values.
const (
	ChoiceUnset Choice = ""
	ChoiceTrue  Choice = "true"
	ChoiceFalse Choice = "false"
)

// ChoiceOf converts a stored boolean back into an answered Choice.
func ChoiceOf(b bool) Choice {
	if b {
		return ChoiceTrue
	}
	return ChoiceFalse
}

// Bool returns the answer and whether the choice was answered at all.
func (c Choice) Bool() (value, ok bool) {
	switch c {
	case ChoiceTrue:
		return true, true
	case ChoiceFalse:
		return false, true
	default:
		return false, false
	}
}

// ProfileRecord is a complete youth membership application or renewal as
// submitted by an administrator. It is submitted all-or-nothing.
//
// Addresses holds the secondary addresses in display order; the position of an
// entry is also its position in ErrorReport.Addresses. Which address is primary
// is decided by field, never by AddressEntry.Primary.
type ProfileRecord struct {
	FirstName          string         `json:"firstName"          validate:"notblank"`
	LastName           string         `json:"lastName"           validate:"notblank"`
	PrimaryAddress     AddressEntry   `json:"primaryAddress"`
	Addresses          []AddressEntry `json:"addresses"          validate:"dive"`
	Email              string         `json:"email"              validate:"notblank,emailaddr"`
	Phone              string         `json:"phone"              validate:"notblank,phone"`
	BirthDate          string         `json:"birthDate"          validate:"notblank,calendardate,notfuture,maxage"`
	ProfileLanguage    string         `json:"profileLanguage"    validate:"language"`
	LanguageAtHome     string         `json:"languageAtHome"     validate:"language"`
	SchoolName         string         `json:"schoolName"`
	SchoolClass        string         `json:"schoolClass"`
	PhotoUsageApproved Choice         `json:"photoUsageApproved" validate:"choice"`
	ApproverFirstName  string         `json:"approverFirstName"  validate:"notblank"`
	ApproverLastName   string         `json:"approverLastName"   validate:"notblank"`
	ApproverEmail      string         `json:"approverEmail"      validate:"notblank,emailaddr"`
	ApproverPhone      string         `json:"approverPhone"      validate:"notblank,phone"`
}

// NewRecord returns the blank record a new registration starts from: the
// primary address is in country, both languages are Finnish, and the photo
// usage question is left unanswered.
func NewRecord(country string) ProfileRecord {
	return ProfileRecord{
		PrimaryAddress:  NewAddress(country, true),
		Addresses:       []AddressEntry{},
		ProfileLanguage: catalog.Finnish,
		LanguageAtHome:  catalog.Finnish,
	}
}
