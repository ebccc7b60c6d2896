package youthprofile

import (
	"github.com/delta94/youth-membership-admin-ui/internal/platform/timeutil"
	profilesvc "github.com/delta94/youth-membership-admin-ui/internal/service/youthprofile"
	yp "github.com/delta94/youth-membership-admin-ui/internal/youthprofile"
)

// Every record field is optional at the transport level. Missing values are
// reported by the validation engine together with every other problem, except
// the two languages: like a new registration form they start as FINNISH.

// Address is one postal address of a profile.
type Address struct {
	Address     string `json:"address"     required:"false" doc:"Street address"             example:"Mannerheimintie 1"`
	PostalCode  string `json:"postalCode"  required:"false" doc:"Postal code"                example:"00100"`
	City        string `json:"city"        required:"false" doc:"City"                       example:"Helsinki"`
	CountryCode string `json:"countryCode" required:"false" doc:"ISO 3166-1 alpha-2 country" example:"FI"`
	Primary     bool   `json:"primary"     required:"false" doc:"Whether this is the primary address; ignored on input"`
}

// Record is a complete youth membership application as edited by an administrator.
type Record struct {
	FirstName          string    `json:"firstName"          required:"false" doc:"First name"                                example:"Jane"`
	LastName           string    `json:"lastName"           required:"false" doc:"Last name"                                 example:"Doe"`
	PrimaryAddress     Address   `json:"primaryAddress"     required:"false" doc:"Primary address"`
	Addresses          []Address `json:"addresses"          required:"false" doc:"Secondary addresses in display order"     nullable:"true"`
	Email              string    `json:"email"              required:"false" doc:"Email address"                             example:"jane@example.com"`
	Phone              string    `json:"phone"              required:"false" doc:"Phone number"                              example:"+358401234567"`
	BirthDate          string    `json:"birthDate"          required:"false" doc:"Birth date (YYYY-MM-DD)"                   example:"2008-05-01"`
	ProfileLanguage    string    `json:"profileLanguage"    required:"false" doc:"Language used with the member"             example:"FINNISH" default:"FINNISH"`
	LanguageAtHome     string    `json:"languageAtHome"     required:"false" doc:"Language spoken at home"                   example:"FINNISH" default:"FINNISH"`
	SchoolName         string    `json:"schoolName"         required:"false" doc:"School name"                               example:"Kallion lukio"`
	SchoolClass        string    `json:"schoolClass"        required:"false" doc:"School class"                              example:"2B"`
	PhotoUsageApproved string    `json:"photoUsageApproved" required:"false" doc:"Photo usage approval, \"true\" or \"false\"" example:"false"`
	ApproverFirstName  string    `json:"approverFirstName"  required:"false" doc:"Guardian first name"                       example:"John"`
	ApproverLastName   string    `json:"approverLastName"   required:"false" doc:"Guardian last name"                        example:"Doe"`
	ApproverEmail      string    `json:"approverEmail"      required:"false" doc:"Guardian email address"                    example:"john@example.com"`
	ApproverPhone      string    `json:"approverPhone"      required:"false" doc:"Guardian phone number"                     example:"+358409876543"`
}

// YouthProfile is a stored membership.
type YouthProfile struct {
	ID               string        `json:"id"               doc:"Unique identifier"        example:"6f1c2f9e-7a0e-4b9a-9d55-2f3f0a7f5b1c"`
	MembershipNumber string        `json:"membershipNumber" doc:"Membership number"        example:"00042"`
	MembershipStatus string        `json:"membershipStatus" doc:"Membership status"        enum:"ACTIVE,RENEWING,EXPIRED"`
	Expiration       string        `json:"expiration"       doc:"Last day of membership"   format:"date" example:"2027-08-31"`
	Record           Record        `json:"record"           doc:"Profile data"`
	CreatedAt        timeutil.Time `json:"createdAt"        doc:"Creation timestamp"       example:"2026-10-18T10:30:00.000Z"`
	UpdatedAt        timeutil.Time `json:"updatedAt"        doc:"Last update timestamp"    example:"2026-10-18T10:30:00.000Z"`
}

// ValidationResult reports whether a record could be submitted as is.
type ValidationResult struct {
	Valid  bool           `json:"valid"  doc:"True when the record has no errors"`
	Errors yp.ErrorReport `json:"errors" doc:"Messages mirroring the record; addresses is index-aligned with the submitted list"`
}

func toAddressEntry(a Address) yp.AddressEntry {
	return yp.AddressEntry(a)
}

func toAddress(a yp.AddressEntry) Address {
	return Address(a)
}

func toProfileRecord(r Record) yp.ProfileRecord {
	addresses := make([]yp.AddressEntry, len(r.Addresses))
	for i, a := range r.Addresses {
		addresses[i] = toAddressEntry(a)
	}
	return yp.ProfileRecord{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		PrimaryAddress:     toAddressEntry(r.PrimaryAddress),
		Addresses:          addresses,
		Email:              r.Email,
		Phone:              r.Phone,
		BirthDate:          r.BirthDate,
		ProfileLanguage:    r.ProfileLanguage,
		LanguageAtHome:     r.LanguageAtHome,
		SchoolName:         r.SchoolName,
		SchoolClass:        r.SchoolClass,
		PhotoUsageApproved: yp.Choice(r.PhotoUsageApproved),
		ApproverFirstName:  r.ApproverFirstName,
		ApproverLastName:   r.ApproverLastName,
		ApproverEmail:      r.ApproverEmail,
		ApproverPhone:      r.ApproverPhone,
	}
}

func toHTTPRecord(r yp.ProfileRecord) Record {
	addresses := make([]Address, len(r.Addresses))
	for i, a := range r.Addresses {
		addresses[i] = toAddress(a)
	}
	return Record{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		PrimaryAddress:     toAddress(r.PrimaryAddress),
		Addresses:          addresses,
		Email:              r.Email,
		Phone:              r.Phone,
		BirthDate:          r.BirthDate,
		ProfileLanguage:    r.ProfileLanguage,
		LanguageAtHome:     r.LanguageAtHome,
		SchoolName:         r.SchoolName,
		SchoolClass:        r.SchoolClass,
		PhotoUsageApproved: string(r.PhotoUsageApproved),
		ApproverFirstName:  r.ApproverFirstName,
		ApproverLastName:   r.ApproverLastName,
		ApproverEmail:      r.ApproverEmail,
		ApproverPhone:      r.ApproverPhone,
	}
}

func toHTTPProfile(p *profilesvc.YouthProfile) YouthProfile {
	return YouthProfile{
		ID:               p.ID,
		MembershipNumber: p.MembershipNumber,
		MembershipStatus: string(p.Status),
		Expiration:       timeutil.FormatDate(p.Expiration),
		Record:           toHTTPRecord(p.Record),
		CreatedAt:        timeutil.NewTime(p.CreatedAt),
		UpdatedAt:        timeutil.NewTime(p.UpdatedAt),
	}
}
