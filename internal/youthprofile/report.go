package youthprofile

import (
	"strconv"
	"strings"
)

// AddressErrors mirrors AddressEntry with one optional message per field.
type AddressErrors struct {
	Address     string `json:"address,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	City        string `json:"city,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// IsEmpty reports whether no field has a message.
func (a *AddressErrors) IsEmpty() bool {
	return a == nil || *a == AddressErrors{}
}

func (a *AddressErrors) field(name string) *string {
	switch name {
	case "address":
		return &a.Address
	case "postalCode":
		return &a.PostalCode
	case "city":
		return &a.City
	case "countryCode":
		return &a.CountryCode
	}
	return nil
}

// ErrorReport mirrors ProfileRecord with an optional message in place of every
// value. Addresses always has the length of the validated record's Addresses;
// a nil element means the address at that index is valid.
type ErrorReport struct {
	FirstName          string           `json:"firstName,omitempty"`
	LastName           string           `json:"lastName,omitempty"`
	PrimaryAddress     *AddressErrors   `json:"primaryAddress,omitempty"`
	Addresses          []*AddressErrors `json:"addresses"`
	Email              string           `json:"email,omitempty"`
	Phone              string           `json:"phone,omitempty"`
	BirthDate          string           `json:"birthDate,omitempty"`
	ProfileLanguage    string           `json:"profileLanguage,omitempty"`
	LanguageAtHome     string           `json:"languageAtHome,omitempty"`
	SchoolName         string           `json:"schoolName,omitempty"`
	SchoolClass        string           `json:"schoolClass,omitempty"`
	PhotoUsageApproved string           `json:"photoUsageApproved,omitempty"`
	ApproverFirstName  string           `json:"approverFirstName,omitempty"`
	ApproverLastName   string           `json:"approverLastName,omitempty"`
	ApproverEmail      string           `json:"approverEmail,omitempty"`
	ApproverPhone      string           `json:"approverPhone,omitempty"`
}

func newReport(addresses int) ErrorReport {
	return ErrorReport{Addresses: make([]*AddressErrors, addresses)}
}

// IsEmpty reports whether the report holds no message anywhere, including
// nested and indexed address errors. Only an empty report allows submission.
func (r ErrorReport) IsEmpty() bool {
	return len(r.Issues()) == 0
}

// Issue is one message flattened out of a report, addressed by its JSON path.
type Issue struct {
	Path    string // e.g. "addresses[2].city"
	Message string
}

// Issues flattens the report into messages in record field order.
func (r ErrorReport) Issues() []Issue {
	var issues []Issue
	add := func(path, msg string) {
		if msg != "" {
			issues = append(issues, Issue{Path: path, Message: msg})
		}
	}
	addAddress := func(prefix string, a *AddressErrors) {
		if a == nil {
			return
		}
		add(prefix+".address", a.Address)
		add(prefix+".postalCode", a.PostalCode)
		add(prefix+".city", a.City)
		add(prefix+".countryCode", a.CountryCode)
	}

	add("firstName", r.FirstName)
	add("lastName", r.LastName)
	addAddress("primaryAddress", r.PrimaryAddress)
	for i, a := range r.Addresses {
		addAddress("addresses["+strconv.Itoa(i)+"]", a)
	}
	add("email", r.Email)
	add("phone", r.Phone)
	add("birthDate", r.BirthDate)
	add("profileLanguage", r.ProfileLanguage)
	add("languageAtHome", r.LanguageAtHome)
	add("schoolName", r.SchoolName)
	add("schoolClass", r.SchoolClass)
	add("photoUsageApproved", r.PhotoUsageApproved)
	add("approverFirstName", r.ApproverFirstName)
	add("approverLastName", r.ApproverLastName)
	add("approverEmail", r.ApproverEmail)
	add("approverPhone", r.ApproverPhone)
	return issues
}

func (r *ErrorReport) field(name string) *string {
	switch name {
	case "firstName":
		return &r.FirstName
	case "lastName":
		return &r.LastName
	case "email":
		return &r.Email
	case "phone":
		return &r.Phone
	case "birthDate":
		return &r.BirthDate
	case "profileLanguage":
		return &r.ProfileLanguage
	case "languageAtHome":
		return &r.LanguageAtHome
	case "schoolName":
		return &r.SchoolName
	case "schoolClass":
		return &r.SchoolClass
	case "photoUsageApproved":
		return &r.PhotoUsageApproved
	case "approverFirstName":
		return &r.ApproverFirstName
	case "approverLastName":
		return &r.ApproverLastName
	case "approverEmail":
		return &r.ApproverEmail
	case "approverPhone":
		return &r.ApproverPhone
	}
	return nil
}

// set stores msg at the JSON path segments of a record field, for example
// ["addresses[2]", "city"]. Unknown paths are ignored. The first message for
// a field wins.
func (r *ErrorReport) set(path []string, msg string) bool {
	var dst *string
	switch len(path) {
	case 1:
		dst = r.field(path[0])
	case 2:
		name, idx, indexed := strings.Cut(path[0], "[")
		var slot **AddressErrors
		switch {
		case name == "primaryAddress" && !indexed:
			slot = &r.PrimaryAddress
		case name == "addresses" && indexed:
			i, err := strconv.Atoi(strings.TrimSuffix(idx, "]"))
			if err != nil || i < 0 || i >= len(r.Addresses) {
				return false
			}
			slot = &r.Addresses[i]
		default:
			return false
		}
		a := *slot
		if a == nil {
			a = &AddressErrors{}
		}
		if dst = a.field(path[1]); dst != nil {
			*slot = a
		}
	}
	if dst == nil {
		return false
	}
	if *dst == "" {
		*dst = msg
	}
	return true
}
