package youthprofile

// CreateOutput for POST /youth-profiles (201 Created)
type CreateOutput struct {
	Location string `header:"Location" doc:"URL of the created profile"`
	Body     YouthProfile
}

// ListData is the response body containing one page of profiles.
type ListData struct {
	Items []YouthProfile `json:"items" doc:"Profiles ordered by last name, first name and ID"`
	Total int            `json:"total" doc:"Number of profiles matching the filters"       example:"42"`
}

// ListOutput for GET /youth-profiles with pagination Link header.
type ListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ListData
}

// TemplateOutput for GET /youth-profiles/template
type TemplateOutput struct {
	Body Record
}

// ValidateOutput for POST /youth-profiles/validate
type ValidateOutput struct {
	Body ValidationResult
}

// ProfileOutput is returned by get, update and renew.
type ProfileOutput struct {
	Body YouthProfile
}
