package youthprofile

import "github.com/delta94/youth-membership-admin-ui/internal/platform/pagination"

// CreateInput for POST /youth-profiles
type CreateInput struct {
	Body Record
}

// ListInput for GET /youth-profiles
type ListInput struct {
	pagination.Params
	FirstName string `query:"firstName" doc:"Exact first name, case-insensitive" example:"Jane"`
	LastName  string `query:"lastName"  doc:"Exact last name, case-insensitive"  example:"Doe"`
}

// TemplateInput for GET /youth-profiles/template (no parameters)
type TemplateInput struct{}

// ValidateInput for POST /youth-profiles/validate
type ValidateInput struct {
	Body Record
}

// GetInput for GET /youth-profiles/{id}
type GetInput struct {
	ID string `path:"id" doc:"Profile ID" example:"6f1c2f9e-7a0e-4b9a-9d55-2f3f0a7f5b1c"`
}

// UpdateInput for PUT /youth-profiles/{id}
type UpdateInput struct {
	ID   string `path:"id" doc:"Profile ID"`
	Body Record
}

// RenewInput for POST /youth-profiles/{id}/renew
type RenewInput struct {
	ID   string `path:"id" doc:"Profile ID"`
	Body Record
}

// DeleteInput for DELETE /youth-profiles/{id}
type DeleteInput struct {
	ID string `path:"id" doc:"Profile ID"`
}
