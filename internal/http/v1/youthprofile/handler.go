package youthprofile

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/delta94/youth-membership-admin-ui/internal/platform/logging"
	"github.com/delta94/youth-membership-admin-ui/internal/platform/pagination"
	profilesvc "github.com/delta94/youth-membership-admin-ui/internal/service/youthprofile"
	yp "github.com/delta94/youth-membership-admin-ui/internal/youthprofile"
)

const cursorKind = "youth_profile"

var bearerAuth = []map[string][]string{
	{"bearerAuth": {}},
}

// Register registers youth profile endpoints. svc should validate on write
// (see profilesvc.Gate); validator backs the dry-run endpoint and
// adminCountry seeds new addresses in the template.
func Register(api huma.API, svc profilesvc.Service, validator *yp.Validator, adminCountry, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-youth-profile",
		Method:        http.MethodPost,
		Path:          "/youth-profiles",
		Summary:       "Create youth profile",
		Description:   "Registers a new youth member. The whole record is validated; any error rejects it with 422 and a complete error report.",
		Tags:          []string{"Youth profiles"},
		DefaultStatus: http.StatusCreated,
		Security:      bearerAuth,
	}, func(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
		p, err := svc.Create(ctx, toProfileRecord(input.Body))
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &CreateOutput{
			Location: prefix + "/youth-profiles/" + p.ID,
			Body:     toHTTPProfile(p),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-youth-profiles",
		Method:      http.MethodGet,
		Path:        "/youth-profiles",
		Summary:     "List youth profiles",
		Description: "Returns profiles ordered by last name, first name and ID. Use the cursor from the Link header to navigate between pages.",
		Tags:        []string{"Youth profiles"},
		Security:    bearerAuth,
	}, func(ctx context.Context, input *ListInput) (*ListOutput, error) {
		cursor, err := pagination.DecodeCursor(input.Cursor, cursorKind)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor")
		}

		profiles, err := svc.List(ctx, profilesvc.ListParams{
			FirstName: input.FirstName,
			LastName:  input.LastName,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}

		query := url.Values{}
		if input.FirstName != "" {
			query.Set("firstName", input.FirstName)
		}
		if input.LastName != "" {
			query.Set("lastName", input.LastName)
		}

		page, err := pagination.Paginate(profiles, pagination.Request{
			Cursor:  cursor,
			Limit:   input.Limit,
			BaseURL: prefix + "/youth-profiles",
			Query:   query,
		}, func(p *profilesvc.YouthProfile) string { return p.ID })
		if err != nil {
			return nil, huma.Error400BadRequest("cursor references unknown profile")
		}

		items := make([]YouthProfile, len(page.Items))
		for i, p := range page.Items {
			items[i] = toHTTPProfile(p)
		}
		return &ListOutput{
			Link: page.LinkHeader,
			Body: ListData{Items: items, Total: page.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-youth-profile-template",
		Method:      http.MethodGet,
		Path:        "/youth-profiles/template",
		Summary:     "Get new registration template",
		Description: "Returns the initial values of a new registration form.",
		Tags:        []string{"Youth profiles"},
		Security:    bearerAuth,
	}, func(_ context.Context, _ *TemplateInput) (*TemplateOutput, error) {
		return &TemplateOutput{Body: toHTTPRecord(yp.NewRecord(adminCountry))}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "validate-youth-profile",
		Method:      http.MethodPost,
		Path:        "/youth-profiles/validate",
		Summary:     "Validate youth profile record",
		Description: "Checks a record without storing it and returns every error message.",
		Tags:        []string{"Youth profiles"},
		Security:    bearerAuth,
	}, func(_ context.Context, input *ValidateInput) (*ValidateOutput, error) {
		report := validator.Validate(toProfileRecord(input.Body))
		return &ValidateOutput{Body: ValidationResult{
			Valid:  report.IsEmpty(),
			Errors: report,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-youth-profile",
		Method:      http.MethodGet,
		Path:        "/youth-profiles/{id}",
		Summary:     "Get youth profile",
		Tags:        []string{"Youth profiles"},
		Security:    bearerAuth,
	}, func(ctx context.Context, input *GetInput) (*ProfileOutput, error) {
		p, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ProfileOutput{Body: toHTTPProfile(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-youth-profile",
		Method:      http.MethodPut,
		Path:        "/youth-profiles/{id}",
		Summary:     "Replace youth profile",
		Description: "Replaces the whole record. Membership number and expiration are unchanged.",
		Tags:        []string{"Youth profiles"},
		Security:    bearerAuth,
	}, func(ctx context.Context, input *UpdateInput) (*ProfileOutput, error) {
		p, err := svc.Update(ctx, input.ID, toProfileRecord(input.Body))
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ProfileOutput{Body: toHTTPProfile(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "renew-youth-profile",
		Method:      http.MethodPost,
		Path:        "/youth-profiles/{id}/renew",
		Summary:     "Renew youth membership",
		Description: "Replaces the record and extends the membership to the end of the next season.",
		Tags:        []string{"Youth profiles"},
		Security:    bearerAuth,
	}, func(ctx context.Context, input *RenewInput) (*ProfileOutput, error) {
		p, err := svc.Renew(ctx, input.ID, toProfileRecord(input.Body))
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ProfileOutput{Body: toHTTPProfile(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-youth-profile",
		Method:        http.MethodDelete,
		Path:          "/youth-profiles/{id}",
		Summary:       "Delete youth profile",
		Tags:          []string{"Youth profiles"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearerAuth,
	}, func(ctx context.Context, input *DeleteInput) (*struct{}, error) {
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return nil, nil
	})
}

func mapServiceError(ctx context.Context, err error) error {
	var invalid *profilesvc.InvalidRecordError
	switch {
	case errors.As(err, &invalid):
		return newInvalidRecordProblem(invalid.Report)
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("youth profile not found")
	case errors.Is(err, profilesvc.ErrAlreadyExists):
		return huma.Error409Conflict("youth profile already exists")
	default:
		applog.LogError(ctx, "youth profile service failed", err)
		return huma.Error500InternalServerError("internal error")
	}
}
