// Package catalog serves the option lists behind enumerated profile fields.
package catalog

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/delta94/youth-membership-admin-ui/internal/platform/catalog"
)

// ListInput for the catalog endpoints (no parameters).
type ListInput struct{}

// ListData is the response body of a catalog.
type ListData struct {
	Items []catalog.Entry `json:"items" doc:"Options in display order"`
}

// ListOutput for GET /catalogs/*
type ListOutput struct {
	Body ListData
}

// Register registers catalog endpoints.
func Register(api huma.API, countries, languages *catalog.Set) {
	register(api, "list-countries", "/catalogs/countries", "List countries",
		"ISO 3166-1 alpha-2 codes accepted as address countries, labelled in the configured locale.", countries)
	register(api, "list-languages", "/catalogs/languages", "List languages",
		"Languages accepted for profileLanguage and languageAtHome.", languages)
}

func register(api huma.API, id, path, summary, description string, set *catalog.Set) {
	huma.Register(api, huma.Operation{
		OperationID: id,
		Method:      http.MethodGet,
		Path:        path,
		Summary:     summary,
		Description: description,
		Tags:        []string{"Catalogs"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(_ context.Context, _ *ListInput) (*ListOutput, error) {
		return &ListOutput{Body: ListData{Items: set.Entries()}}, nil
	})
}
