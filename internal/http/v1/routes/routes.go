package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	cataloghandler "github.com/delta94/youth-membership-admin-ui/internal/http/v1/catalog"
	youthhandler "github.com/delta94/youth-membership-admin-ui/internal/http/v1/youthprofile"
	"github.com/delta94/youth-membership-admin-ui/internal/platform/auth"
	"github.com/delta94/youth-membership-admin-ui/internal/platform/catalog"
	profilesvc "github.com/delta94/youth-membership-admin-ui/internal/service/youthprofile"
	yp "github.com/delta94/youth-membership-admin-ui/internal/youthprofile"
)

// Register wires all HTTP routes into the provided API router.
func Register(
	api huma.API,
	verifier auth.Verifier,
	profileService profilesvc.Service,
	validator *yp.Validator,
	countries, languages *catalog.Set,
	adminCountry string,
) {
	prefix := apiPrefix(api)

	// Every operation declaring bearerAuth goes through the verifier.
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	youthhandler.Register(api, profileService, validator, adminCountry, prefix)
	cataloghandler.Register(api, countries, languages)
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
