package identity

import (
	"fmt"
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"net/http"

	"github.com/supertokens/supertokens-golang/recipe/dashboard"
	"github.com/supertokens/supertokens-golang/recipe/passwordless"
	"github.com/supertokens/supertokens-golang/recipe/passwordless/plessmodels"
	"github.com/supertokens/supertokens-golang/recipe/session"
	"github.com/supertokens/supertokens-golang/recipe/session/sessmodels"
	"github.com/supertokens/supertokens-golang/recipe/usermetadata"
	"github.com/supertokens/supertokens-golang/recipe/userroles"
	"github.com/supertokens/supertokens-golang/supertokens"
	"go.uber.org/zap"
)

func InitializeSupertoken(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig, logger *zap.Logger) error {
	apiBasePath := fmt.Sprintf("/%s/%s%s", internalConfig.App.EndpointPrefix, internalConfig.App.Version, driverConfig.Supertoken.ApiBasePath)
	websiteBasePath := driverConfig.Supertoken.WebsiteBasePath
	cookieSameSite := constvars.CookieSameSiteStrictMode

	if internalConfig.App.Env == constvars.AppEnvLocal || internalConfig.App.Env == constvars.AppEnvDevelopment {
		cookieSameSite = constvars.CookieSameSiteNoneMode
	}

	err := supertokens.Init(supertokens.TypeInput{
		OnSuperTokensAPIError: func(err error, req *http.Request, res http.ResponseWriter) {
			logger.Error("supertokens API error",
				zap.String(constvars.LoggingEndpointKey, req.URL.Path),
				zap.Error(err),
			)
		},
		Supertokens: &supertokens.ConnectionInfo{
			ConnectionURI: driverConfig.Supertoken.ConnectionURI,
			APIKey:        driverConfig.Supertoken.APIKey,
		},
		AppInfo: supertokens.AppInfo{
			AppName:         driverConfig.Supertoken.AppName,
			APIDomain:       driverConfig.Supertoken.ApiDomain,
			WebsiteDomain:   driverConfig.Supertoken.WebsiteDomain,
			APIBasePath:     &apiBasePath,
			WebsiteBasePath: &websiteBasePath,
		},
		RecipeList: []supertokens.Recipe{
			passwordless.Init(plessmodels.TypeInput{
				FlowType: "MAGIC_LINK",
				ContactMethodEmail: plessmodels.ContactMethodEmailConfig{
					Enabled: true,
				},
			}),
			session.Init(&sessmodels.TypeInput{
				CookieSameSite: &cookieSameSite,
			}),
			usermetadata.Init(nil),
			userroles.Init(nil),
			dashboard.Init(nil),
		},
	})
	if err != nil {
		return exceptions.ErrSupertokenInit(err)
	}

	for _, role := range models.EnumeratedRoles {
		_, err := userroles.CreateNewRoleOrAddPermissions(role.String(), []string{}, nil)
		if err != nil {
			return exceptions.ErrSupertokenInit(err)
		}
	}

	logger.Info("Successfully initialized supertokens",
		zap.String("api_base_path", apiBasePath),
	)
	return nil
}
