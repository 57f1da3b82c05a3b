// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	groupsfeature "github.com/avelichko/groupmap/internal/app/features/groups"
	healthfeature "github.com/avelichko/groupmap/internal/app/features/health"
	locationfeature "github.com/avelichko/groupmap/internal/app/features/location"
	statusfeature "github.com/avelichko/groupmap/internal/app/features/status"
	structuresfeature "github.com/avelichko/groupmap/internal/app/features/structures"
	groupstore "github.com/avelichko/groupmap/internal/app/store/groups"
	locationstore "github.com/avelichko/groupmap/internal/app/store/locations"
	structurestore "github.com/avelichko/groupmap/internal/app/store/structures"
	"github.com/avelichko/groupmap/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// GroupMap builds the bearer-token guard, the Mongo-backed stores, and
// mounts the JSON API twice: once under /v0 (the versioned surface
// clients should use) and once at the root for older clients that never
// sent the prefix.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.TokenSecret, appCfg.TokenExpiry)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	groups := groupstore.New(deps.MongoDatabase)
	structures := structurestore.New(deps.MongoDatabase)
	locations := locationstore.New(deps.MongoDatabase)

	// The guard re-resolves the member on every request, so kicked
	// users and deleted groups lose access immediately even while
	// their tokens are still signature-valid.
	guard := auth.NewGuard(tokens, groups, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Mount the API at both the versioned and the legacy unprefixed
	// paths. Each mount gets its own router instance because chi does
	// not allow mounting one router in two places.
	buildAPI := func() chi.Router {
		api := chi.NewRouter()

		statusHandler := statusfeature.NewHandler()
		api.Mount("/status", statusfeature.Routes(statusHandler))

		groupsHandler := groupsfeature.NewHandler(groups, tokens, logger)
		api.Mount("/groups", groupsfeature.Routes(groupsHandler, guard))

		structuresHandler := structuresfeature.NewHandler(structures, groups, logger)
		api.Mount("/structures", structuresfeature.Routes(structuresHandler, guard))

		locationHandler := locationfeature.NewHandler(locations, logger)
		api.Mount("/location", locationfeature.Routes(locationHandler, guard))

		return api
	}

	r.Mount("/v0", buildAPI())
	r.Mount("/", buildAPI())

	return r, nil
}
