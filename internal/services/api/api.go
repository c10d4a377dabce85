// Package api provides the HTTP API for the application
package api

import (
	"ranksignal/internal/platform/config"
	"ranksignal/internal/platform/logger"
	phttp "ranksignal/internal/platform/net/http"
	"ranksignal/internal/platform/store"

	"ranksignal/internal/modkit"
	"ranksignal/internal/modkit/httpkit"
	"ranksignal/internal/modkit/module"
	"ranksignal/internal/modkit/swaggerkit"

	groupsmod "ranksignal/internal/services/api/groups/module"
	metamod "ranksignal/internal/services/api/meta/module"
	velocitymod "ranksignal/internal/services/api/velocity/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	mods := []module.Module{
		metamod.New(deps),
		velocitymod.New(deps),
		groupsmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
