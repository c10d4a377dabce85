// Package module wires keyword groups into the API using modkit
package module

import (
	"net/http"

	modkit "ranksignal/internal/modkit"
	"ranksignal/internal/modkit/httpkit"
	str "ranksignal/internal/platform/strings"
	grphttp "ranksignal/internal/services/api/groups/http"
	grprepo "ranksignal/internal/services/api/groups/repo"
	grpsvc "ranksignal/internal/services/api/groups/service"
)

// Module implements the groups module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc grpsvc.Service
}

// New constructs the groups module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("groups"), modkit.WithPrefix("/groups")}, opts...)...)

	ana := deps.Cfg.Prefix("ANALYTICS_")
	cfg := grpsvc.Config{
		WindowDays:       ana.MayInt("WINDOW_DAYS", 30),
		FetchConcurrency: ana.MayInt("GROUP_FETCH_CONCURRENCY", 8),
	}

	repo := grprepo.NewPG()
	svc := grpsvc.New(deps.PG, repo, cfg)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptGroupsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		grphttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
