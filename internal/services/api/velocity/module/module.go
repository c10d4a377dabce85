// Package module wires velocity into the API using modkit
package module

import (
	"net/http"

	modkit "ranksignal/internal/modkit"
	"ranksignal/internal/modkit/httpkit"
	str "ranksignal/internal/platform/strings"
	velhttp "ranksignal/internal/services/api/velocity/http"
	velrepo "ranksignal/internal/services/api/velocity/repo"
	velsvc "ranksignal/internal/services/api/velocity/service"
)

// Module implements the velocity module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc velsvc.Service
}

// New constructs the velocity module
// analytic defaults come from ANALYTICS_* config with documented fallbacks
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("velocity"), modkit.WithPrefix("/velocity")}, opts...)...)

	ana := deps.Cfg.Prefix("ANALYTICS_")
	cfg := velsvc.Config{
		WindowDays:       ana.MayInt("WINDOW_DAYS", 30),
		AnomalyThreshold: ana.MayFloat64("ANOMALY_THRESHOLD", 2.0),
	}

	repo := velrepo.NewPG()
	svc := velsvc.New(deps.PG, repo, cfg, deps.CH)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptVelocityPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		velhttp.Register(r, m.svc)
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
