// Package module wires up the staleness sweep as a modkit.Module
package module

import (
	"ranksignal/internal/modkit"
	"ranksignal/internal/modkit/httpkit"
	modreg "ranksignal/internal/modkit/module"
	"ranksignal/internal/modkit/repokit"

	stdom "ranksignal/internal/services/staleness/domain"
	strepo "ranksignal/internal/services/staleness/repo"
	stservice "ranksignal/internal/services/staleness/service"
)

// Ports exported by the staleness module
type Ports struct {
	Sweeper stdom.SweeperPort
}

// Module implements modkit.Module for the staleness sweep
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs and wires the staleness module using deps.Cfg
func New(deps modkit.Deps, opts Options) *Module {
	svc := stservice.New(
		repokit.TxRunner(deps.PG),
		strepo.NewPG(),
		stservice.Config{
			StalenessDays: opts.StalenessDays,
			Limit:         opts.Limit,
		},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Sweeper: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "staleness" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module config prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes is a no-op, the sweep has no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}

// Register convenience so others can resolve our ports via registry
func Register(deps modkit.Deps, opts Options) {
	modreg.Register("staleness", New(deps, opts))
}
