package module

import (
	"context"

	"ranksignal/internal/services/api/groups/domain"
	grpsvc "ranksignal/internal/services/api/groups/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptGroupsPort struct{ svc grpsvc.Service }

// CreateGroup stores a new keyword cluster
func (a adaptGroupsPort) CreateGroup(ctx context.Context, in domain.CreateGroupInput) (domain.Group, error) {
	return a.svc.CreateGroup(ctx, in)
}

// AddKeyword links a keyword into a group
func (a adaptGroupsPort) AddKeyword(ctx context.Context, in domain.MemberInput) error {
	return a.svc.AddKeyword(ctx, in)
}

// RemoveKeyword unlinks a keyword from a group
func (a adaptGroupsPort) RemoveKeyword(ctx context.Context, in domain.MemberInput) error {
	return a.svc.RemoveKeyword(ctx, in)
}

// Performance returns one group's averaged position series
func (a adaptGroupsPort) Performance(ctx context.Context, in domain.PerformanceInput) ([]domain.PerformancePoint, error) {
	return a.svc.Performance(ctx, in)
}

// AllPerformance returns every group's series under a domain
func (a adaptGroupsPort) AllPerformance(ctx context.Context, in domain.AllPerformanceInput) ([]domain.GroupSeries, error) {
	return a.svc.AllPerformance(ctx, in)
}
