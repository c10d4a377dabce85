package module

import (
	"context"

	"ranksignal/internal/services/api/velocity/domain"
	velsvc "ranksignal/internal/services/api/velocity/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptVelocityPort struct{ svc velsvc.Service }

// Record upserts one day of velocity for a domain
func (a adaptVelocityPort) Record(ctx context.Context, in domain.RecordInput) (domain.RecordResult, error) {
	return a.svc.Record(ctx, in)
}

// History returns the trailing window of facts
func (a adaptVelocityPort) History(ctx context.Context, in domain.WindowInput) ([]domain.Fact, error) {
	return a.svc.History(ctx, in)
}

// Stats summarizes the trailing window
func (a adaptVelocityPort) Stats(ctx context.Context, in domain.WindowInput) (domain.Stats, error) {
	return a.svc.Stats(ctx, in)
}

// Anomalies returns flagged days in the trailing window
func (a adaptVelocityPort) Anomalies(ctx context.Context, in domain.WindowInput) ([]domain.Anomaly, error) {
	return a.svc.Anomalies(ctx, in)
}
