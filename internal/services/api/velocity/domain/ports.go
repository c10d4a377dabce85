package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Record(ctx context.Context, in RecordInput) (RecordResult, error)
	History(ctx context.Context, in WindowInput) ([]Fact, error)
	Stats(ctx context.Context, in WindowInput) (Stats, error)
	Anomalies(ctx context.Context, in WindowInput) ([]Anomaly, error)
}
