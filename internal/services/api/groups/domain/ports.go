package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	CreateGroup(ctx context.Context, in CreateGroupInput) (Group, error)
	AddKeyword(ctx context.Context, in MemberInput) error
	RemoveKeyword(ctx context.Context, in MemberInput) error
	Performance(ctx context.Context, in PerformanceInput) ([]PerformancePoint, error)
	AllPerformance(ctx context.Context, in AllPerformanceInput) ([]GroupSeries, error)
}
