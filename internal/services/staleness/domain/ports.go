package domain

import "context"

// SweeperPort is consumed by the nightly binary
type SweeperPort interface {
	Sweep(ctx context.Context, p SweepParams) (SweepResult, error)
}
