// Package service runs the staleness sweep
package service

import (
	"context"
	"time"

	"ranksignal/internal/core/velocity"
	"ranksignal/internal/modkit/repokit"
	"ranksignal/internal/platform/logger"
	"ranksignal/internal/services/staleness/domain"
	"ranksignal/internal/services/staleness/repo"
)

// DefaultStalenessDays marks a domain stale after a week of silence
const DefaultStalenessDays = 7

// Config carries sweep defaults applied when params leave them zero
type Config struct {
	StalenessDays int
	Limit         int
}

// Service wires TxRunner + Binder into the sweep operation
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Repo]
	Cfg    Config

	// now is a seam for cutoff tests
	now func() time.Time
}

// New constructs the staleness service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Service {
	if db == nil {
		panic("staleness.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("staleness.Service requires a non nil Repo binder")
	}
	if cfg.StalenessDays <= 0 {
		cfg.StalenessDays = DefaultStalenessDays
	}
	return &Service{DB: db, Binder: binder, Cfg: cfg, now: time.Now}
}

// Sweep finds quiet domains and enqueues a crawl refresh for each
// a pass is idempotent, re-running enqueues nothing new for already
// queued domains
func (s *Service) Sweep(ctx context.Context, p domain.SweepParams) (domain.SweepResult, error) {
	days := p.StalenessDays
	if days <= 0 {
		days = s.Cfg.StalenessDays
	}
	limit := p.Limit
	if limit <= 0 {
		limit = s.Cfg.Limit
	}
	cutoff := velocity.Cutoff(s.now(), days)

	l := logger.C(ctx).With().Str("mod", "staleness").Str("cutoff", cutoff).Logger()
	l.Info().Msg("staleness: sweep start")

	var res domain.SweepResult
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)
		stale, err := r.StaleDomains(ctx, cutoff, limit)
		if err != nil {
			return err
		}
		res.Scanned = len(stale)
		if p.DryRun {
			return nil
		}
		swept := make([]string, 0, len(stale))
		for _, d := range stale {
			if err := r.EnqueueRefresh(ctx, d.DomainID); err != nil {
				return err
			}
			res.Enqueued++
			swept = append(swept, d.DomainID)
		}
		return r.MarkSwept(ctx, swept)
	})
	if err != nil {
		l.Error().Err(err).Msg("staleness: sweep failed")
		return domain.SweepResult{}, err
	}

	l.Info().Int("scanned", res.Scanned).Int("enqueued", res.Enqueued).Msg("staleness: sweep done")
	return res, nil
}
