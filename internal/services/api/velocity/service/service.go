// Package service contains velocity workflows
package service

import (
	"context"
	"time"

	"ranksignal/internal/core/anomaly"
	"ranksignal/internal/core/velocity"
	"ranksignal/internal/modkit/repokit"
	"ranksignal/internal/platform/logger"
	"ranksignal/internal/platform/store"
	ptime "ranksignal/internal/platform/time"
	"ranksignal/internal/services/api/velocity/domain"
	"ranksignal/internal/services/api/velocity/repo"
)

// Config carries the analytic defaults so thresholds stay tunable and testable
type Config struct {
	// WindowDays is the trailing window used when a request passes none
	WindowDays int
	// AnomalyThreshold is the strict |z| bound for flagging a day
	AnomalyThreshold float64
}

// archiveTable is the ClickHouse mirror for long range reporting
const archiveTable = "velocity_facts_archive"

// Service defines the velocity service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the velocity service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cfg    Config

	// archive is optional, nil disables mirroring
	archive store.Clickhouse

	// now is a seam for window cutoff tests
	now func() time.Time
}

// New constructs a velocity service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config, archive store.Clickhouse) *Svc {
	if db == nil {
		panic("velocity.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("velocity.Service requires a non nil Repo binder")
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = velocity.DefaultWindowDays
	}
	if cfg.AnomalyThreshold <= 0 {
		cfg.AnomalyThreshold = anomaly.DefaultThreshold
	}
	return &Svc{
		Repo:    binder.Bind(db),
		binder:  binder,
		db:      db,
		cfg:     cfg,
		archive: archive,
		now:     time.Now,
	}
}

// Record upserts one (domain, date) velocity fact and reports created or updated
// replaying the same tuple converges on a single fact holding the latest values
func (s *Svc) Record(ctx context.Context, in domain.RecordInput) (domain.RecordResult, error) {
	f := repo.FactRow{
		DomainID:   in.DomainID,
		Day:        in.Date,
		NewCount:   in.NewCount,
		LostCount:  in.LostCount,
		NetChange:  in.NewCount - in.LostCount,
		TotalCount: in.TotalCount,
	}
	created, err := s.Repo.Upsert(ctx, f)
	if err != nil {
		return domain.RecordResult{}, err
	}
	s.mirror(ctx, f)

	res := domain.RecordResult{Status: domain.StatusUpdated}
	if created {
		res.Status = domain.StatusCreated
	}
	return res, nil
}

// mirror appends the accepted fact to the ClickHouse archive when configured
// the pg row is the source of truth, so archive failures only log
func (s *Svc) mirror(ctx context.Context, f repo.FactRow) {
	if s.archive == nil {
		return
	}
	err := s.archive.Insert(ctx, archiveTable, [][]any{{
		f.DomainID, f.Day, int32(f.NewCount), int32(f.LostCount),
		int32(f.NetChange), int32(f.TotalCount), s.now().UTC(),
	}})
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("domain", f.DomainID).Msg("velocity archive mirror failed")
	}
}

// History returns the trailing window of facts ascending by date
func (s *Svc) History(ctx context.Context, in domain.WindowInput) ([]domain.Fact, error) {
	rows, err := s.window(ctx, in)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Fact, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Fact{
			Date:       r.Day,
			NewCount:   r.NewCount,
			LostCount:  r.LostCount,
			NetChange:  r.NetChange,
			TotalCount: r.TotalCount,
			RecordedAt: ptime.Ptr(r.RecordedAt),
		})
	}
	return out, nil
}

// Stats reduces the same window the history endpoint serves
// a domain with no facts in window yields all zeros, not an error
func (s *Svc) Stats(ctx context.Context, in domain.WindowInput) (domain.Stats, error) {
	rows, err := s.window(ctx, in)
	if err != nil {
		return domain.Stats{}, err
	}
	facts := make([]velocity.DayFact, 0, len(rows))
	for _, r := range rows {
		facts = append(facts, velocity.DayFact{
			Day:        r.Day,
			NewCount:   r.NewCount,
			LostCount:  r.LostCount,
			NetChange:  r.NetChange,
			TotalCount: r.TotalCount,
		})
	}
	st := velocity.Compute(facts)
	return domain.Stats{
		AvgNewPerDay:  st.AvgNewPerDay,
		AvgLostPerDay: st.AvgLostPerDay,
		AvgNetChange:  st.AvgNetChange,
		TotalNew:      st.TotalNew,
		TotalLost:     st.TotalLost,
		NetChange:     st.NetChange,
		DaysTracked:   st.DaysTracked,
	}, nil
}

// Anomalies scores the window's net-change series and returns flagged days
// fewer than three points yield an empty result, chronological order preserved
func (s *Svc) Anomalies(ctx context.Context, in domain.WindowInput) ([]domain.Anomaly, error) {
	rows, err := s.window(ctx, in)
	if err != nil {
		return nil, err
	}
	points := make([]anomaly.Point, 0, len(rows))
	for _, r := range rows {
		points = append(points, anomaly.Point{
			Day:       r.Day,
			NewCount:  r.NewCount,
			LostCount: r.LostCount,
			NetChange: r.NetChange,
		})
	}
	flagged := anomaly.Detect(points, s.cfg.AnomalyThreshold)
	out := make([]domain.Anomaly, 0, len(flagged))
	for _, a := range flagged {
		out = append(out, domain.Anomaly{
			Date:           a.Day,
			NewCount:       a.NewCount,
			LostCount:      a.LostCount,
			NetChange:      a.NetChange,
			ZScore:         a.ZScore,
			Classification: string(a.Classification),
			Severity:       string(a.Severity),
		})
	}
	return out, nil
}

// window is the single history fetch shared by history, stats, and anomalies
func (s *Svc) window(ctx context.Context, in domain.WindowInput) ([]repo.FactRow, error) {
	days := in.WindowDays
	if days <= 0 {
		days = s.cfg.WindowDays
	}
	cutoff := velocity.Cutoff(s.now(), days)
	return s.Repo.HistorySince(ctx, in.DomainID, cutoff)
}
