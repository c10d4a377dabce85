// Package service contains keyword group workflows
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ranksignal/internal/core/trend"
	"ranksignal/internal/core/velocity"
	"ranksignal/internal/modkit/repokit"
	"ranksignal/internal/services/api/groups/domain"
	"ranksignal/internal/services/api/groups/repo"
)

// Config carries the group analytics defaults
type Config struct {
	// WindowDays is the trailing window used when a request passes none
	WindowDays int
	// FetchConcurrency bounds the parallel per-keyword sample fetches
	FetchConcurrency int
}

const defaultFetchConcurrency = 8

// defaultColor is applied when a create request omits one
const defaultColor = "#6e7681"

// Service defines the groups service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the groups service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cfg    Config

	// newID is a seam so tests get stable group ids
	newID func() string
	// now is a seam for window cutoff tests
	now func() time.Time

	volumes *message.Printer
}

// New constructs a groups service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Svc {
	if db == nil {
		panic("groups.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("groups.Service requires a non nil Repo binder")
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = velocity.DefaultWindowDays
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = defaultFetchConcurrency
	}
	return &Svc{
		Repo:    binder.Bind(db),
		binder:  binder,
		db:      db,
		cfg:     cfg,
		newID:   uuid.NewString,
		now:     time.Now,
		volumes: message.NewPrinter(language.English),
	}
}

// CreateGroup stores a new keyword cluster and returns it with its generated id
func (s *Svc) CreateGroup(ctx context.Context, in domain.CreateGroupInput) (domain.Group, error) {
	g := repo.GroupRow{
		ID:       s.newID(),
		DomainID: in.DomainID,
		Name:     in.Name,
		Color:    in.Color,
	}
	if g.Color == "" {
		g.Color = defaultColor
	}
	if err := s.Repo.InsertGroup(ctx, g); err != nil {
		return domain.Group{}, err
	}
	return domain.Group{GroupID: g.ID, DomainID: g.DomainID, Name: g.Name, Color: g.Color}, nil
}

// AddKeyword links a keyword into a group, adding an existing member is a no-op
// the group must exist so typos surface as not found instead of silent rows
func (s *Svc) AddKeyword(ctx context.Context, in domain.MemberInput) error {
	if _, err := s.Repo.GetGroup(ctx, in.GroupID); err != nil {
		return err
	}
	return s.Repo.AddMember(ctx, in.GroupID, in.KeywordID)
}

// RemoveKeyword unlinks a keyword from a group
func (s *Svc) RemoveKeyword(ctx context.Context, in domain.MemberInput) error {
	if _, err := s.Repo.GetGroup(ctx, in.GroupID); err != nil {
		return err
	}
	return s.Repo.RemoveMember(ctx, in.GroupID, in.KeywordID)
}

// Performance returns one group's averaged position series ascending by date
// days where no member ranked are absent rather than zeroed
func (s *Svc) Performance(ctx context.Context, in domain.PerformanceInput) ([]domain.PerformancePoint, error) {
	g, err := s.Repo.GetGroup(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}
	series, _, err := s.groupSeries(ctx, g.ID, in.WindowDays)
	return series, err
}

// AllPerformance computes each group's series independently, one group with
// no members or no samples contributes an empty series, never an error
func (s *Svc) AllPerformance(ctx context.Context, in domain.AllPerformanceInput) ([]domain.GroupSeries, error) {
	groups, err := s.Repo.GroupsByDomain(ctx, in.DomainID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.GroupSeries, 0, len(groups))
	for _, g := range groups {
		series, volume, err := s.groupSeries(ctx, g.ID, in.WindowDays)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.GroupSeries{
			GroupID:           g.ID,
			Name:              g.Name,
			Color:             g.Color,
			SearchVolume:      volume,
			SearchVolumeLabel: s.volumes.Sprintf("%d", volume),
			Series:            series,
		})
	}
	return out, nil
}

// groupSeries fans out one bounded fetch per member keyword, then buckets
// every sample by date and averages to one decimal
func (s *Svc) groupSeries(ctx context.Context, groupID string, windowDays int) ([]domain.PerformancePoint, int64, error) {
	keywords, err := s.Repo.MemberKeywords(ctx, groupID)
	if err != nil {
		return nil, 0, err
	}
	if len(keywords) == 0 {
		return []domain.PerformancePoint{}, 0, nil
	}

	days := windowDays
	if days <= 0 {
		days = s.cfg.WindowDays
	}
	cutoff := velocity.Cutoff(s.now(), days)

	perKeyword := make([][]repo.PositionRow, len(keywords))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.cfg.FetchConcurrency)
	for i, kw := range keywords {
		eg.Go(func() error {
			rows, err := s.Repo.PositionsSince(egCtx, kw, cutoff)
			if err != nil {
				return err
			}
			perKeyword[i] = rows
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}

	var samples []trend.Sample
	for _, rows := range perKeyword {
		for _, r := range rows {
			samples = append(samples, trend.Sample{Day: r.Day, Position: r.Position})
		}
	}

	volume, err := s.Repo.SumLatestVolumes(ctx, keywords)
	if err != nil {
		return nil, 0, err
	}

	points := trend.Series(samples)
	out := make([]domain.PerformancePoint, 0, len(points))
	for _, p := range points {
		out = append(out, domain.PerformancePoint{Date: p.Day, AveragePosition: p.AveragePosition})
	}
	return out, volume, nil
}
