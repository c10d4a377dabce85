// Package repo provides postgres access for the staleness sweep
package repo

import (
	"context"

	"ranksignal/internal/modkit/repokit"
	"ranksignal/internal/services/staleness/domain"
)

// Repo is the persistence surface for sweeps
type Repo interface {
	// StaleDomains returns tracked domains whose newest fact is older than
	// cutoff, including domains with no facts at all
	StaleDomains(ctx context.Context, cutoff string, limit int) ([]domain.StaleDomain, error)
	// EnqueueRefresh upserts a pending crawl request, re-sweeping a domain
	// already queued is a no-op
	EnqueueRefresh(ctx context.Context, domainID string) error
	// MarkSwept stamps last_swept_at on the given domains
	MarkSwept(ctx context.Context, domainIDs []string) error
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) StaleDomains(ctx context.Context, cutoff string, limit int) ([]domain.StaleDomain, error) {
	sql := `
select d.id, coalesce(max(f.day)::text, '')
from domains d
left join backlink_velocity_facts f on f.domain_id = d.id
where d.tracking_enabled
group by d.id
having coalesce(max(f.day), 'epoch'::date) < $1::date
order by max(f.day) asc nulls first, d.id asc
`
	args := []any{cutoff}
	if limit > 0 {
		sql += "limit $2\n"
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.StaleDomain
	for rows.Next() {
		var s domain.StaleDomain
		if err := rows.Scan(&s.DomainID, &s.LastFactDay); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *queries) EnqueueRefresh(ctx context.Context, domainID string) error {
	const sql = `
insert into crawl_refresh_queue (domain_id, requested_at, status)
values ($1, now(), 'pending')
on conflict (domain_id) where status = 'pending' do nothing
`
	_, err := r.q.Exec(ctx, sql, domainID)
	return err
}

func (r *queries) MarkSwept(ctx context.Context, domainIDs []string) error {
	if len(domainIDs) == 0 {
		return nil
	}
	const sql = `
update domains
set last_swept_at = now()
where id = any($1)
`
	_, err := r.q.Exec(ctx, sql, domainIDs)
	return err
}
