// Package repo provides postgres access for velocity facts
package repo

import (
	"context"
	"time"

	"ranksignal/internal/modkit/repokit"
)

// Repo is the minimal persistence surface for velocity
type Repo interface {
	Upsert(ctx context.Context, f FactRow) (created bool, err error)
	HistorySince(ctx context.Context, domainID, cutoff string) ([]FactRow, error)
}

// FactRow is one stored (domain, day) velocity fact
type FactRow struct {
	DomainID   string
	Day        string
	NewCount   int
	LostCount  int
	NetChange  int
	TotalCount int
	RecordedAt time.Time
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Upsert writes one day of velocity for a domain, replacing any prior fact
// for the same (domain_id, day) and refreshing recorded_at
// (xmax = 0) on the returned row distinguishes insert from update
func (r *queries) Upsert(ctx context.Context, f FactRow) (bool, error) {
	const sql = `
insert into backlink_velocity_facts
	(domain_id, day, new_count, lost_count, net_change, total_count, recorded_at)
values ($1, $2, $3, $4, $5, $6, now())
on conflict (domain_id, day) do update
set new_count   = excluded.new_count,
	lost_count  = excluded.lost_count,
	net_change  = excluded.net_change,
	total_count = excluded.total_count,
	recorded_at = now()
returning (xmax = 0)
`
	var created bool
	err := r.q.QueryRow(ctx, sql,
		f.DomainID, f.Day, f.NewCount, f.LostCount, f.NetChange, f.TotalCount,
	).Scan(&created)
	if err != nil {
		return false, err
	}
	return created, nil
}

// HistorySince returns facts with day >= cutoff ascending, the index on
// (domain_id, day) serves this as a single range read
func (r *queries) HistorySince(ctx context.Context, domainID, cutoff string) ([]FactRow, error) {
	const sql = `
select domain_id, day::text, new_count, lost_count, net_change, total_count, recorded_at
from backlink_velocity_facts
where domain_id = $1
and day >= $2
order by day asc
`
	rows, err := r.q.Query(ctx, sql, domainID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []FactRow
	for rows.Next() {
		var f FactRow
		if err := rows.Scan(
			&f.DomainID, &f.Day, &f.NewCount, &f.LostCount, &f.NetChange, &f.TotalCount, &f.RecordedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
