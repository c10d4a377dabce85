// Package repo provides postgres access for keyword groups and position samples
package repo

import (
	"context"
	"database/sql"
	stderrs "errors"

	"ranksignal/internal/modkit/repokit"
	perr "ranksignal/internal/platform/errors"
)

// Repo is the minimal persistence surface for groups
type Repo interface {
	InsertGroup(ctx context.Context, g GroupRow) error
	GetGroup(ctx context.Context, groupID string) (GroupRow, error)
	GroupsByDomain(ctx context.Context, domainID string) ([]GroupRow, error)
	AddMember(ctx context.Context, groupID, keywordID string) error
	RemoveMember(ctx context.Context, groupID, keywordID string) error
	MemberKeywords(ctx context.Context, groupID string) ([]string, error)
	PositionsSince(ctx context.Context, keywordID, cutoff string) ([]PositionRow, error)
	SumLatestVolumes(ctx context.Context, keywordIDs []string) (int64, error)
}

// GroupRow is one stored keyword group
type GroupRow struct {
	ID       string
	DomainID string
	Name     string
	Color    string
}

// PositionRow is one keyword rank observation, Position nil means unranked
type PositionRow struct {
	Day      string
	Position *int
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

func (r *queries) InsertGroup(ctx context.Context, g GroupRow) error {
	const sql = `
insert into keyword_groups (id, domain_id, name, color)
values ($1, $2, $3, $4)
`
	_, err := r.q.Exec(ctx, sql, g.ID, g.DomainID, g.Name, g.Color)
	return err
}

// GetGroup surfaces a missing group as a not found error so callers can
// distinguish "no data yet" from an invalid reference
func (r *queries) GetGroup(ctx context.Context, groupID string) (GroupRow, error) {
	const sqlq = `
select id, domain_id, name, color
from keyword_groups
where id = $1
`
	var g GroupRow
	err := r.q.QueryRow(ctx, sqlq, groupID).Scan(&g.ID, &g.DomainID, &g.Name, &g.Color)
	if err != nil {
		if stderrs.Is(err, sql.ErrNoRows) {
			return GroupRow{}, perr.NotFoundf("keyword group %s not found", groupID)
		}
		return GroupRow{}, err
	}
	return g, nil
}

func (r *queries) GroupsByDomain(ctx context.Context, domainID string) ([]GroupRow, error) {
	const sql = `
select id, domain_id, name, color
from keyword_groups
where domain_id = $1
order by name asc
`
	rows, err := r.q.Query(ctx, sql, domainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GroupRow
	for rows.Next() {
		var g GroupRow
		if err := rows.Scan(&g.ID, &g.DomainID, &g.Name, &g.Color); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// AddMember upserts the membership link, repeat adds converge on one row
func (r *queries) AddMember(ctx context.Context, groupID, keywordID string) error {
	const sql = `
insert into keyword_group_members (group_id, keyword_id)
values ($1, $2)
on conflict (group_id, keyword_id) do nothing
`
	_, err := r.q.Exec(ctx, sql, groupID, keywordID)
	return err
}

func (r *queries) RemoveMember(ctx context.Context, groupID, keywordID string) error {
	const sql = `
delete from keyword_group_members
where group_id = $1
and keyword_id = $2
`
	_, err := r.q.Exec(ctx, sql, groupID, keywordID)
	return err
}

func (r *queries) MemberKeywords(ctx context.Context, groupID string) ([]string, error) {
	const sql = `
select keyword_id
from keyword_group_members
where group_id = $1
order by keyword_id asc
`
	rows, err := r.q.Query(ctx, sql, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// PositionsSince reads one keyword's samples with day >= cutoff
// nulls pass through so the bucketing stage can skip unranked days
func (r *queries) PositionsSince(ctx context.Context, keywordID, cutoff string) ([]PositionRow, error) {
	const sqlq = `
select day::text, position
from keyword_position_samples
where keyword_id = $1
and day >= $2
order by day asc
`
	rows, err := r.q.Query(ctx, sqlq, keywordID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PositionRow
	for rows.Next() {
		var p PositionRow
		var pos sql.NullInt64
		if err := rows.Scan(&p.Day, &pos); err != nil {
			return nil, err
		}
		if pos.Valid {
			v := int(pos.Int64)
			p.Position = &v
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SumLatestVolumes totals the newest known search volume per member keyword
func (r *queries) SumLatestVolumes(ctx context.Context, keywordIDs []string) (int64, error) {
	if len(keywordIDs) == 0 {
		return 0, nil
	}
	const sqlq = `
select coalesce(sum(search_volume), 0)
from (
	select distinct on (keyword_id) search_volume
	from keyword_position_samples
	where keyword_id = any($1)
	and search_volume is not null
	order by keyword_id, day desc
) latest
`
	var total int64
	if err := r.q.QueryRow(ctx, sqlq, keywordIDs).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
