package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ranksignal/internal/modkit/repokit"
	perr "ranksignal/internal/platform/errors"
	"ranksignal/internal/services/api/groups/domain"
	"ranksignal/internal/services/api/groups/repo"
)

// stubTx satisfies repokit.TxRunner for services that never touch SQL in tests
type stubTx struct{}

func (stubTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, errors.New("not implemented")
}
func (stubTx) Query(context.Context, string, ...any) (repokit.Rows, error) {
	return nil, errors.New("not implemented")
}
func (stubTx) QueryRow(context.Context, string, ...any) repokit.Row { return nil }
func (stubTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error {
	return fn(stubTx{})
}

func pos(v int) *int { return &v }

// fakeRepo replays canned groups, members, and position samples
type fakeRepo struct {
	mu sync.Mutex

	groups    map[string]repo.GroupRow
	members   map[string][]string
	positions map[string][]repo.PositionRow // keyed by keyword id
	volumes   map[string]int64

	inserted   []repo.GroupRow
	added      [][2]string
	removed    [][2]string
	lastCutoff string
	fetchErr   error
}

func (f *fakeRepo) InsertGroup(_ context.Context, g repo.GroupRow) error {
	f.inserted = append(f.inserted, g)
	return nil
}

func (f *fakeRepo) GetGroup(_ context.Context, id string) (repo.GroupRow, error) {
	g, ok := f.groups[id]
	if !ok {
		return repo.GroupRow{}, perr.NotFoundf("keyword group %s not found", id)
	}
	return g, nil
}

func (f *fakeRepo) GroupsByDomain(_ context.Context, domainID string) ([]repo.GroupRow, error) {
	var out []repo.GroupRow
	for _, g := range f.groups {
		if g.DomainID == domainID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRepo) AddMember(_ context.Context, groupID, keywordID string) error {
	f.added = append(f.added, [2]string{groupID, keywordID})
	return nil
}

func (f *fakeRepo) RemoveMember(_ context.Context, groupID, keywordID string) error {
	f.removed = append(f.removed, [2]string{groupID, keywordID})
	return nil
}

func (f *fakeRepo) MemberKeywords(_ context.Context, groupID string) ([]string, error) {
	return f.members[groupID], nil
}

func (f *fakeRepo) PositionsSince(_ context.Context, keywordID, cutoff string) ([]repo.PositionRow, error) {
	f.mu.Lock()
	f.lastCutoff = cutoff
	f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []repo.PositionRow
	for _, r := range f.positions[keywordID] {
		if r.Day >= cutoff {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) SumLatestVolumes(_ context.Context, keywordIDs []string) (int64, error) {
	var total int64
	for _, id := range keywordIDs {
		total += f.volumes[id]
	}
	return total, nil
}

func newSvc(t *testing.T, fr *fakeRepo) *Svc {
	t.Helper()
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return fr })
	s := New(stubTx{}, binder, Config{})
	s.now = func() time.Time { return time.Date(2026, 3, 31, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestCreateGroup_AssignsIDAndDefaultColor(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	s := newSvc(t, fr)
	s.newID = func() string { return "11111111-2222-4333-8444-555555555555" }

	g, err := s.CreateGroup(context.Background(), domain.CreateGroupInput{DomainID: "dom1", Name: "branded"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if g.GroupID != "11111111-2222-4333-8444-555555555555" {
		t.Fatalf("GroupID = %q", g.GroupID)
	}
	if g.Color != defaultColor {
		t.Fatalf("Color = %q, want default", g.Color)
	}
	if len(fr.inserted) != 1 || fr.inserted[0].Name != "branded" {
		t.Fatalf("inserted = %+v", fr.inserted)
	}
}

func TestAddKeyword_MissingGroupIsNotFound(t *testing.T) {
	t.Parallel()

	s := newSvc(t, &fakeRepo{})

	err := s.AddKeyword(context.Background(), domain.MemberInput{GroupID: "nope", KeywordID: "kw1"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("AddKeyword on missing group = %v, want not found", err)
	}
}

func TestPerformance_AveragesAcrossMembers(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{
		groups:  map[string]repo.GroupRow{"g1": {ID: "g1", DomainID: "dom1", Name: "branded"}},
		members: map[string][]string{"g1": {"kw1", "kw2", "kw3"}},
		positions: map[string][]repo.PositionRow{
			"kw1": {{Day: "2026-03-30", Position: pos(4)}, {Day: "2026-03-31", Position: pos(4)}},
			"kw2": {{Day: "2026-03-30", Position: pos(5)}, {Day: "2026-03-31", Position: pos(5)}},
			"kw3": {{Day: "2026-03-30", Position: pos(6)}}, // unranked on the 31st
		},
	}
	s := newSvc(t, fr)

	got, err := s.Performance(context.Background(), domain.PerformanceInput{GroupID: "g1"})
	if err != nil {
		t.Fatalf("Performance: %v", err)
	}
	want := []domain.PerformancePoint{
		{Date: "2026-03-30", AveragePosition: 5.0},
		{Date: "2026-03-31", AveragePosition: 4.5},
	}
	if len(got) != len(want) {
		t.Fatalf("Performance = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPerformance_WindowCutoff(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{
		groups:  map[string]repo.GroupRow{"g1": {ID: "g1", DomainID: "dom1"}},
		members: map[string][]string{"g1": {"kw1"}},
		positions: map[string][]repo.PositionRow{
			"kw1": {
				{Day: "2026-03-20", Position: pos(9)},
				{Day: "2026-03-28", Position: pos(3)},
			},
		},
	}
	s := newSvc(t, fr)

	got, err := s.Performance(context.Background(), domain.PerformanceInput{GroupID: "g1", WindowDays: 7})
	if err != nil {
		t.Fatalf("Performance: %v", err)
	}
	if fr.lastCutoff != "2026-03-24" {
		t.Fatalf("cutoff = %q, want 2026-03-24", fr.lastCutoff)
	}
	if len(got) != 1 || got[0].Date != "2026-03-28" {
		t.Fatalf("Performance = %+v, want only the in-window day", got)
	}
}

func TestPerformance_MissingGroup(t *testing.T) {
	t.Parallel()

	s := newSvc(t, &fakeRepo{})

	_, err := s.Performance(context.Background(), domain.PerformanceInput{GroupID: "nope"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Performance on missing group = %v, want not found", err)
	}
}

func TestPerformance_EmptyGroup(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{groups: map[string]repo.GroupRow{"g1": {ID: "g1"}}}
	s := newSvc(t, fr)

	got, err := s.Performance(context.Background(), domain.PerformanceInput{GroupID: "g1"})
	if err != nil {
		t.Fatalf("Performance: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Performance of empty group = %+v, want empty", got)
	}
}

func TestAllPerformance_GroupsAreIndependent(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{
		groups: map[string]repo.GroupRow{
			"g1": {ID: "g1", DomainID: "dom1", Name: "branded", Color: "#111111"},
			"g2": {ID: "g2", DomainID: "dom1", Name: "generic", Color: "#222222"},
		},
		members: map[string][]string{
			"g1": {"kw1"},
			// g2 has no members at all
		},
		positions: map[string][]repo.PositionRow{
			"kw1": {{Day: "2026-03-30", Position: pos(7)}},
		},
		volumes: map[string]int64{"kw1": 128400},
	}
	s := newSvc(t, fr)

	got, err := s.AllPerformance(context.Background(), domain.AllPerformanceInput{DomainID: "dom1"})
	if err != nil {
		t.Fatalf("AllPerformance: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("AllPerformance returned %d groups, want 2", len(got))
	}
	byID := map[string]domain.GroupSeries{}
	for _, g := range got {
		byID[g.GroupID] = g
	}
	if len(byID["g1"].Series) != 1 || byID["g1"].Series[0].AveragePosition != 7.0 {
		t.Fatalf("g1 series = %+v", byID["g1"].Series)
	}
	if byID["g1"].SearchVolume != 128400 || byID["g1"].SearchVolumeLabel != "128,400" {
		t.Fatalf("g1 volume = %d label %q", byID["g1"].SearchVolume, byID["g1"].SearchVolumeLabel)
	}
	if len(byID["g2"].Series) != 0 {
		t.Fatalf("g2 series = %+v, want empty", byID["g2"].Series)
	}
}

func TestPerformance_FetchErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("pg down")
	fr := &fakeRepo{
		groups:   map[string]repo.GroupRow{"g1": {ID: "g1"}},
		members:  map[string][]string{"g1": {"kw1", "kw2"}},
		fetchErr: boom,
	}
	s := newSvc(t, fr)

	_, err := s.Performance(context.Background(), domain.PerformanceInput{GroupID: "g1"})
	if !errors.Is(err, boom) {
		t.Fatalf("Performance error = %v, want wrapped fetch error", err)
	}
}
