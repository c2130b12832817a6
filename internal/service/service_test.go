package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"ScoreSync/internal/config"
	"ScoreSync/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetHeader = "Date,GameNo,A,B,PtsAB,X,Y,PtsXY\n"

type fakeStore struct {
	mu            sync.Mutex
	players       []model.CreatePlayerRequest
	with          []model.CreateWithRequest
	against       []model.CreateAgainstRequest
	failOnAgainst bool
}

func (f *fakeStore) GetName() string { return "fake" }

func (f *fakeStore) CreatePlayer(_ context.Context, req *model.CreatePlayerRequest) (*model.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players = append(f.players, *req)
	return &model.Player{ID: "id-" + req.Name, Name: req.Name, Aliases: req.Aliases, IsSub: req.IsSub}, nil
}

func (f *fakeStore) CreateWith(_ context.Context, req *model.CreateWithRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.with = append(f.with, *req)
	return nil
}

func (f *fakeStore) CreateAgainst(_ context.Context, req *model.CreateAgainstRequest) error {
	if f.failOnAgainst {
		return errors.New("store unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.against = append(f.against, *req)
	return nil
}

func (f *fakeStore) Close(context.Context) error { return nil }

type fakeRuns struct {
	runs []*model.SyncRun
}

func (f *fakeRuns) CreateRun(_ context.Context, run *model.SyncRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRuns) ListRuns(context.Context, int, int) ([]*model.SyncRun, int64, error) {
	return f.runs, int64(len(f.runs)), nil
}

func (f *fakeRuns) GetRun(context.Context, string) (*model.SyncRun, error) {
	return nil, errors.New("not implemented")
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// fixture: two sessions, one broken sheet, Nikhil and Chetan known by alias, Bhavin and Ravi guests
func newFixture(t *testing.T) (*IngestService, string) {
	t.Helper()
	scores, aliases := t.TempDir(), t.TempDir()
	writeFile(t, scores, "s1.csv", sheetHeader+
		"2026-01-01,1,Nik,Chan,21,Bhavin,Ravi,15\n")
	writeFile(t, scores, "s2.csv", sheetHeader+
		"2026-01-08,1,Nikhil,Bhavin,18,Chan,Ravi,21\n")
	bad := writeFile(t, scores, "s3.csv", sheetHeader+"2026-01-09,x,a,b,1,c,d,2\n")
	writeFile(t, aliases, "Nikhil.txt", "Nik\nN\n")
	writeFile(t, aliases, "Chetan.txt", "Chan\n")

	svc, err := NewIngestService(&config.SourcesConfig{ScoresDir: scores, AliasesDir: aliases, Concurrency: 2}, quietLogger())
	require.NoError(t, err)
	return svc, bad
}

func TestIngestRun(t *testing.T) {
	svc, bad := newFixture(t)

	res, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, res.Games, 2)
	assert.Equal(t, []string{bad}, res.FailedSources())
	assert.Equal(t, []string{"Bhavin", "Chetan", "Nikhil", "Ravi"}, res.Identities)
	assert.Equal(t, "Nik", res.Games[0].PlayerA)
	assert.Equal(t, "Nikhil", res.Normalized[0].PlayerA)
	assert.Equal(t, "Chetan", res.Normalized[0].PlayerB)
	assert.Empty(t, res.Conflicts)
}

func TestIngestRejectsUnknownStrategy(t *testing.T) {
	_, err := NewIngestService(&config.SourcesConfig{Strategy: "lenient"}, quietLogger())
	require.Error(t, err)
}

func TestIngestCancelled(t *testing.T) {
	svc, _ := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeriveRelations(t *testing.T) {
	games := []model.Game{{
		Source: "s.csv", Date: "d1", GameNo: 7,
		PlayerA: "A", PlayerB: "B", PointsAB: 21,
		PlayerX: "X", PlayerY: "Y", PointsXY: 17,
	}}

	teams, opponents := DeriveRelations(games)

	assert.Equal(t, []TeamEdge{
		{From: "A", To: "B", Source: "s.csv", PlayedOn: "d1", Order: 7},
		{From: "X", To: "Y", Source: "s.csv", PlayedOn: "d1", Order: 7},
	}, teams)
	require.Len(t, opponents, 8)
	assert.Equal(t, OpponentEdge{From: "A", To: "X", Source: "s.csv", PlayedOn: "d1", Order: 7, PointsScored: 21}, opponents[0])
	assert.Equal(t, OpponentEdge{From: "X", To: "A", Source: "s.csv", PlayedOn: "d1", Order: 7, PointsScored: 17}, opponents[1])
	assert.Equal(t, OpponentEdge{From: "Y", To: "B", Source: "s.csv", PlayedOn: "d1", Order: 7, PointsScored: 17}, opponents[7])
}

func TestDeriveRelationsSkipsSelfPairs(t *testing.T) {
	games := []model.Game{{Date: "d", GameNo: 1, PlayerA: "A", PlayerB: "A", PlayerX: "A", PlayerY: "Y"}}

	teams, opponents := DeriveRelations(games)

	assert.Equal(t, []TeamEdge{{From: "A", To: "Y", PlayedOn: "d", Order: 1}}, teams)
	// A->Y and Y->A twice (once per A on the first side)
	assert.Len(t, opponents, 4)
	for _, e := range opponents {
		assert.NotEqual(t, e.From, e.To)
	}
}

func TestSyncRun(t *testing.T) {
	ingest, bad := newFixture(t)
	store, runs := &fakeStore{}, &fakeRuns{}
	svc := NewSyncService(ingest, store, runs, quietLogger())

	report, err := svc.Run(context.Background(), SyncOptions{})
	require.NoError(t, err)

	assert.Equal(t, model.RunStatusSucceeded, report.Status)
	assert.Equal(t, "fake", report.Backend)
	assert.Equal(t, 2, report.GamesLoaded)
	assert.Equal(t, 4, report.Players)
	assert.Equal(t, 4, report.TeamedWith)
	assert.Equal(t, 16, report.PlayedAgainst)
	assert.Equal(t, []string{bad}, report.FailedSources)
	assert.Equal(t, "partial", report.GamesStatus)

	require.Len(t, store.players, 4)
	assert.Equal(t, model.CreatePlayerRequest{Name: "Bhavin", IsSub: true}, store.players[0])
	assert.Equal(t, model.CreatePlayerRequest{Name: "Chetan", Aliases: []string{"Chan"}}, store.players[1])
	assert.Equal(t, "Nikhil", store.players[2].Name)
	assert.Equal(t, model.CreatePlayerRequest{Name: "Ravi", IsSub: true}, store.players[3])
	assert.Equal(t, model.CreateWithRequest{From: "id-Nikhil", To: "id-Chetan", Source: "s1.csv", PlayedOn: "2026-01-01", Order: 1}, store.with[0])
	assert.Equal(t, "s2.csv", store.against[len(store.against)-1].Source)
	assert.Len(t, store.against, 16)

	require.Len(t, runs.runs, 1)
	assert.Equal(t, report.RunID, runs.runs[0].ID)
	assert.JSONEq(t, `["`+bad+`"]`, string(runs.runs[0].FailedSources))
}

func TestSyncDryRunPushesNothing(t *testing.T) {
	ingest, _ := newFixture(t)
	runs := &fakeRuns{}
	svc := NewSyncService(ingest, nil, runs, quietLogger())

	report, err := svc.Run(context.Background(), SyncOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, model.RunStatusDryRun, report.Status)
	assert.Equal(t, 16, report.PlayedAgainst)
	require.Len(t, runs.runs, 1)
	assert.Equal(t, model.RunStatusDryRun, runs.runs[0].Status)
}

func TestSyncWithoutStore(t *testing.T) {
	ingest, _ := newFixture(t)
	svc := NewSyncService(ingest, nil, nil, quietLogger())

	_, err := svc.Run(context.Background(), SyncOptions{})
	assert.ErrorIs(t, err, ErrNoGraphStore)
}

func TestSyncPushFailureIsRecorded(t *testing.T) {
	ingest, _ := newFixture(t)
	runs := &fakeRuns{}
	svc := NewSyncService(ingest, &fakeStore{failOnAgainst: true}, runs, quietLogger())

	report, err := svc.Run(context.Background(), SyncOptions{})
	require.Error(t, err)
	require.NotNil(t, report)

	assert.Equal(t, model.RunStatusFailed, report.Status)
	assert.Contains(t, report.Error, "store unavailable")
	require.Len(t, runs.runs, 1)
	assert.Equal(t, model.RunStatusFailed, runs.runs[0].Status)
}
