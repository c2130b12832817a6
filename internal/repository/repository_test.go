package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"ScoreSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func aliasesOf(t *testing.T, p *model.PlayerNode) []string {
	t.Helper()
	var out []string
	require.NoError(t, json.Unmarshal(p.Aliases, &out))
	return out
}

func TestUpsertPlayerKeepsIDAcrossRuns(t *testing.T) {
	repo := NewGraphRepository(newTestDB(t))
	ctx := context.Background()

	first, err := repo.UpsertPlayer(ctx, "Nikhil", []string{"Nik"}, false)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := repo.UpsertPlayer(ctx, "Nikhil", []string{"Nik", "N"}, false)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{"Nik", "N"}, aliasesOf(t, second))

	guest, err := repo.UpsertPlayer(ctx, "Guest", nil, true)
	require.NoError(t, err)
	assert.True(t, guest.IsSub)
	assert.Equal(t, []string{}, aliasesOf(t, guest))

	players, err := repo.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Guest", players[0].Name)
	assert.Equal(t, "Nikhil", players[1].Name)
}

func TestEnsureEdgesAreIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewGraphRepository(db)
	ctx := context.Background()

	with := func() *model.TeamedWith {
		return &model.TeamedWith{FromID: "a", ToID: "b", PlayedOn: "2026-01-01", PlayOrder: 1}
	}
	require.NoError(t, repo.EnsureTeamedWith(ctx, with()))
	require.NoError(t, repo.EnsureTeamedWith(ctx, with()))

	var teamed int64
	require.NoError(t, db.Model(&model.TeamedWith{}).Count(&teamed).Error)
	assert.Equal(t, int64(1), teamed)

	require.NoError(t, repo.EnsurePlayedAgainst(ctx, &model.PlayedAgainst{FromID: "a", ToID: "x", PlayedOn: "2026-01-01", PlayOrder: 1, PointsScored: 15}))
	require.NoError(t, repo.EnsurePlayedAgainst(ctx, &model.PlayedAgainst{FromID: "a", ToID: "x", PlayedOn: "2026-01-01", PlayOrder: 1, PointsScored: 21}))
	require.NoError(t, repo.EnsurePlayedAgainst(ctx, &model.PlayedAgainst{FromID: "a", ToID: "x", PlayedOn: "2026-01-01", PlayOrder: 2, PointsScored: 9}))

	var against []model.PlayedAgainst
	require.NoError(t, db.Order("play_order ASC").Find(&against).Error)
	require.Len(t, against, 2)
	assert.Equal(t, uint8(21), against[0].PointsScored)
	assert.Equal(t, uint8(9), against[1].PointsScored)
}

func TestRunRepository(t *testing.T) {
	repo := NewRunRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateRun(ctx, &model.SyncRun{
			ID:         fmt.Sprintf("run-%d", i),
			Status:     model.RunStatusSucceeded,
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		}))
	}

	runs, total, err := repo.ListRuns(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "run-1", runs[1].ID)

	runs, _, err = repo.ListRuns(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-0", runs[0].ID)

	got, err := repo.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusSucceeded, got.Status)

	_, err = repo.GetRun(ctx, "missing")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestEdgesFromDifferentSourcesStayApart(t *testing.T) {
	db := newTestDB(t)
	repo := NewGraphRepository(db)
	ctx := context.Background()

	for _, src := range []string{"court1.csv", "court2.csv"} {
		require.NoError(t, repo.EnsureTeamedWith(ctx, &model.TeamedWith{FromID: "a", ToID: "b", Source: src, PlayedOn: "2026-01-01", PlayOrder: 1}))
	}
	require.NoError(t, repo.EnsurePlayedAgainst(ctx, &model.PlayedAgainst{FromID: "a", ToID: "x", Source: "court1.csv", PlayedOn: "2026-01-01", PlayOrder: 1, PointsScored: 21}))
	require.NoError(t, repo.EnsurePlayedAgainst(ctx, &model.PlayedAgainst{FromID: "a", ToID: "x", Source: "court2.csv", PlayedOn: "2026-01-01", PlayOrder: 1, PointsScored: 10}))

	var teamed int64
	require.NoError(t, db.Model(&model.TeamedWith{}).Count(&teamed).Error)
	assert.Equal(t, int64(2), teamed)

	var against []model.PlayedAgainst
	require.NoError(t, db.Order("source ASC").Find(&against).Error)
	require.Len(t, against, 2)
	assert.Equal(t, uint8(21), against[0].PointsScored)
	assert.Equal(t, uint8(10), against[1].PointsScored)
}
