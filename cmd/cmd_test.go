package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ScoreSync/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	l := newLogger(&config.LogConfig{Level: "debug", Format: "json"})
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = newLogger(&config.LogConfig{Level: "loud"})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestOpenDatabase(t *testing.T) {
	log := newLogger(&config.LogConfig{Level: "error"})

	db, err := openDatabase(&config.DatabaseConfig{}, log)
	require.NoError(t, err)
	assert.Nil(t, db)

	_, err = openDatabase(&config.DatabaseConfig{Driver: "oracle", DSN: "x"}, log)
	require.Error(t, err)

	db, err = openDatabase(&config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "runs.db")}, log)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("sync_runs"))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.txt")
	out := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(raw, []byte("2026-01-01\nheader\nA/B,21,X/Y,17\nbroken\n"), 0o644))

	cmd := newRootCmd()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"convert", raw, "-o", out})
	require.NoError(t, cmd.Execute())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Date,GameNo,A,B,PtsAB,X,Y,PtsXY\n2026-01-01,1,A,B,21,X,Y,17\n", string(got))
	assert.Contains(t, stderr.String(), "line 4")
}

func TestSyncCommandDryRun(t *testing.T) {
	scores, aliases := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(scores, "s.csv"),
		[]byte("Date,GameNo,A,B,PtsAB,X,Y,PtsXY\nd,1,Nik,B,21,X,Y,17\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(aliases, "Nikhil"), []byte("Nik\n"), 0o644))
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0o644))
	t.Setenv("DATABASE_DSN", "")

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--config", cfgPath, "sync", "--dry-run", "--scores", scores, "--aliases", aliases})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.True(t, strings.Contains(out, ": dry_run"), out)
	assert.Contains(t, out, "players:        4")
	assert.Contains(t, out, "failed sources: 0")
}
