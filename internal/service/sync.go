package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ScoreSync/internal/interfaces"
	"ScoreSync/internal/model"
	"ScoreSync/internal/normalize"
	"ScoreSync/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ErrNoGraphStore a non dry run was requested without a configured backend
var ErrNoGraphStore = errors.New("no graph store configured")

// SyncOptions per-run switches
type SyncOptions struct {
	DryRun bool // ingest and derive only, push nothing
}

// SyncReport outcome of one sync run
type SyncReport struct {
	RunID         string               `json:"run_id"`
	Backend       string               `json:"backend"`
	Status        string               `json:"status"`
	GamesLoaded   int                  `json:"games_loaded"`
	RowErrors     int                  `json:"row_errors"`
	AliasEntries  int                  `json:"alias_entries"`
	Players       int                  `json:"players"`
	TeamedWith    int                  `json:"teamed_with"`
	PlayedAgainst int                  `json:"played_against"`
	GamesStatus   string               `json:"games_status"`
	AliasesStatus string               `json:"aliases_status"`
	FailedSources []string             `json:"failed_sources"`
	Overwritten   []string             `json:"overwritten"`
	Conflicts     []normalize.Conflict `json:"conflicts"`
	Error         string               `json:"error,omitempty"`
	StartedAt     time.Time            `json:"started_at"`
	FinishedAt    time.Time            `json:"finished_at"`
}

// SyncService ingest, then push players and relations to the graph store
type SyncService struct {
	ingest *IngestService
	store  interfaces.GraphStore    // nil: dry runs only
	runs   repository.RunRepository // nil: no ledger
	logger *logrus.Logger
}

func NewSyncService(ingest *IngestService, store interfaces.GraphStore, runs repository.RunRepository, logger *logrus.Logger) *SyncService {
	return &SyncService{ingest: ingest, store: store, runs: runs, logger: logger}
}

// Ingest one ingest pass without touching the graph store
func (s *SyncService) Ingest(ctx context.Context) (*IngestResult, error) {
	return s.ingest.Run(ctx)
}

// Runs the run ledger, nil when not configured
func (s *SyncService) Runs() repository.RunRepository { return s.runs }

// Run one sync. The report is returned even when the push fails.
func (s *SyncService) Run(ctx context.Context, opts SyncOptions) (*SyncReport, error) {
	report := &SyncReport{RunID: uuid.NewString(), StartedAt: time.Now().UTC()}
	if s.store != nil {
		report.Backend = s.store.GetName()
	}
	if !opts.DryRun && s.store == nil {
		return nil, ErrNoGraphStore
	}

	// 1. ingest
	res, err := s.ingest.Run(ctx)
	if err != nil {
		return nil, err
	}
	teams, opponents := DeriveRelations(res.Normalized)
	report.GamesLoaded = len(res.Games)
	report.RowErrors = len(res.GamesLoad.RowErrors)
	report.AliasEntries = len(res.Aliases)
	report.Players = len(res.Identities)
	report.TeamedWith = len(teams)
	report.PlayedAgainst = len(opponents)
	report.GamesStatus = res.GamesLoad.Status().String()
	report.AliasesStatus = res.AliasesLoad.Status().String()
	report.FailedSources = res.FailedSources()
	report.Overwritten = res.AliasesLoad.Overwritten
	report.Conflicts = res.Conflicts

	// 2. push
	var pushErr error
	if opts.DryRun {
		report.Status = model.RunStatusDryRun
	} else {
		pushErr = s.push(ctx, res, teams, opponents)
		if pushErr != nil {
			report.Status = model.RunStatusFailed
			report.Error = pushErr.Error()
		} else {
			report.Status = model.RunStatusSucceeded
		}
	}
	report.FinishedAt = time.Now().UTC()

	// 3. ledger
	s.record(ctx, report)

	logEntry := s.logger.WithFields(logrus.Fields{
		"run_id":         report.RunID,
		"status":         report.Status,
		"games":          report.GamesLoaded,
		"players":        report.Players,
		"teamed_with":    report.TeamedWith,
		"played_against": report.PlayedAgainst,
		"failed_sources": len(report.FailedSources),
	})
	if pushErr != nil {
		logEntry.WithError(pushErr).Error("sync run failed")
		return report, fmt.Errorf("push to %s: %w", report.Backend, pushErr)
	}
	logEntry.Info("sync run finished")
	return report, nil
}

func (s *SyncService) push(ctx context.Context, res *IngestResult, teams []TeamEdge, opponents []OpponentEdge) error {
	ids := make(map[string]string, len(res.Identities))
	for _, name := range res.Identities {
		aliases, known := res.Aliases[name]
		player, err := s.store.CreatePlayer(ctx, &model.CreatePlayerRequest{
			Name:    name,
			Aliases: aliases,
			IsSub:   !known,
		})
		if err != nil {
			return fmt.Errorf("create player %q: %w", name, err)
		}
		ids[name] = player.ID
	}

	for _, e := range teams {
		err := s.store.CreateWith(ctx, &model.CreateWithRequest{
			From: ids[e.From], To: ids[e.To], Source: e.Source, PlayedOn: e.PlayedOn, Order: e.Order,
		})
		if err != nil {
			return fmt.Errorf("teamed with %s->%s %s game %d: %w", e.From, e.To, e.Source, e.Order, err)
		}
	}
	for _, e := range opponents {
		err := s.store.CreateAgainst(ctx, &model.CreateAgainstRequest{
			From: ids[e.From], To: ids[e.To], Source: e.Source, PlayedOn: e.PlayedOn, Order: e.Order, PointsScored: e.PointsScored,
		})
		if err != nil {
			return fmt.Errorf("played against %s->%s %s game %d: %w", e.From, e.To, e.Source, e.Order, err)
		}
	}
	return nil
}

func (s *SyncService) record(ctx context.Context, report *SyncReport) {
	if s.runs == nil {
		return
	}
	failed, err := json.Marshal(report.FailedSources)
	if err != nil {
		s.logger.WithError(err).Warn("encode failed sources")
	}
	run := &model.SyncRun{
		ID:            report.RunID,
		Backend:       report.Backend,
		Status:        report.Status,
		GamesLoaded:   report.GamesLoaded,
		AliasEntries:  report.AliasEntries,
		Players:       report.Players,
		TeamedWith:    report.TeamedWith,
		PlayedAgainst: report.PlayedAgainst,
		Conflicts:     len(report.Conflicts),
		FailedSources: datatypes.JSON(failed),
		Error:         report.Error,
		StartedAt:     report.StartedAt,
		FinishedAt:    report.FinishedAt,
	}
	// a cancelled request still gets its ledger row
	if err := s.runs.CreateRun(context.WithoutCancel(ctx), run); err != nil {
		s.logger.WithError(err).WithField("run_id", report.RunID).Error("record sync run")
	}
}
