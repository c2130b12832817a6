package service

import (
	"context"

	"ScoreSync/internal/config"
	"ScoreSync/internal/loader"
	"ScoreSync/internal/model"
	"ScoreSync/internal/normalize"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// IngestResult everything one pass over the source directories produced
type IngestResult struct {
	Games      []model.Game         `json:"-"` // as loaded
	Normalized []model.Game         `json:"games"`
	Aliases    map[string][]string  `json:"aliases"`
	Index      normalize.Index      `json:"-"`
	Conflicts  []normalize.Conflict `json:"conflicts"`
	Identities []string             `json:"identities"` // sorted

	GamesLoad   *loader.GamesResult   `json:"-"`
	AliasesLoad *loader.AliasesResult `json:"-"`
}

// FailedSources failed game files followed by failed alias files
func (r *IngestResult) FailedSources() []string {
	out := make([]string, 0, len(r.GamesLoad.FailedSources)+len(r.AliasesLoad.FailedSources))
	out = append(out, r.GamesLoad.FailedSources...)
	return append(out, r.AliasesLoad.FailedSources...)
}

// IngestService load -> index -> normalize -> identities
type IngestService struct {
	scoresDir  string
	aliasesDir string
	games      *loader.GameLoader
	aliases    *loader.AliasLoader
	logger     *logrus.Logger
}

// NewIngestService builds the loaders from the sources section
func NewIngestService(cfg *config.SourcesConfig, logger *logrus.Logger) (*IngestService, error) {
	strategy, err := loader.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	return &IngestService{
		scoresDir:  cfg.ScoresDir,
		aliasesDir: cfg.AliasesDir,
		games:      loader.NewGameLoader(strategy, cfg.Concurrency, logger),
		aliases:    loader.NewAliasLoader(cfg.Concurrency, logger),
		logger:     logger,
	}, nil
}

// Run one ingest pass. Source failures are reported in the result; the error is only ever ctx.Err().
func (s *IngestService) Run(ctx context.Context) (*IngestResult, error) {
	res := &IngestResult{}

	// 1. both loaders at once
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.GamesLoad = s.games.Load(gctx, s.scoresDir)
		return nil
	})
	g.Go(func() error {
		res.AliasesLoad = s.aliases.Load(gctx, s.aliasesDir)
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"dir":    s.scoresDir,
		"games":  len(res.GamesLoad.Games),
		"failed": len(res.GamesLoad.FailedSources),
		"rows":   len(res.GamesLoad.RowErrors),
		"status": res.GamesLoad.Status().String(),
	}).Info("score sheets loaded")
	s.logger.WithFields(logrus.Fields{
		"dir":         s.aliasesDir,
		"entries":     len(res.AliasesLoad.Aliases),
		"failed":      len(res.AliasesLoad.FailedSources),
		"overwritten": len(res.AliasesLoad.Overwritten),
		"status":      res.AliasesLoad.Status().String(),
	}).Info("alias files loaded")

	// 2. index, normalize, identities
	res.Games = res.GamesLoad.Games
	res.Aliases = res.AliasesLoad.Aliases
	res.Index, res.Conflicts = normalize.BuildIndexWithConflicts(res.Aliases)
	for _, c := range res.Conflicts {
		s.logger.WithFields(logrus.Fields{
			"alias":      c.Alias,
			"candidates": c.Candidates,
			"winner":     c.Winner,
		}).Warn("alias claimed by several players")
	}
	res.Normalized = normalize.Normalize(res.Games, res.Index)
	res.Identities = normalize.SortedIdentities(normalize.CollectIdentities(res.Normalized))
	return res, nil
}
