package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ScoreSync/internal/model"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrMissingColumn the header row lacks one of model.GameColumns
var ErrMissingColumn = errors.New("missing required column")

// RowError a score sheet row that could not become a Game (StrategyRow only)
type RowError struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Err    error  `json:"-"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s: line %d: %v", e.Source, e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// GamesResult outcome of loading a scores directory
type GamesResult struct {
	Games           []model.Game `json:"games"`
	FailedSources   []string     `json:"failed_sources"`
	RowErrors       []RowError   `json:"-"`
	DirectoryFailed bool         `json:"directory_failed"`
}

// Status see Status
func (r *GamesResult) Status() Status {
	return statusOf(r.DirectoryFailed, len(r.FailedSources)+len(r.RowErrors))
}

// GameLoader loads every score sheet in a directory
type GameLoader struct {
	strategy    Strategy
	concurrency int
	logger      *logrus.Logger
}

// NewGameLoader concurrency <= 0 falls back to a small default; logger may be nil
func NewGameLoader(strategy Strategy, concurrency int, logger *logrus.Logger) *GameLoader {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &GameLoader{strategy: strategy, concurrency: concurrency, logger: orDiscard(logger)}
}

// LoadGames loads dir with the default file-level strategy
func LoadGames(dir string) *GamesResult {
	return NewGameLoader(StrategyFile, 0, nil).Load(context.Background(), dir)
}

type gamesFileResult struct {
	games   []model.Game
	rowErrs []RowError
	err     error
}

// Load parses every regular file of dir. Files are parsed concurrently; results are merged
// in lexical path order. A cancelled ctx turns the files not yet parsed into failed sources.
func (l *GameLoader) Load(ctx context.Context, dir string) *GamesResult {
	paths, err := listFiles(dir)
	if err != nil {
		l.logger.WithError(err).WithField("source", dir).Error("failed to read scores directory")
		return &GamesResult{Games: []model.Game{}, FailedSources: []string{dir}, DirectoryFailed: true}
	}

	results := make([]gamesFileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i].games, results[i].rowErrs, results[i].err = l.loadFile(path)
			return nil
		})
	}
	_ = g.Wait()

	res := &GamesResult{Games: []model.Game{}, FailedSources: []string{}}
	for i, path := range paths {
		r := results[i]
		if r.err != nil {
			l.logger.WithError(r.err).WithField("source", path).Warn("failed to load score sheet")
			res.FailedSources = append(res.FailedSources, path)
			continue
		}
		for _, re := range r.rowErrs {
			l.logger.WithError(re.Err).WithFields(logrus.Fields{"source": re.Source, "line": re.Line}).Warn("skipped score sheet row")
		}
		res.Games = append(res.Games, r.games...)
		res.RowErrors = append(res.RowErrors, r.rowErrs...)
	}
	return res
}

// loadFile all-or-nothing under StrategyFile; under StrategyRow only open/header errors fail the file
func (l *GameLoader) loadFile(path string) ([]model.Game, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, nil, err
	}

	source := filepath.Base(path)
	var (
		games   []model.Game
		rowErrs []RowError
	)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var pe *csv.ParseError
		if err != nil && !errors.As(err, &pe) {
			return nil, nil, err
		}
		line := recordLine(r, pe)
		if err == nil {
			var game model.Game
			game, err = parseGame(rec, idx)
			if err == nil {
				game.Source = source
				games = append(games, game)
				continue
			}
		}
		if l.strategy == StrategyFile {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		rowErrs = append(rowErrs, RowError{Source: path, Line: line, Err: err})
	}
	return games, rowErrs, nil
}

func recordLine(r *csv.Reader, pe *csv.ParseError) int {
	if pe != nil {
		return pe.StartLine
	}
	line, _ := r.FieldPos(0)
	return line
}

// headerIndex column name -> position; every model.GameColumns entry must be present
func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, col := range model.GameColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

func parseGame(rec []string, idx map[string]int) (model.Game, error) {
	get := func(col string) string { return rec[idx[col]] }

	gameNo, err := strconv.ParseUint(get(model.ColGameNo), 10, 32)
	if err != nil {
		return model.Game{}, fmt.Errorf("%s: %w", model.ColGameNo, err)
	}
	ptsAB, err := strconv.ParseUint(get(model.ColPointsAB), 10, 8)
	if err != nil {
		return model.Game{}, fmt.Errorf("%s: %w", model.ColPointsAB, err)
	}
	ptsXY, err := strconv.ParseUint(get(model.ColPointsXY), 10, 8)
	if err != nil {
		return model.Game{}, fmt.Errorf("%s: %w", model.ColPointsXY, err)
	}
	return model.Game{
		Date:     get(model.ColDate),
		GameNo:   uint32(gameNo),
		PlayerA:  get(model.ColPlayerA),
		PlayerB:  get(model.ColPlayerB),
		PointsAB: uint8(ptsAB),
		PlayerX:  get(model.ColPlayerX),
		PlayerY:  get(model.ColPlayerY),
		PointsXY: uint8(ptsXY),
	}, nil
}

func orDiscard(logger *logrus.Logger) *logrus.Logger {
	if logger != nil {
		return logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
