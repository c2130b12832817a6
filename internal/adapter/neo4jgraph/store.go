// Package neo4jgraph stores players and their relations in Neo4j.
package neo4jgraph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ScoreSync/internal/adapter"
	"ScoreSync/internal/config"
	"ScoreSync/internal/interfaces"
	"ScoreSync/internal/model"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"
)

// BackendName graph.backend value selecting this store
const BackendName = "neo4j"

const playerLabel = "Player"

const (
	cypherPlayerConstraint = `CREATE CONSTRAINT player_name_unique IF NOT EXISTS FOR (p:Player) REQUIRE p.name IS UNIQUE`

	cypherCreatePlayer = `
MERGE (p:Player {name: $name})
ON CREATE SET p.id = $id, p.label = $label
SET p.aliases = $aliases, p.is_sub = $is_sub
RETURN p.id AS id, p.label AS label`

	cypherCreateWith = `
MATCH (a:Player {id: $from}), (b:Player {id: $to})
MERGE (a)-[:TEAMED_WITH {source: $source, played_on: $played_on, order: $order}]->(b)`

	cypherCreateAgainst = `
MATCH (a:Player {id: $from}), (b:Player {id: $to})
MERGE (a)-[r:PLAYED_AGAINST {source: $source, played_on: $played_on, order: $order}]->(b)
SET r.points_scored = $points_scored`
)

func init() {
	adapter.Register(BackendName, New)
}

// Store GraphStore over a neo4j driver
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *logrus.Logger
}

// New adapter.Factory for the neo4j backend
func New(cfg *config.GraphConfig, _ adapter.Deps, logger *logrus.Logger) (interfaces.GraphStore, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, errors.New("graph.uri is required for the neo4j backend")
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(cfg.User, cfg.Password, ""), func(c *neo4j.Config) {
		if cfg.MaxPool > 0 {
			c.MaxConnectionPoolSize = cfg.MaxPool
		}
		c.SocketConnectTimeout = timeout
	})
	if err != nil {
		return nil, fmt.Errorf("init neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	s := &Store{driver: driver, database: cfg.Database, logger: logger}
	if err := s.write(ctx, cypherPlayerConstraint, nil); err != nil {
		// older servers lack IF NOT EXISTS; MERGE by name still holds without it
		logger.WithError(err).Warn("ensure player name constraint")
	}
	return s, nil
}

func (s *Store) GetName() string { return BackendName }

func (s *Store) CreatePlayer(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	res, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypherCreatePlayer, playerParams(req, uuid.NewString()))
		if err != nil {
			return nil, err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, err
		}
		id, _, err := neo4j.GetRecordValue[string](record, "id")
		if err != nil {
			return nil, err
		}
		label, _, err := neo4j.GetRecordValue[string](record, "label")
		if err != nil {
			return nil, err
		}
		return &model.Player{ID: id, Name: req.Name, Aliases: req.Aliases, IsSub: req.IsSub, Label: label}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j %s %q: %w", model.OpCreatePlayer, req.Name, err)
	}
	return res.(*model.Player), nil
}

func (s *Store) CreateWith(ctx context.Context, req *model.CreateWithRequest) error {
	if err := s.write(ctx, cypherCreateWith, withParams(req)); err != nil {
		return fmt.Errorf("neo4j %s: %w", model.OpCreateWith, err)
	}
	return nil
}

func (s *Store) CreateAgainst(ctx context.Context, req *model.CreateAgainstRequest) error {
	if err := s.write(ctx, cypherCreateAgainst, againstParams(req)); err != nil {
		return fmt.Errorf("neo4j %s: %w", model.OpCreateAgainst, err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) session(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
}

func (s *Store) write(ctx context.Context, cypher string, params map[string]any) error {
	session := s.session(ctx)
	defer session.Close(ctx)
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	return err
}

// The driver only accepts signed integers, so unsigned fields are widened to int64.

func playerParams(req *model.CreatePlayerRequest, id string) map[string]any {
	aliases := req.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return map[string]any{
		"id":      id,
		"name":    req.Name,
		"label":   playerLabel,
		"aliases": aliases,
		"is_sub":  req.IsSub,
	}
}

func withParams(req *model.CreateWithRequest) map[string]any {
	return map[string]any{
		"from":      req.From,
		"to":        req.To,
		"source":    req.Source,
		"played_on": req.PlayedOn,
		"order":     int64(req.Order),
	}
}

func againstParams(req *model.CreateAgainstRequest) map[string]any {
	return map[string]any{
		"from":          req.From,
		"to":            req.To,
		"source":        req.Source,
		"played_on":     req.PlayedOn,
		"order":         int64(req.Order),
		"points_scored": int64(req.PointsScored),
	}
}
