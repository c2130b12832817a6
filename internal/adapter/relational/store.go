// Package relational stores the player graph in the SQL database through GORM.
package relational

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ScoreSync/internal/adapter"
	"ScoreSync/internal/config"
	"ScoreSync/internal/interfaces"
	"ScoreSync/internal/model"
	"ScoreSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// BackendName graph.backend value selecting this store
const BackendName = "relational"

const playerLabel = "Player"

func init() {
	adapter.Register(BackendName, New)
}

// Store GraphStore over repository.GraphRepository
type Store struct {
	repo   repository.GraphRepository
	logger *logrus.Logger
}

// New adapter.Factory for the relational backend; needs deps.DB
func New(_ *config.GraphConfig, deps adapter.Deps, logger *logrus.Logger) (interfaces.GraphStore, error) {
	if deps.DB == nil {
		return nil, errors.New("the relational backend requires database.dsn")
	}
	return NewStore(repository.NewGraphRepository(deps.DB), logger), nil
}

// NewStore wraps an existing repository
func NewStore(repo repository.GraphRepository, logger *logrus.Logger) *Store {
	return &Store{repo: repo, logger: logger}
}

func (s *Store) GetName() string { return BackendName }

func (s *Store) CreatePlayer(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error) {
	node, err := s.repo.UpsertPlayer(ctx, req.Name, req.Aliases, req.IsSub)
	if err != nil {
		return nil, err
	}
	aliases := []string{}
	if len(node.Aliases) > 0 {
		if err := json.Unmarshal(node.Aliases, &aliases); err != nil {
			return nil, fmt.Errorf("decode aliases of %q: %w", node.Name, err)
		}
	}
	return &model.Player{
		ID:      node.ID,
		Name:    node.Name,
		Aliases: aliases,
		IsSub:   node.IsSub,
		Label:   playerLabel,
	}, nil
}

func (s *Store) CreateWith(ctx context.Context, req *model.CreateWithRequest) error {
	err := s.repo.EnsureTeamedWith(ctx, &model.TeamedWith{
		FromID:    req.From,
		ToID:      req.To,
		Source:    req.Source,
		PlayedOn:  req.PlayedOn,
		PlayOrder: req.Order,
	})
	if err != nil {
		return fmt.Errorf("store teamed_with %s->%s: %w", req.From, req.To, err)
	}
	return nil
}

func (s *Store) CreateAgainst(ctx context.Context, req *model.CreateAgainstRequest) error {
	err := s.repo.EnsurePlayedAgainst(ctx, &model.PlayedAgainst{
		FromID:       req.From,
		ToID:         req.To,
		Source:       req.Source,
		PlayedOn:     req.PlayedOn,
		PlayOrder:    req.Order,
		PointsScored: req.PointsScored,
	})
	if err != nil {
		return fmt.Errorf("store played_against %s->%s: %w", req.From, req.To, err)
	}
	return nil
}

// Close the *gorm.DB is owned by the caller
func (s *Store) Close(context.Context) error { return nil }
