package helix

import (
	"context"
	"errors"
	"fmt"

	"ScoreSync/internal/adapter"
	"ScoreSync/internal/config"
	"ScoreSync/internal/interfaces"
	"ScoreSync/internal/model"

	"github.com/sirupsen/logrus"
)

// BackendName graph.backend value selecting this store
const BackendName = "helix"

func init() {
	adapter.Register(BackendName, New)
}

// Store GraphStore over the helix query transport
type Store struct {
	client *Client
	logger *logrus.Logger
}

// New adapter.Factory for the helix backend
func New(cfg *config.GraphConfig, _ adapter.Deps, logger *logrus.Logger) (interfaces.GraphStore, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("graph.base_url is required for the helix backend")
	}
	return &Store{client: NewClient(cfg, logger), logger: logger}, nil
}

func (s *Store) GetName() string { return BackendName }

func (s *Store) CreatePlayer(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error) {
	var resp model.CreatePlayerResponse
	if err := s.client.Query(ctx, model.OpCreatePlayer, req, &resp); err != nil {
		return nil, err
	}
	if resp.Player.ID == "" {
		return nil, fmt.Errorf("helix %s returned no player id for %q", model.OpCreatePlayer, req.Name)
	}
	return &resp.Player, nil
}

func (s *Store) CreateWith(ctx context.Context, req *model.CreateWithRequest) error {
	return s.client.Query(ctx, model.OpCreateWith, req, nil)
}

func (s *Store) CreateAgainst(ctx context.Context, req *model.CreateAgainstRequest) error {
	return s.client.Query(ctx, model.OpCreateAgainst, req, nil)
}

func (s *Store) Close(context.Context) error { return nil }
