package adapter

import (
	"errors"
	"fmt"
	"strings"

	"ScoreSync/internal/config"
	"ScoreSync/internal/interfaces"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrUnknownBackend graph.backend names no registered factory
var ErrUnknownBackend = errors.New("unknown graph backend")

// Deps shared resources a backend may need
type Deps struct {
	DB *gorm.DB // nil when database.dsn is empty
}

// Factory graph store factory signature
// in: graph config, shared deps, logger
// out: a GraphStore ready for use
type Factory func(cfg *config.GraphConfig, deps Deps, logger *logrus.Logger) (interfaces.GraphStore, error)

// NewGraphStore builds the store named by cfg.Backend
func NewGraphStore(cfg *config.GraphConfig, deps Deps, logger *logrus.Logger) (interfaces.GraphStore, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	factory, ok := GetFactory(backend)
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownBackend, cfg.Backend, ListFactories())
	}
	store, err := factory(cfg, deps, logger)
	if err != nil {
		return nil, fmt.Errorf("init graph backend %s: %w", backend, err)
	}
	logger.WithField("backend", store.GetName()).Info("graph store ready")
	return store, nil
}
