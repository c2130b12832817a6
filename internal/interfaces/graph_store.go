package interfaces

import (
	"context"

	"ScoreSync/internal/model"
)

// GraphStore the downstream graph store every backend must implement
type GraphStore interface {
	GetName() string                                                                         // backend name
	CreatePlayer(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error) // create or reuse a player node, returns its identity
	CreateWith(ctx context.Context, req *model.CreateWithRequest) error                      // teamed-with edge between two player ids
	CreateAgainst(ctx context.Context, req *model.CreateAgainstRequest) error                // played-against edge between two player ids
	Close(ctx context.Context) error
}
