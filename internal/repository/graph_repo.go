package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"ScoreSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GraphRepository relational storage for players and their relations
type GraphRepository interface {
	// UpsertPlayer creates the player or refreshes aliases/is_sub of an existing one, keyed by name
	UpsertPlayer(ctx context.Context, name string, aliases []string, isSub bool) (*model.PlayerNode, error)
	// EnsureTeamedWith inserts the edge unless it already exists
	EnsureTeamedWith(ctx context.Context, edge *model.TeamedWith) error
	// EnsurePlayedAgainst inserts the edge or updates its points
	EnsurePlayedAgainst(ctx context.Context, edge *model.PlayedAgainst) error
	// ListPlayers all players ordered by name
	ListPlayers(ctx context.Context) ([]*model.PlayerNode, error)
}

type graphRepository struct {
	db *gorm.DB
}

// NewGraphRepository creates a GraphRepository
func NewGraphRepository(db *gorm.DB) GraphRepository {
	return &graphRepository{db: db}
}

func (r *graphRepository) UpsertPlayer(ctx context.Context, name string, aliases []string, isSub bool) (*model.PlayerNode, error) {
	if aliases == nil {
		aliases = []string{}
	}
	raw, err := json.Marshal(aliases)
	if err != nil {
		return nil, fmt.Errorf("encode aliases of %q: %w", name, err)
	}

	node := &model.PlayerNode{
		ID:      uuid.NewString(),
		Name:    name,
		Aliases: datatypes.JSON(raw),
		IsSub:   isSub,
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"aliases", "is_sub", "updated_at"}),
	}).Create(node).Error
	if err != nil {
		return nil, fmt.Errorf("upsert player %q: %w", name, err)
	}

	// the id generated above is discarded on conflict, read back the stored row
	var stored model.PlayerNode
	if err := r.db.WithContext(ctx).Where("name = ?", name).Take(&stored).Error; err != nil {
		return nil, fmt.Errorf("reload player %q: %w", name, err)
	}
	return &stored, nil
}

func (r *graphRepository) EnsureTeamedWith(ctx context.Context, edge *model.TeamedWith) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   edgeKey,
		DoNothing: true,
	}).Create(edge).Error
}

func (r *graphRepository) EnsurePlayedAgainst(ctx context.Context, edge *model.PlayedAgainst) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   edgeKey,
		DoUpdates: clause.AssignmentColumns([]string{"points_scored"}),
	}).Create(edge).Error
}

func (r *graphRepository) ListPlayers(ctx context.Context) ([]*model.PlayerNode, error) {
	var players []*model.PlayerNode
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// edgeKey one game is (source, play_order); played_on is kept in the key so a re-dated sheet is a new game
var edgeKey = []clause.Column{{Name: "from_id"}, {Name: "to_id"}, {Name: "source"}, {Name: "played_on"}, {Name: "play_order"}}
