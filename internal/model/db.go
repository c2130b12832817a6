package model

import (
	"time"

	"gorm.io/datatypes"
)

// PlayerNode players table, the relational rendition of a player node
type PlayerNode struct {
	ID        string         `gorm:"column:id;primaryKey;type:varchar(64)"`
	Name      string         `gorm:"column:name;type:varchar(128);uniqueIndex;not null"`
	Aliases   datatypes.JSON `gorm:"column:aliases;type:jsonb;not null"`
	IsSub     bool           `gorm:"column:is_sub;default:false"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TeamedWith teamed_with edge table
type TeamedWith struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	FromID    string    `gorm:"column:from_id;type:varchar(64);not null;uniqueIndex:uq_teamed_with"`
	ToID      string    `gorm:"column:to_id;type:varchar(64);not null;uniqueIndex:uq_teamed_with"`
	Source    string    `gorm:"column:source;type:varchar(255);not null;uniqueIndex:uq_teamed_with"`
	PlayedOn  string    `gorm:"column:played_on;type:varchar(64);not null;uniqueIndex:uq_teamed_with"`
	PlayOrder uint32    `gorm:"column:play_order;not null;uniqueIndex:uq_teamed_with"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// PlayedAgainst played_against edge table
type PlayedAgainst struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	FromID       string    `gorm:"column:from_id;type:varchar(64);not null;uniqueIndex:uq_played_against"`
	ToID         string    `gorm:"column:to_id;type:varchar(64);not null;uniqueIndex:uq_played_against"`
	Source       string    `gorm:"column:source;type:varchar(255);not null;uniqueIndex:uq_played_against"`
	PlayedOn     string    `gorm:"column:played_on;type:varchar(64);not null;uniqueIndex:uq_played_against"`
	PlayOrder    uint32    `gorm:"column:play_order;not null;uniqueIndex:uq_played_against"`
	PointsScored uint8     `gorm:"column:points_scored;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// Sync run status values
const (
	RunStatusSucceeded = "succeeded"
	RunStatusDryRun    = "dry_run"
	RunStatusFailed    = "failed"
)

// SyncRun sync_runs ledger: run metadata only, never the loaded games themselves
type SyncRun struct {
	ID            string         `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Backend       string         `gorm:"column:backend;type:varchar(32)" json:"backend"`
	Status        string         `gorm:"column:status;type:varchar(16);not null" json:"status"`
	GamesLoaded   int            `gorm:"column:games_loaded" json:"games_loaded"`
	AliasEntries  int            `gorm:"column:alias_entries" json:"alias_entries"`
	Players       int            `gorm:"column:players" json:"players"`
	TeamedWith    int            `gorm:"column:teamed_with" json:"teamed_with"`
	PlayedAgainst int            `gorm:"column:played_against" json:"played_against"`
	Conflicts     int            `gorm:"column:conflicts" json:"conflicts"`
	FailedSources datatypes.JSON `gorm:"column:failed_sources;type:jsonb" json:"failed_sources"`
	Error         string         `gorm:"column:error;type:text" json:"error,omitempty"`
	StartedAt     time.Time      `gorm:"column:started_at;not null" json:"started_at"`
	FinishedAt    time.Time      `gorm:"column:finished_at;not null" json:"finished_at"`
}

func (PlayerNode) TableName() string    { return "players" }
func (TeamedWith) TableName() string    { return "teamed_with" }
func (PlayedAgainst) TableName() string { return "played_against" }
func (SyncRun) TableName() string       { return "sync_runs" }
