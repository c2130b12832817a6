package repository

import (
	"fmt"

	"ScoreSync/internal/model"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the players, edge and ledger tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.PlayerNode{},
		&model.TeamedWith{},
		&model.PlayedAgainst{},
		&model.SyncRun{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
