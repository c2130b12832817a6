package repository

import (
	"context"
	"errors"
	"fmt"

	"ScoreSync/internal/model"

	"gorm.io/gorm"
)

// ErrRunNotFound no ledger row with the requested id
var ErrRunNotFound = errors.New("sync run not found")

// RunRepository sync run ledger
type RunRepository interface {
	// CreateRun records a finished run
	CreateRun(ctx context.Context, run *model.SyncRun) error
	// ListRuns newest first, paged
	ListRuns(ctx context.Context, page, pageSize int) ([]*model.SyncRun, int64, error)
	// GetRun by id, ErrRunNotFound when absent
	GetRun(ctx context.Context, id string) (*model.SyncRun, error)
}

type runRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a RunRepository
func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) CreateRun(ctx context.Context, run *model.SyncRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *runRepository) ListRuns(ctx context.Context, page, pageSize int) ([]*model.SyncRun, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.SyncRun{})
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var runs []*model.SyncRun
	if err := db.
		Order("started_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&runs).Error; err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}

func (r *runRepository) GetRun(ctx context.Context, id string) (*model.SyncRun, error) {
	var run model.SyncRun
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
