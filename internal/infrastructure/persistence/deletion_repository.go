package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/deletion"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/opstracker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDeletionJobRepository implements deletion.JobRepository using GORM
type GormDeletionJobRepository struct {
	db *gorm.DB
}

// NewGormDeletionJobRepository creates a new GormDeletionJobRepository
func NewGormDeletionJobRepository(db *gorm.DB) *GormDeletionJobRepository {
	return &GormDeletionJobRepository{db: db}
}

// Create inserts the job together with its branches. A second running job
// for the same user yields ErrAlreadyExists.
func (r *GormDeletionJobRepository) Create(ctx context.Context, job *deletion.Job) error {
	err := dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Create(models.DeletionJobModelFromDomain(job)).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// FindByID loads a job and its branches
func (r *GormDeletionJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*deletion.Job, error) {
	var model models.DeletionJobModel
	if err := r.withBranches(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindRunningByUser returns the newest running job for a user
func (r *GormDeletionJobRepository) FindRunningByUser(ctx context.Context, externalUserID string) (*deletion.Job, error) {
	var model models.DeletionJobModel
	if err := r.withBranches(ctx).
		Where("external_user_id = ? AND status = ?", externalUserID, string(deletion.JobStatusRunning)).
		Order("started_at DESC").
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindRunning returns every unfinished job, oldest first
func (r *GormDeletionJobRepository) FindRunning(ctx context.Context) ([]*deletion.Job, error) {
	var rows []models.DeletionJobModel
	if err := r.withBranches(ctx).
		Where("status = ?", string(deletion.JobStatusRunning)).
		Order("started_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	jobs := make([]*deletion.Job, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, rows[i].ToDomain())
	}
	return jobs, nil
}

func (r *GormDeletionJobRepository) withBranches(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).Preload("Branches", func(db *gorm.DB) *gorm.DB {
		return db.Order("target_table ASC")
	})
}

// SaveBranch writes a branch's progress
func (r *GormDeletionJobRepository) SaveBranch(ctx context.Context, branch *deletion.Branch) error {
	result := dbFrom(ctx, r.db).Model(&models.DeletionBranchModel{}).
		Where("id = ?", branch.ID).
		Select("status", "attempts", "last_error", "rows_deleted", "completed_at", "updated_at").
		Updates(models.DeletionBranchModelFromDomain(branch))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("deletion branch %s: %w", branch.ID, notFound(gorm.ErrRecordNotFound))
	}
	return nil
}

// SaveStatus writes the job's overall status
func (r *GormDeletionJobRepository) SaveStatus(ctx context.Context, job *deletion.Job) error {
	return dbFrom(ctx, r.db).Model(&models.DeletionJobModel{}).
		Where("id = ?", job.ID).
		Updates(map[string]any{
			"status":      string(job.Status),
			"finished_at": job.FinishedAt,
			"updated_at":  job.UpdatedAt,
		}).Error
}

var _ deletion.JobRepository = (*GormDeletionJobRepository)(nil)
