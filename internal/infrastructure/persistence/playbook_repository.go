package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/playbook"
	"github.com/opstracker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormScriptRepository implements playbook.ScriptRepository using GORM
type GormScriptRepository struct {
	db *gorm.DB
}

// NewGormScriptRepository creates a new GormScriptRepository
func NewGormScriptRepository(db *gorm.DB) *GormScriptRepository {
	return &GormScriptRepository{db: db}
}

// FindByID finds a script by ID
func (r *GormScriptRepository) FindByID(ctx context.Context, id uuid.UUID) (*playbook.Script, error) {
	var model models.ScriptModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's scripts in creation order
func (r *GormScriptRepository) FindByUser(ctx context.Context, userID string) ([]*playbook.Script, error) {
	var rows []models.ScriptModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*playbook.Script, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// CountByUser counts the user's scripts for plan gating
func (r *GormScriptRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&models.ScriptModel{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Save persists a script
func (r *GormScriptRepository) Save(ctx context.Context, script *playbook.Script) error {
	return dbFrom(ctx, r.db).Save(models.ScriptModelFromDomain(script)).Error
}

// Delete deletes a script by ID
func (r *GormScriptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ScriptModel{}, id)
}

// GormObjectionHandlerRepository implements playbook.ObjectionHandlerRepository using GORM
type GormObjectionHandlerRepository struct {
	db *gorm.DB
}

// NewGormObjectionHandlerRepository creates a new GormObjectionHandlerRepository
func NewGormObjectionHandlerRepository(db *gorm.DB) *GormObjectionHandlerRepository {
	return &GormObjectionHandlerRepository{db: db}
}

// FindByID finds a handler by ID
func (r *GormObjectionHandlerRepository) FindByID(ctx context.Context, id uuid.UUID) (*playbook.ObjectionHandler, error) {
	var model models.ObjectionHandlerModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's handlers in creation order
func (r *GormObjectionHandlerRepository) FindByUser(ctx context.Context, userID string) ([]*playbook.ObjectionHandler, error) {
	var rows []models.ObjectionHandlerModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*playbook.ObjectionHandler, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// CountByUser counts the user's handlers for plan gating
func (r *GormObjectionHandlerRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&models.ObjectionHandlerModel{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Save persists a handler
func (r *GormObjectionHandlerRepository) Save(ctx context.Context, handler *playbook.ObjectionHandler) error {
	return dbFrom(ctx, r.db).Save(models.ObjectionHandlerModelFromDomain(handler)).Error
}

// Delete deletes a handler by ID
func (r *GormObjectionHandlerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ObjectionHandlerModel{}, id)
}

var (
	_ playbook.ScriptRepository           = (*GormScriptRepository)(nil)
	_ playbook.ObjectionHandlerRepository = (*GormObjectionHandlerRepository)(nil)
)
