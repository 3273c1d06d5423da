package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/business"
	"github.com/opstracker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBusinessInfoRepository implements business.BusinessInfoRepository using GORM
type GormBusinessInfoRepository struct {
	db *gorm.DB
}

// NewGormBusinessInfoRepository creates a new GormBusinessInfoRepository
func NewGormBusinessInfoRepository(db *gorm.DB) *GormBusinessInfoRepository {
	return &GormBusinessInfoRepository{db: db}
}

// FindByUser returns the user's profile
func (r *GormBusinessInfoRepository) FindByUser(ctx context.Context, userID string) (*business.BusinessInfo, error) {
	var model models.BusinessInfoModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// Save upserts the profile keyed by user
func (r *GormBusinessInfoRepository) Save(ctx context.Context, info *business.BusinessInfo) error {
	return dbFrom(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"business_name", "dba_registration_date", "services_offered", "pricing_structure",
			"business_email", "business_phone", "target_customer", "updated_at",
		}),
	}).Create(models.BusinessInfoModelFromDomain(info)).Error
}

// GormGoalRepository implements business.GoalRepository using GORM
type GormGoalRepository struct {
	db *gorm.DB
}

// NewGormGoalRepository creates a new GormGoalRepository
func NewGormGoalRepository(db *gorm.DB) *GormGoalRepository {
	return &GormGoalRepository{db: db}
}

// FindByID finds a goal by ID
func (r *GormGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*business.Goal, error) {
	var model models.GoalModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's goals in checklist order
func (r *GormGoalRepository) FindByUser(ctx context.Context, userID string) ([]*business.Goal, error) {
	var rows []models.GoalModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at ASC").Order("title ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	goals := make([]*business.Goal, 0, len(rows))
	for i := range rows {
		goals = append(goals, rows[i].ToDomain())
	}
	return goals, nil
}

// Save persists a goal
func (r *GormGoalRepository) Save(ctx context.Context, goal *business.Goal) error {
	return dbFrom(ctx, r.db).Save(models.GoalModelFromDomain(goal)).Error
}

// GormToolRepository implements business.ToolRepository using GORM
type GormToolRepository struct {
	db *gorm.DB
}

// NewGormToolRepository creates a new GormToolRepository
func NewGormToolRepository(db *gorm.DB) *GormToolRepository {
	return &GormToolRepository{db: db}
}

// FindByID finds a tool by ID
func (r *GormToolRepository) FindByID(ctx context.Context, id uuid.UUID) (*business.Tool, error) {
	var model models.ToolModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's tools in checklist order
func (r *GormToolRepository) FindByUser(ctx context.Context, userID string) ([]*business.Tool, error) {
	var rows []models.ToolModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at ASC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	tools := make([]*business.Tool, 0, len(rows))
	for i := range rows {
		tools = append(tools, rows[i].ToDomain())
	}
	return tools, nil
}

// Save persists a tool
func (r *GormToolRepository) Save(ctx context.Context, tool *business.Tool) error {
	return dbFrom(ctx, r.db).Save(models.ToolModelFromDomain(tool)).Error
}

var (
	_ business.BusinessInfoRepository = (*GormBusinessInfoRepository)(nil)
	_ business.GoalRepository         = (*GormGoalRepository)(nil)
	_ business.ToolRepository         = (*GormToolRepository)(nil)
)
