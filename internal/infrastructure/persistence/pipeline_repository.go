package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/pipeline"
	"github.com/opstracker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLeadRepository implements pipeline.LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByID finds a lead by ID
func (r *GormLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*pipeline.Lead, error) {
	var model models.LeadModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's leads, newest first
func (r *GormLeadRepository) FindByUser(ctx context.Context, userID string) ([]*pipeline.Lead, error) {
	var rows []models.LeadModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*pipeline.Lead, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// Save persists a lead
func (r *GormLeadRepository) Save(ctx context.Context, lead *pipeline.Lead) error {
	return dbFrom(ctx, r.db).Save(models.LeadModelFromDomain(lead)).Error
}

// Delete deletes a lead by ID
func (r *GormLeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.LeadModel{}, id)
}

// GormFollowUpRepository implements pipeline.FollowUpRepository using GORM
type GormFollowUpRepository struct {
	db *gorm.DB
}

// NewGormFollowUpRepository creates a new GormFollowUpRepository
func NewGormFollowUpRepository(db *gorm.DB) *GormFollowUpRepository {
	return &GormFollowUpRepository{db: db}
}

// FindByID finds a follow-up by ID
func (r *GormFollowUpRepository) FindByID(ctx context.Context, id uuid.UUID) (*pipeline.FollowUp, error) {
	var model models.FollowUpModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's follow-ups, soonest first
func (r *GormFollowUpRepository) FindByUser(ctx context.Context, userID string) ([]*pipeline.FollowUp, error) {
	var rows []models.FollowUpModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).
		Order("follow_up_date ASC").Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*pipeline.FollowUp, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// Save persists a follow-up
func (r *GormFollowUpRepository) Save(ctx context.Context, followUp *pipeline.FollowUp) error {
	return dbFrom(ctx, r.db).Save(models.FollowUpModelFromDomain(followUp)).Error
}

// Delete deletes a follow-up by ID
func (r *GormFollowUpRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.FollowUpModel{}, id)
}

// GormCustomerRepository implements pipeline.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*pipeline.Customer, error) {
	var model models.CustomerModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's customers, most recent job first
func (r *GormCustomerRepository) FindByUser(ctx context.Context, userID string) ([]*pipeline.Customer, error) {
	var rows []models.CustomerModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).
		Order("last_job_date DESC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*pipeline.Customer, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// Save persists a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *pipeline.Customer) error {
	return dbFrom(ctx, r.db).Save(models.CustomerModelFromDomain(customer)).Error
}

// Delete deletes a customer by ID
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.CustomerModel{}, id)
}

var (
	_ pipeline.LeadRepository     = (*GormLeadRepository)(nil)
	_ pipeline.FollowUpRepository = (*GormFollowUpRepository)(nil)
	_ pipeline.CustomerRepository = (*GormCustomerRepository)(nil)
)
