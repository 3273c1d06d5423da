package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/finance"
	"github.com/opstracker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFinancialEntryRepository implements finance.EntryRepository using GORM
type GormFinancialEntryRepository struct {
	db *gorm.DB
}

// NewGormFinancialEntryRepository creates a new GormFinancialEntryRepository
func NewGormFinancialEntryRepository(db *gorm.DB) *GormFinancialEntryRepository {
	return &GormFinancialEntryRepository{db: db}
}

// FindByID finds an entry by ID
func (r *GormFinancialEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Entry, error) {
	var model models.FinancialEntryModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindInRange returns entries with start <= date <= end, oldest first
func (r *GormFinancialEntryRepository) FindInRange(ctx context.Context, userID, start, end string) ([]*finance.Entry, error) {
	return r.find(dbFrom(ctx, r.db).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC"))
}

// FindForMonth returns entries with monthStart <= date < nextMonthStart,
// newest first
func (r *GormFinancialEntryRepository) FindForMonth(ctx context.Context, userID, monthStart, nextMonthStart string) ([]*finance.Entry, error) {
	return r.find(dbFrom(ctx, r.db).
		Where("user_id = ? AND date >= ? AND date < ?", userID, monthStart, nextMonthStart).
		Order("date DESC").Order("created_at DESC"))
}

// FindAll returns every entry of the user, oldest first
func (r *GormFinancialEntryRepository) FindAll(ctx context.Context, userID string) ([]*finance.Entry, error) {
	return r.find(dbFrom(ctx, r.db).Where("user_id = ?", userID).Order("date ASC"))
}

func (r *GormFinancialEntryRepository) find(q *gorm.DB) ([]*finance.Entry, error) {
	var rows []models.FinancialEntryModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*finance.Entry, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// CountByUser counts the user's entries for plan gating
func (r *GormFinancialEntryRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&models.FinancialEntryModel{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Save persists an entry
func (r *GormFinancialEntryRepository) Save(ctx context.Context, entry *finance.Entry) error {
	return dbFrom(ctx, r.db).Save(models.FinancialEntryModelFromDomain(entry)).Error
}

// Delete deletes an entry by ID
func (r *GormFinancialEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.FinancialEntryModel{}, id)
}

var _ finance.EntryRepository = (*GormFinancialEntryRepository)(nil)
