package persistence

import (
	"context"
	"time"

	"github.com/opstracker/backend/internal/domain/account"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/opstracker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements account.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByExternalID finds a user by the identity provider's id
func (r *GormUserRepository) FindByExternalID(ctx context.Context, externalID string) (*account.User, error) {
	var model models.UserModel
	if err := dbFrom(ctx, r.db).Where("external_id = ?", externalID).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// LockByExternalID loads the user with a row lock held until the
// surrounding transaction ends
func (r *GormUserRepository) LockByExternalID(ctx context.Context, externalID string) (*account.User, error) {
	var model models.UserModel
	if err := dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("external_id = ?", externalID).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindBySubscriptionID finds the user holding a subscription
func (r *GormUserRepository) FindBySubscriptionID(ctx context.Context, subscriptionID string) (*account.User, error) {
	if subscriptionID == "" {
		return nil, shared.ErrNotFound
	}
	var model models.UserModel
	if err := dbFrom(ctx, r.db).Where("subscription_id = ?", subscriptionID).First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// CreateWithSeed inserts the user and its starter rows in one transaction.
// A concurrent insert of the same external id yields ErrAlreadyExists and
// writes nothing. Checklist rows get strictly increasing created_at values
// so they list in seed order.
func (r *GormUserRepository) CreateWithSeed(ctx context.Context, user *account.User, seed *account.Seed) error {
	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).Create(models.UserModelFromDomain(user))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrAlreadyExists
		}
		if seed == nil {
			return nil
		}

		if seed.BusinessInfo != nil {
			if err := tx.Create(models.BusinessInfoModelFromDomain(seed.BusinessInfo)).Error; err != nil {
				return err
			}
		}
		if len(seed.Goals) > 0 {
			base := seed.Goals[0].CreatedAt.Truncate(time.Microsecond)
			goals := make([]*models.GoalModel, 0, len(seed.Goals))
			for i, g := range seed.Goals {
				m := models.GoalModelFromDomain(g)
				m.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
				goals = append(goals, m)
			}
			if err := tx.Create(&goals).Error; err != nil {
				return err
			}
		}
		if len(seed.Tools) > 0 {
			base := seed.Tools[0].CreatedAt.Truncate(time.Microsecond)
			tools := make([]*models.ToolModel, 0, len(seed.Tools))
			for i, t := range seed.Tools {
				m := models.ToolModelFromDomain(t)
				m.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
				tools = append(tools, m)
			}
			if err := tx.Create(&tools).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Save updates an existing user
func (r *GormUserRepository) Save(ctx context.Context, user *account.User) error {
	result := dbFrom(ctx, r.db).Model(&models.UserModel{}).
		Where("id = ?", user.ID).
		Select("name", "email", "plan", "subscription_id", "subscription_ends_at", "updated_at").
		Updates(models.UserModelFromDomain(user))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ account.UserRepository = (*GormUserRepository)(nil)
