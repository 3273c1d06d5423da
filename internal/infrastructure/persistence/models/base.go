package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// OwnedModel adds the owning user's external id
type OwnedModel struct {
	BaseModel
	UserID string `gorm:"type:varchar(255);not null;index"`
}

// ToDomain converts OwnedModel to the domain OwnedEntity
func (m *OwnedModel) ToDomain() shared.OwnedEntity {
	return shared.OwnedEntity{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		UserID: m.UserID,
	}
}

// ownedFromDomain populates persistence fields from the domain OwnedEntity
func ownedFromDomain(e shared.OwnedEntity) OwnedModel {
	return OwnedModel{
		BaseModel: BaseModel{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		},
		UserID: e.UserID,
	}
}

// All returns every model for AutoMigrate in tests
func All() []any {
	return []any{
		&UserModel{},
		&BusinessInfoModel{},
		&GoalModel{},
		&ToolModel{},
		&DailyLogModel{},
		&AppointmentModel{},
		&OutreachEntryModel{},
		&CompletedJobModel{},
		&LeadModel{},
		&FollowUpModel{},
		&CustomerModel{},
		&FinancialEntryModel{},
		&ScriptModel{},
		&ObjectionHandlerModel{},
		&DeletionJobModel{},
		&DeletionBranchModel{},
	}
}
