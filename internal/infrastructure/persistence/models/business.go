package models

import (
	"time"

	"github.com/opstracker/backend/internal/domain/business"
)

// BusinessInfoModel is the one-per-user business profile row
type BusinessInfoModel struct {
	BaseModel
	UserID              string `gorm:"type:varchar(255);not null;uniqueIndex"`
	BusinessName        string `gorm:"type:varchar(255);not null"`
	DBARegistrationDate string `gorm:"column:dba_registration_date;type:varchar(10)"`
	ServicesOffered     string `gorm:"type:text"`
	PricingStructure    string `gorm:"type:text"`
	BusinessEmail       string `gorm:"type:varchar(255)"`
	BusinessPhone       string `gorm:"type:varchar(50)"`
	TargetCustomer      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BusinessInfoModel) TableName() string {
	return "business_info"
}

// ToDomain converts the model to a domain BusinessInfo
func (m *BusinessInfoModel) ToDomain() *business.BusinessInfo {
	owned := OwnedModel{BaseModel: m.BaseModel, UserID: m.UserID}
	return &business.BusinessInfo{
		OwnedEntity:         owned.ToDomain(),
		BusinessName:        m.BusinessName,
		DBARegistrationDate: m.DBARegistrationDate,
		ServicesOffered:     m.ServicesOffered,
		PricingStructure:    m.PricingStructure,
		BusinessEmail:       m.BusinessEmail,
		BusinessPhone:       m.BusinessPhone,
		TargetCustomer:      m.TargetCustomer,
	}
}

// BusinessInfoModelFromDomain converts a domain BusinessInfo to its model
func BusinessInfoModelFromDomain(b *business.BusinessInfo) *BusinessInfoModel {
	return &BusinessInfoModel{
		BaseModel:           ownedFromDomain(b.OwnedEntity).BaseModel,
		UserID:              b.UserID,
		BusinessName:        b.BusinessName,
		DBARegistrationDate: b.DBARegistrationDate,
		ServicesOffered:     b.ServicesOffered,
		PricingStructure:    b.PricingStructure,
		BusinessEmail:       b.BusinessEmail,
		BusinessPhone:       b.BusinessPhone,
		TargetCustomer:      b.TargetCustomer,
	}
}

// GoalModel is a checklist milestone row
type GoalModel struct {
	OwnedModel
	Title      string `gorm:"type:varchar(255);not null"`
	IsAchieved bool   `gorm:"not null;default:false"`
	AchievedAt *time.Time
}

// TableName returns the table name for GORM
func (GoalModel) TableName() string {
	return "user_goals"
}

// ToDomain converts the model to a domain Goal
func (m *GoalModel) ToDomain() *business.Goal {
	return &business.Goal{
		OwnedEntity: m.OwnedModel.ToDomain(),
		Title:       m.Title,
		IsAchieved:  m.IsAchieved,
		AchievedAt:  m.AchievedAt,
	}
}

// GoalModelFromDomain converts a domain Goal to its model
func GoalModelFromDomain(g *business.Goal) *GoalModel {
	return &GoalModel{
		OwnedModel: ownedFromDomain(g.OwnedEntity),
		Title:      g.Title,
		IsAchieved: g.IsAchieved,
		AchievedAt: g.AchievedAt,
	}
}

// ToolModel is a setup checklist row
type ToolModel struct {
	OwnedModel
	Name    string `gorm:"type:varchar(255);not null"`
	IsSetUp bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ToolModel) TableName() string {
	return "user_tools"
}

// ToDomain converts the model to a domain Tool
func (m *ToolModel) ToDomain() *business.Tool {
	return &business.Tool{
		OwnedEntity: m.OwnedModel.ToDomain(),
		Name:        m.Name,
		IsSetUp:     m.IsSetUp,
	}
}

// ToolModelFromDomain converts a domain Tool to its model
func ToolModelFromDomain(t *business.Tool) *ToolModel {
	return &ToolModel{
		OwnedModel: ownedFromDomain(t.OwnedEntity),
		Name:       t.Name,
		IsSetUp:    t.IsSetUp,
	}
}
