package models

import "github.com/opstracker/backend/internal/domain/playbook"

// ScriptModel is a sales script row
type ScriptModel struct {
	OwnedModel
	Title   string `gorm:"type:varchar(255);not null"`
	Content string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ScriptModel) TableName() string {
	return "scripts"
}

// ToDomain converts the model to a domain Script
func (m *ScriptModel) ToDomain() *playbook.Script {
	return &playbook.Script{
		OwnedEntity: m.OwnedModel.ToDomain(),
		Title:       m.Title,
		Content:     m.Content,
	}
}

// ScriptModelFromDomain converts a domain Script to its model
func ScriptModelFromDomain(s *playbook.Script) *ScriptModel {
	return &ScriptModel{
		OwnedModel: ownedFromDomain(s.OwnedEntity),
		Title:      s.Title,
		Content:    s.Content,
	}
}

// ObjectionHandlerModel is an objection/response pair row
type ObjectionHandlerModel struct {
	OwnedModel
	Objection string `gorm:"type:text;not null"`
	Response  string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ObjectionHandlerModel) TableName() string {
	return "objection_handlers"
}

// ToDomain converts the model to a domain ObjectionHandler
func (m *ObjectionHandlerModel) ToDomain() *playbook.ObjectionHandler {
	return &playbook.ObjectionHandler{
		OwnedEntity: m.OwnedModel.ToDomain(),
		Objection:   m.Objection,
		Response:    m.Response,
	}
}

// ObjectionHandlerModelFromDomain converts a domain ObjectionHandler to its model
func ObjectionHandlerModelFromDomain(h *playbook.ObjectionHandler) *ObjectionHandlerModel {
	return &ObjectionHandlerModel{
		OwnedModel: ownedFromDomain(h.OwnedEntity),
		Objection:  h.Objection,
		Response:   h.Response,
	}
}
