// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// of ORM concerns; each model carries its own ToDomain / FromDomain mappers.
//
// Dates are stored as YYYY-MM-DD strings so range filters compare lexically on
// every dialect; money is decimal(12,2).
package models
