package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/deletion"
)

// DeletionJobModel is the durable record of an account cleanup
type DeletionJobModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExternalUserID string    `gorm:"type:varchar(255);not null;index;uniqueIndex:idx_deletion_jobs_running_user,where:status = 'running'"`
	Status         string    `gorm:"type:varchar(20);not null;index"`
	StartedAt      time.Time `gorm:"not null"`
	FinishedAt     *time.Time
	UpdatedAt      time.Time             `gorm:"not null"`
	Branches       []DeletionBranchModel `gorm:"foreignKey:JobID"`
}

// TableName returns the table name for GORM
func (DeletionJobModel) TableName() string {
	return "deletion_jobs"
}

// ToDomain converts the model and its loaded branches to a domain Job
func (m *DeletionJobModel) ToDomain() *deletion.Job {
	job := &deletion.Job{
		ID:             m.ID,
		ExternalUserID: m.ExternalUserID,
		Status:         deletion.JobStatus(m.Status),
		StartedAt:      m.StartedAt,
		FinishedAt:     m.FinishedAt,
		UpdatedAt:      m.UpdatedAt,
		Branches:       make([]*deletion.Branch, 0, len(m.Branches)),
	}
	for i := range m.Branches {
		job.Branches = append(job.Branches, m.Branches[i].ToDomain())
	}
	return job
}

// DeletionJobModelFromDomain converts a domain Job and its branches to a model
func DeletionJobModelFromDomain(j *deletion.Job) *DeletionJobModel {
	m := &DeletionJobModel{
		ID:             j.ID,
		ExternalUserID: j.ExternalUserID,
		Status:         string(j.Status),
		StartedAt:      j.StartedAt,
		FinishedAt:     j.FinishedAt,
		UpdatedAt:      j.UpdatedAt,
	}
	for _, b := range j.Branches {
		m.Branches = append(m.Branches, *DeletionBranchModelFromDomain(b))
	}
	return m
}

// DeletionBranchModel tracks one table of a deletion job
type DeletionBranchModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_deletion_branches_job_table,priority:1"`
	TargetTable string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_deletion_branches_job_table,priority:2"`
	Status      string    `gorm:"type:varchar(20);not null"`
	Attempts    int       `gorm:"not null;default:0"`
	LastError   string    `gorm:"type:text"`
	RowsDeleted int64     `gorm:"not null;default:0"`
	CompletedAt *time.Time
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DeletionBranchModel) TableName() string {
	return "deletion_branches"
}

// ToDomain converts the model to a domain Branch
func (m *DeletionBranchModel) ToDomain() *deletion.Branch {
	return &deletion.Branch{
		ID:          m.ID,
		JobID:       m.JobID,
		Table:       deletion.Table(m.TargetTable),
		Status:      deletion.BranchStatus(m.Status),
		Attempts:    m.Attempts,
		LastError:   m.LastError,
		RowsDeleted: m.RowsDeleted,
		CompletedAt: m.CompletedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// DeletionBranchModelFromDomain converts a domain Branch to its model
func DeletionBranchModelFromDomain(b *deletion.Branch) *DeletionBranchModel {
	return &DeletionBranchModel{
		ID:          b.ID,
		JobID:       b.JobID,
		TargetTable: string(b.Table),
		Status:      string(b.Status),
		Attempts:    b.Attempts,
		LastError:   b.LastError,
		RowsDeleted: b.RowsDeleted,
		CompletedAt: b.CompletedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
