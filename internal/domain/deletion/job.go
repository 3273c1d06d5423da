package deletion

import (
	"time"

	"github.com/google/uuid"
)

// Table names every user-owned table the cleanup must empty
type Table string

const (
	TableUsers             Table = "users"
	TableBusinessInfo      Table = "business_info"
	TableGoals             Table = "user_goals"
	TableTools             Table = "user_tools"
	TableDailyLogs         Table = "daily_logs"
	TableAppointments      Table = "appointments"
	TableOutreachEntries   Table = "outreach_entries"
	TableCompletedJobs     Table = "completed_jobs"
	TableLeads             Table = "leads"
	TableFollowUps         Table = "follow_ups"
	TableCustomers         Table = "customers"
	TableFinancialEntries  Table = "financial_entries"
	TableScripts           Table = "scripts"
	TableObjectionHandlers Table = "objection_handlers"
)

// OwnedTables returns all tables holding user-owned rows
func OwnedTables() []Table {
	return []Table{
		TableUsers,
		TableBusinessInfo,
		TableGoals,
		TableTools,
		TableDailyLogs,
		TableAppointments,
		TableOutreachEntries,
		TableCompletedJobs,
		TableLeads,
		TableFollowUps,
		TableCustomers,
		TableFinancialEntries,
		TableScripts,
		TableObjectionHandlers,
	}
}

// JobStatus is the overall state of a deletion job
type JobStatus string

const (
	JobStatusRunning        JobStatus = "running"
	JobStatusCompleted      JobStatus = "completed"
	JobStatusPartialFailure JobStatus = "partial_failure"
)

// IsTerminal reports whether the job has settled
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusPartialFailure
}

// BranchStatus is the state of one table's deletion
type BranchStatus string

const (
	BranchStatusPending   BranchStatus = "pending"
	BranchStatusSucceeded BranchStatus = "succeeded"
	BranchStatusFailed    BranchStatus = "failed"
)

// Branch tracks the deletion of one table
type Branch struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	Table       Table
	Status      BranchStatus
	Attempts    int
	LastError   string
	RowsDeleted int64
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

// RecordAttempt counts a started attempt
func (b *Branch) RecordAttempt() {
	b.Attempts++
	b.UpdatedAt = time.Now()
}

// Succeed marks the branch done
func (b *Branch) Succeed(rows int64) {
	now := time.Now()
	b.Status = BranchStatusSucceeded
	b.RowsDeleted = rows
	b.LastError = ""
	b.CompletedAt = &now
	b.UpdatedAt = now
}

// RecordFailure stores the error of the latest attempt without settling the branch
func (b *Branch) RecordFailure(err error) {
	b.LastError = err.Error()
	b.UpdatedAt = time.Now()
}

// Exhaust marks the branch as permanently failed
func (b *Branch) Exhaust() {
	now := time.Now()
	b.Status = BranchStatusFailed
	b.CompletedAt = &now
	b.UpdatedAt = now
}

// Job is a durable cleanup of every row owned by one external user
type Job struct {
	ID             uuid.UUID
	ExternalUserID string
	Status         JobStatus
	Branches       []*Branch
	StartedAt      time.Time
	FinishedAt     *time.Time
	UpdatedAt      time.Time
}

// NewJob creates a running job with one pending branch per owned table
func NewJob(externalUserID string) *Job {
	now := time.Now()
	job := &Job{
		ID:             uuid.New(),
		ExternalUserID: externalUserID,
		Status:         JobStatusRunning,
		StartedAt:      now,
		UpdatedAt:      now,
	}
	for _, t := range OwnedTables() {
		job.Branches = append(job.Branches, &Branch{
			ID:        uuid.New(),
			JobID:     job.ID,
			Table:     t,
			Status:    BranchStatusPending,
			UpdatedAt: now,
		})
	}
	return job
}

// PendingBranches returns branches that have not settled
func (j *Job) PendingBranches() []*Branch {
	var pending []*Branch
	for _, b := range j.Branches {
		if b.Status == BranchStatusPending {
			pending = append(pending, b)
		}
	}
	return pending
}

// FailedTables lists tables whose branch exhausted its retries
func (j *Job) FailedTables() []Table {
	var failed []Table
	for _, b := range j.Branches {
		if b.Status == BranchStatusFailed {
			failed = append(failed, b.Table)
		}
	}
	return failed
}

// Settle derives the terminal status once no branch is pending. It returns
// false and leaves the job running while any branch is still pending.
func (j *Job) Settle() bool {
	if len(j.PendingBranches()) > 0 {
		return false
	}
	now := time.Now()
	j.Status = JobStatusCompleted
	if len(j.FailedTables()) > 0 {
		j.Status = JobStatusPartialFailure
	}
	j.FinishedAt = &now
	j.UpdatedAt = now
	return true
}
