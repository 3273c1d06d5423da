package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/dailylog"
	"github.com/opstracker/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyLogRepository implements dailylog.Repository using GORM
type GormDailyLogRepository struct {
	db *gorm.DB
}

// NewGormDailyLogRepository creates a new GormDailyLogRepository
func NewGormDailyLogRepository(db *gorm.DB) *GormDailyLogRepository {
	return &GormDailyLogRepository{db: db}
}

// FindByID finds a log by ID
func (r *GormDailyLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*dailylog.DailyLog, error) {
	var model models.DailyLogModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByDate finds the user's log for a calendar date
func (r *GormDailyLogRepository) FindByDate(ctx context.Context, userID, date string) (*dailylog.DailyLog, error) {
	var model models.DailyLogModel
	if err := dbFrom(ctx, r.db).
		Where("user_id = ? AND date = ?", userID, date).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindInRange returns the user's logs with start <= date <= end, oldest first
func (r *GormDailyLogRepository) FindInRange(ctx context.Context, userID, start, end string) ([]*dailylog.DailyLog, error) {
	var rows []models.DailyLogModel
	if err := dbFrom(ctx, r.db).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	logs := make([]*dailylog.DailyLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, rows[i].ToDomain())
	}
	return logs, nil
}

// Create inserts the log unless one already exists for (user, date), in
// which case the stored log is returned. Concurrent creates converge on a
// single row.
func (r *GormDailyLogRepository) Create(ctx context.Context, log *dailylog.DailyLog) (*dailylog.DailyLog, error) {
	result := dbFrom(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(models.DailyLogModelFromDomain(log))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 1 {
		return log, nil
	}
	return r.FindByDate(ctx, log.UserID, log.Date)
}

// Save writes the user-editable columns. revenue_today is only ever changed
// by AddJob so a stale copy never overwrites a concurrent increment.
func (r *GormDailyLogRepository) Save(ctx context.Context, log *dailylog.DailyLog) error {
	result := dbFrom(ctx, r.db).Model(&models.DailyLogModel{}).
		Where("id = ?", log.ID).
		Select("main_goal", "expenses_today", "failure_what", "failure_why", "failure_adjust",
			"tomorrow_priorities", "updated_at").
		Updates(models.DailyLogModelFromDomain(log))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	return nil
}

// FindAppointmentsByLogIDs loads appointments for a set of logs in one query
func (r *GormDailyLogRepository) FindAppointmentsByLogIDs(ctx context.Context, userID string, logIDs []uuid.UUID) ([]*dailylog.Appointment, error) {
	if len(logIDs) == 0 {
		return nil, nil
	}
	var rows []models.AppointmentModel
	if err := dbFrom(ctx, r.db).
		Where("user_id = ? AND daily_log_id IN ?", userID, logIDs).
		Order("time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*dailylog.Appointment, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// FindOutreachByLogIDs loads outreach entries for a set of logs in one query
func (r *GormDailyLogRepository) FindOutreachByLogIDs(ctx context.Context, userID string, logIDs []uuid.UUID) ([]*dailylog.OutreachEntry, error) {
	if len(logIDs) == 0 {
		return nil, nil
	}
	var rows []models.OutreachEntryModel
	if err := dbFrom(ctx, r.db).
		Where("user_id = ? AND daily_log_id IN ?", userID, logIDs).
		Order("time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*dailylog.OutreachEntry, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// FindJobsByLogIDs loads completed jobs for a set of logs in one query
func (r *GormDailyLogRepository) FindJobsByLogIDs(ctx context.Context, userID string, logIDs []uuid.UUID) ([]*dailylog.CompletedJob, error) {
	if len(logIDs) == 0 {
		return nil, nil
	}
	var rows []models.CompletedJobModel
	if err := dbFrom(ctx, r.db).
		Where("user_id = ? AND daily_log_id IN ?", userID, logIDs).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*dailylog.CompletedJob, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// SaveAppointment persists an appointment
func (r *GormDailyLogRepository) SaveAppointment(ctx context.Context, a *dailylog.Appointment) error {
	return dbFrom(ctx, r.db).Save(models.AppointmentModelFromDomain(a)).Error
}

// SaveOutreach persists an outreach entry
func (r *GormDailyLogRepository) SaveOutreach(ctx context.Context, o *dailylog.OutreachEntry) error {
	return dbFrom(ctx, r.db).Save(models.OutreachEntryModelFromDomain(o)).Error
}

// AddJob inserts the job and, when revenueDelta is positive, increments the
// parent log's revenue_today in the same transaction. The increment is done
// in SQL so concurrent paid jobs do not lose updates.
func (r *GormDailyLogRepository) AddJob(ctx context.Context, job *dailylog.CompletedJob, revenueDelta decimal.Decimal) error {
	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.CompletedJobModelFromDomain(job)).Error; err != nil {
			return err
		}
		if !revenueDelta.IsPositive() {
			return nil
		}
		result := tx.Model(&models.DailyLogModel{}).
			Where("id = ?", job.DailyLogID).
			Updates(map[string]any{
				"revenue_today": gorm.Expr("revenue_today + ?", revenueDelta),
				"updated_at":    time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFound(gorm.ErrRecordNotFound)
		}
		return nil
	})
}

// SaveJob persists a job's fields without touching the parent log
func (r *GormDailyLogRepository) SaveJob(ctx context.Context, job *dailylog.CompletedJob) error {
	return dbFrom(ctx, r.db).Save(models.CompletedJobModelFromDomain(job)).Error
}

// FindAppointmentByID finds an appointment by ID
func (r *GormDailyLogRepository) FindAppointmentByID(ctx context.Context, id uuid.UUID) (*dailylog.Appointment, error) {
	var model models.AppointmentModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindOutreachByID finds an outreach entry by ID
func (r *GormDailyLogRepository) FindOutreachByID(ctx context.Context, id uuid.UUID) (*dailylog.OutreachEntry, error) {
	var model models.OutreachEntryModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindJobByID finds a completed job by ID
func (r *GormDailyLogRepository) FindJobByID(ctx context.Context, id uuid.UUID) (*dailylog.CompletedJob, error) {
	var model models.CompletedJobModel
	if err := dbFrom(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// DeleteAppointment deletes an appointment by ID
func (r *GormDailyLogRepository) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.AppointmentModel{}, id)
}

// DeleteOutreach deletes an outreach entry by ID
func (r *GormDailyLogRepository) DeleteOutreach(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.OutreachEntryModel{}, id)
}

// DeleteJob deletes a completed job by ID. Revenue already credited stays.
func (r *GormDailyLogRepository) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.CompletedJobModel{}, id)
}

var _ dailylog.Repository = (*GormDailyLogRepository)(nil)
