// Package deletion runs the account cleanup saga: one durable job per
// deleted user, one retried branch per owned table.
package deletion

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/deletion"
	"github.com/opstracker/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Recorder receives saga outcomes for metrics
type Recorder interface {
	DeletionBranchSettled(table, status string)
	DeletionJobSettled(status string)
}

// Config contains the dependencies and retry policy of an Orchestrator
type Config struct {
	Jobs     deletion.JobRepository
	Purger   deletion.Purger
	Recorder Recorder
	Logger   *zap.Logger

	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	AttemptTimeout time.Duration
}

// Orchestrator starts, runs and resumes deletion jobs
type Orchestrator struct {
	jobs     deletion.JobRepository
	purger   deletion.Purger
	recorder Recorder
	logger   *zap.Logger

	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	attemptTimeout time.Duration

	baseCtx  context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(cfg Config) *Orchestrator {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 500 * time.Millisecond
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = cfg.InitialBackoff
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		jobs:           cfg.Jobs,
		purger:         cfg.Purger,
		recorder:       cfg.Recorder,
		logger:         log.Named("deletion"),
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		attemptTimeout: cfg.AttemptTimeout,
		baseCtx:        ctx,
		cancel:         cancel,
		inFlight:       make(map[uuid.UUID]struct{}),
	}
}

// Start begins the cleanup of an external user and returns immediately. A
// user that already has a running job gets that job back.
func (o *Orchestrator) Start(ctx context.Context, externalUserID string) (*deletion.Job, error) {
	if strings.TrimSpace(externalUserID) == "" {
		return nil, shared.NewDomainError("INVALID_USER_ID", "External user id is required")
	}

	existing, err := o.jobs.FindRunningByUser(ctx, externalUserID)
	if err == nil {
		o.logger.Info("deletion already running",
			zap.String("job_id", existing.ID.String()),
			zap.String("external_user_id", externalUserID),
		)
		o.launch(existing)
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	job := deletion.NewJob(externalUserID)
	if err := o.jobs.Create(ctx, job); err != nil {
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}
		// A concurrent Start created the running job first and runs it
		existing, ferr := o.jobs.FindRunningByUser(ctx, externalUserID)
		if ferr != nil {
			return nil, ferr
		}
		o.logger.Info("deletion already running",
			zap.String("job_id", existing.ID.String()),
			zap.String("external_user_id", externalUserID),
		)
		o.launch(existing)
		return existing, nil
	}
	o.logger.Info("deletion started",
		zap.String("job_id", job.ID.String()),
		zap.String("external_user_id", externalUserID),
		zap.Int("branches", len(job.Branches)),
	)
	o.launch(job)
	return job, nil
}

// Resume relaunches every job left running by a previous process
func (o *Orchestrator) Resume(ctx context.Context) (int, error) {
	jobs, err := o.jobs.FindRunning(ctx)
	if err != nil {
		return 0, err
	}
	for _, job := range jobs {
		o.logger.Info("resuming deletion",
			zap.String("job_id", job.ID.String()),
			zap.Int("pending", len(job.PendingBranches())),
		)
		o.launch(job)
	}
	return len(jobs), nil
}

// Run executes the pending branches of a job in parallel and settles it.
// Branch failures never abort siblings. When ctx ends first the job stays
// running so a later Resume can finish it.
func (o *Orchestrator) Run(ctx context.Context, job *deletion.Job) error {
	var g errgroup.Group
	for _, b := range job.PendingBranches() {
		g.Go(func() error {
			o.runBranch(ctx, job, b)
			return nil
		})
	}
	_ = g.Wait()

	if !job.Settle() {
		o.logger.Warn("deletion interrupted",
			zap.String("job_id", job.ID.String()),
			zap.Int("pending", len(job.PendingBranches())),
		)
		return ctx.Err()
	}

	if err := o.jobs.SaveStatus(context.WithoutCancel(ctx), job); err != nil {
		o.logger.Error("failed to save deletion status", zap.String("job_id", job.ID.String()), zap.Error(err))
		return err
	}
	if o.recorder != nil {
		o.recorder.DeletionJobSettled(string(job.Status))
	}

	if job.Status == deletion.JobStatusPartialFailure {
		tables := make([]string, 0, len(job.FailedTables()))
		for _, t := range job.FailedTables() {
			tables = append(tables, string(t))
		}
		o.logger.Error("deletion finished with failed tables",
			zap.String("job_id", job.ID.String()),
			zap.String("external_user_id", job.ExternalUserID),
			zap.Strings("failed_tables", tables),
		)
		return nil
	}
	o.logger.Info("deletion completed",
		zap.String("job_id", job.ID.String()),
		zap.String("external_user_id", job.ExternalUserID),
	)
	return nil
}

// Shutdown stops retries and waits for running jobs to return, or for ctx
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	o.cancel()
	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until every launched job has returned
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) launch(job *deletion.Job) {
	o.mu.Lock()
	if _, ok := o.inFlight[job.ID]; ok {
		o.mu.Unlock()
		return
	}
	o.inFlight[job.ID] = struct{}{}
	o.wg.Add(1)
	o.mu.Unlock()

	go func() {
		defer func() {
			o.mu.Lock()
			delete(o.inFlight, job.ID)
			o.mu.Unlock()
			o.wg.Done()
		}()
		_ = o.Run(o.baseCtx, job)
	}()
}

func (o *Orchestrator) runBranch(ctx context.Context, job *deletion.Job, b *deletion.Branch) {
	log := o.logger.With(
		zap.String("job_id", job.ID.String()),
		zap.String("table", string(b.Table)),
	)

	remaining := o.maxAttempts - b.Attempts
	if remaining <= 0 {
		o.exhaust(ctx, log, b)
		return
	}

	attempt := func() error {
		b.RecordAttempt()
		attemptCtx, cancel := context.WithTimeout(ctx, o.attemptTimeout)
		rows, err := o.purger.Purge(attemptCtx, b.Table, job.ExternalUserID)
		cancel()
		if err != nil {
			b.RecordFailure(err)
			log.Warn("deletion attempt failed", zap.Int("attempt", b.Attempts), zap.Error(err))
		} else {
			b.Succeed(rows)
		}
		o.saveBranch(ctx, log, b)
		return err
	}

	if err := backoff.Retry(attempt, o.policy(ctx, remaining)); err == nil {
		if o.recorder != nil {
			o.recorder.DeletionBranchSettled(string(b.Table), string(b.Status))
		}
		return
	}
	if ctx.Err() != nil {
		return
	}
	o.exhaust(ctx, log, b)
}

func (o *Orchestrator) exhaust(ctx context.Context, log *zap.Logger, b *deletion.Branch) {
	b.Exhaust()
	o.saveBranch(ctx, log, b)
	if o.recorder != nil {
		o.recorder.DeletionBranchSettled(string(b.Table), string(b.Status))
	}
	log.Error("deletion branch exhausted retries",
		zap.Int("attempts", b.Attempts),
		zap.String("last_error", b.LastError),
	)
}

func (o *Orchestrator) saveBranch(ctx context.Context, log *zap.Logger, b *deletion.Branch) {
	if err := o.jobs.SaveBranch(context.WithoutCancel(ctx), b); err != nil {
		log.Error("failed to save deletion branch", zap.Error(err))
	}
}

// policy allows `attempts` tries in total: the first plus attempts-1 retries
func (o *Orchestrator) policy(ctx context.Context, attempts int) backoff.BackOffContext {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = o.initialBackoff
	exp.Multiplier = 2
	exp.MaxInterval = o.maxBackoff
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)
}
