package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
)

// JobFunc receives the instant the job was scheduled to fire at.
type JobFunc func(ctx context.Context, firedAt time.Time) error

// Job represents a scheduled job
type Job struct {
	Name     string
	Schedule Schedule
	Fn       JobFunc
}

// Scheduler owns the goroutines of its jobs from Start until Stop.
type Scheduler struct {
	clock  clock.Clock
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewScheduler creates a new cron scheduler
func NewScheduler(c clock.Clock) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		clock:  c,
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob adds a job to the scheduler
func (s *Scheduler) AddJob(name string, schedule Schedule, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Schedule: schedule,
		Fn:       fn,
	})
	next, _ := schedule.Next(s.clock.Now())
	slog.Info("Cron job registered", "name", name, "next_run", next)
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels pending runs and waits for running ones to return.
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// runJob sleeps until each fire instant of the job's schedule.
func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	for {
		next, ok := job.Schedule.Next(s.clock.Now())
		if !ok {
			slog.Info("Cron job schedule exhausted", "name", job.Name)
			return
		}

		wait := next.Sub(s.clock.Now())
		if wait < 0 {
			wait = 0
		}

		timer := time.NewTimer(wait)
		select {
		case <-s.ctx.Done():
			timer.Stop()
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-timer.C:
			s.executeJob(s.ctx, job, next)
		}
	}
}

// executeJob executes a job and logs results
func (s *Scheduler) executeJob(ctx context.Context, job Job, firedAt time.Time) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name, "fired_at", firedAt)

	if err := job.Fn(ctx, firedAt); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

// RunOnce runs every job immediately as if it fired now.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	now := s.clock.Now()
	for _, job := range jobs {
		s.executeJob(ctx, job, now)
	}
}
