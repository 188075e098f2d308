package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/apperror"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/lock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

const dayCloseLockTTL = 30 * time.Minute

var ErrDayCloseInProgress = apperror.New(apperror.ErrConflict, "day close already running for this date")

// EmployeeLister yields the employee code of everyone the sweep covers.
type EmployeeLister interface {
	ListEmployeeIDs(ctx context.Context) ([]string, error)
}

// DayCloseResult summarises one sweep.
type DayCloseResult struct {
	Date            string `json:"date"`
	Scanned         int    `json:"scanned"`
	MarkedAbsent    int    `json:"markedAbsent"`
	SkippedRecorded int    `json:"skippedRecorded"`
	SkippedOnLeave  int    `json:"skippedOnLeave"`
	Failed          int    `json:"failed"`
}

// DayCloseJob marks every employee without an attendance record and without
// approved leave as ABSENT for a closing date.
type DayCloseJob struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	employees      EmployeeLister
	calendar       *clock.Calendar
	locker         lock.Locker
	metrics        *metrics.Metrics
	workers        int
}

func NewDayCloseJob(
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	employees EmployeeLister,
	calendar *clock.Calendar,
	locker lock.Locker,
	m *metrics.Metrics,
	workers int,
) *DayCloseJob {
	if workers < 1 {
		workers = 1
	}
	return &DayCloseJob{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		employees:      employees,
		calendar:       calendar,
		locker:         locker,
		metrics:        m,
		workers:        workers,
	}
}

func (j *DayCloseJob) RegisterJobs(scheduler *Scheduler, schedule Schedule) {
	scheduler.AddJob("day_close", schedule, j.runScheduled)
}

// runScheduled closes the local calendar date of the fire instant.
func (j *DayCloseJob) runScheduled(ctx context.Context, firedAt time.Time) error {
	date := j.calendar.DateOf(firedAt)
	_, err := j.Run(ctx, date)
	if errors.Is(err, ErrDayCloseInProgress) {
		slog.Info("Cron: day close skipped, lock held elsewhere", "date", clock.FormatDate(date))
		return nil
	}
	return err
}

// Run sweeps date once. Re-running a date only creates records that are
// still missing. Returns ErrDayCloseInProgress when another run holds the
// date's lock.
func (j *DayCloseJob) Run(ctx context.Context, date time.Time) (DayCloseResult, error) {
	day := clock.FormatDate(date)
	result := DayCloseResult{Date: day}

	release, err := j.locker.TryAcquire(ctx, "dayclose:"+day, dayCloseLockTTL)
	if err != nil {
		return result, fmt.Errorf("acquire day close lock: %w", err)
	}
	if release == nil {
		return result, ErrDayCloseInProgress
	}
	defer release()

	start := time.Now()
	slog.Info("Cron: starting day close", "date", day)

	employeeIDs, err := j.employees.ListEmployeeIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("list employees: %w", err)
	}

	var marked, recorded, onLeave, failed atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(j.workers)
	for _, employeeID := range employeeIDs {
		g.Go(func() error {
			outcome, err := j.closeEmployee(gCtx, employeeID, date)
			if err != nil {
				failed.Add(1)
				slog.Error("Cron: day close failed for employee",
					"employee_id", employeeID,
					"date", day,
					"error", err,
				)
				// isolated: the rest of the sweep continues
				return nil
			}
			switch outcome {
			case outcomeMarkedAbsent:
				marked.Add(1)
			case outcomeRecorded:
				recorded.Add(1)
			case outcomeOnLeave:
				onLeave.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	result.Scanned = len(employeeIDs)
	result.MarkedAbsent = int(marked.Load())
	result.SkippedRecorded = int(recorded.Load())
	result.SkippedOnLeave = int(onLeave.Load())
	result.Failed = int(failed.Load())

	elapsed := time.Since(start)
	if j.metrics != nil {
		j.metrics.DayCloseRuns.Inc()
		j.metrics.DayCloseMarkedAbsent.Add(float64(result.MarkedAbsent))
		j.metrics.DayCloseFailures.Add(float64(result.Failed))
		j.metrics.DayCloseDuration.Observe(elapsed.Seconds())
	}

	slog.Info("Cron: day close completed",
		"date", day,
		"scanned", result.Scanned,
		"marked_absent", result.MarkedAbsent,
		"skipped_recorded", result.SkippedRecorded,
		"skipped_on_leave", result.SkippedOnLeave,
		"failed", result.Failed,
		"duration", elapsed,
	)
	return result, nil
}

type closeOutcome int

const (
	outcomeMarkedAbsent closeOutcome = iota
	outcomeRecorded
	outcomeOnLeave
)

func (j *DayCloseJob) closeEmployee(ctx context.Context, employeeID string, date time.Time) (closeOutcome, error) {
	_, err := j.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err == nil {
		return outcomeRecorded, nil
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return 0, fmt.Errorf("get attendance: %w", err)
	}

	covered, err := j.leaveRepo.HasApprovedCovering(ctx, employeeID, date)
	if err != nil {
		return 0, fmt.Errorf("check approved leave: %w", err)
	}
	if covered {
		return outcomeOnLeave, nil
	}

	created, err := j.attendanceRepo.CreateIfAbsent(ctx, employeeID, date, attendance.StatusAbsent)
	if err != nil {
		return 0, fmt.Errorf("mark absent: %w", err)
	}
	if !created {
		// a check-in or leave approval won the race
		return outcomeRecorded, nil
	}
	return outcomeMarkedAbsent, nil
}
