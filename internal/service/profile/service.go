package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/profile"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type ProfileServiceImpl struct {
	users      user.UserRepository
	attendance attendance.AttendanceRepository
	leaves     leave.LeaveRequestRepository
	payroll    payroll.PayrollConfigRepository
}

func NewProfileService(
	users user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	payrollRepo payroll.PayrollConfigRepository,
) profile.ProfileService {
	return &ProfileServiceImpl{
		users:      users,
		attendance: attendanceRepo,
		leaves:     leaveRepo,
		payroll:    payrollRepo,
	}
}

// GetSummary implements profile.ProfileService.
func (s *ProfileServiceImpl) GetSummary(ctx context.Context, userID string) (profile.SummaryResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return profile.SummaryResponse{}, err
		}
		return profile.SummaryResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	var (
		records  []attendance.Attendance
		requests []leave.LeaveRequest
		snapshot *profile.PayrollSnapshotResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.attendance.ListByEmployee(gctx, u.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		requests, err = s.leaves.ListByEmployee(gctx, u.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		cfg, err := s.payroll.GetByEmployeeID(gctx, u.EmployeeID)
		if errors.Is(err, payroll.ErrPayrollConfigNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get payroll config: %w", err)
		}
		snapshot = &profile.PayrollSnapshotResponse{
			MonthlyWage: cfg.MonthlyWage,
			NetSalary:   cfg.Computed.NetSalary,
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return profile.SummaryResponse{}, err
	}

	return profile.SummaryResponse{
		Profile:    user.NewUserResponse(u),
		Attendance: profile.TallyAttendance(records),
		Leaves:     profile.TallyLeaves(requests),
		Payroll:    snapshot,
	}, nil
}

// GetEmployeeRecord implements profile.ProfileService.
func (s *ProfileServiceImpl) GetEmployeeRecord(ctx context.Context, employeeID string) (profile.EmployeeRecordResponse, error) {
	u, err := s.users.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, user.ErrEmployeeNotFound) {
			return profile.EmployeeRecordResponse{}, err
		}
		return profile.EmployeeRecordResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var (
		records  []attendance.Attendance
		requests []leave.LeaveRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.attendance.ListByEmployee(gctx, employeeID)
		return err
	})
	g.Go(func() error {
		var err error
		requests, err = s.leaves.ListByEmployee(gctx, employeeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return profile.EmployeeRecordResponse{}, fmt.Errorf("failed to load employee record: %w", err)
	}

	return profile.EmployeeRecordResponse{
		Profile:    user.NewUserResponse(u),
		Attendance: attendance.NewAttendanceResponses(records),
		Leaves:     leave.NewLeaveRequestResponses(requests),
	}, nil
}
