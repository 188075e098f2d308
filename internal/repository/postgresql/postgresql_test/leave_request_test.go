package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveRequestRepository_DecideOnce(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "EMP001", "asha@example.com")
	repo := postgresql.NewLeaveRequestRepository(db)
	ctx := context.Background()

	req, err := repo.Create(ctx, leave.LeaveRequest{
		EmployeeID: "EMP001",
		Type:       leave.LeaveKindPaid,
		FromDate:   clock.Date(2024, time.March, 4),
		ToDate:     clock.Date(2024, time.March, 6),
		Reason:     "family",
		Status:     leave.LeaveRequestStatusPending,
	})
	require.NoError(t, err)

	decided, err := repo.Decide(ctx, req.ID, leave.LeaveRequestStatusApproved, nil, "admin-1", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, decided.Status)
	assert.Equal(t, clock.Date(2024, time.March, 4), decided.FromDate)

	_, err = repo.Decide(ctx, req.ID, leave.LeaveRequestStatusRejected, nil, "admin-1", time.Now().UTC())
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = repo.Decide(ctx, "00000000-0000-0000-0000-000000000000", leave.LeaveRequestStatusRejected, nil, "admin-1", time.Now().UTC())
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	covered, err := repo.HasApprovedCovering(ctx, "EMP001", clock.Date(2024, time.March, 6))
	require.NoError(t, err)
	assert.True(t, covered)

	covered, err = repo.HasApprovedCovering(ctx, "EMP001", clock.Date(2024, time.March, 7))
	require.NoError(t, err)
	assert.False(t, covered)

	approved := leave.LeaveRequestStatusApproved
	listed, err := repo.List(ctx, leave.LeaveRequestFilter{Status: &approved})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].EmployeeName)
}

func TestTransactor_RollsBackEveryWrite(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "EMP001", "asha@example.com")
	records := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := postgresql.NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := records.UpsertStatus(ctx, "EMP001", clock.Date(2024, time.March, 4), attendance.StatusLeave); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = records.GetByEmployeeAndDate(ctx, "EMP001", clock.Date(2024, time.March, 4))
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
