package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = clock.Date(2024, 3, 4)

func newStore() *Store {
	return NewStore(clock.NewMock(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)))
}

func TestAttendance_UniquePerEmployeeAndDate(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(newStore())

	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: "EMP001", Date: day, CheckIn: &checkIn, Status: attendance.StatusHalfDay})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: "EMP001", Date: day, CheckIn: &checkIn, Status: attendance.StatusHalfDay})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	created, err := repo.CreateIfAbsent(ctx, "EMP001", day, attendance.StatusAbsent)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := repo.GetByEmployeeAndDate(ctx, "EMP001", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, got.Status)
}

func TestAttendance_UpsertStatusKeepsTimestamps(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(newStore())

	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	rec, err := repo.Create(ctx, attendance.Attendance{EmployeeID: "EMP001", Date: day, CheckIn: &checkIn, Status: attendance.StatusHalfDay})
	require.NoError(t, err)

	updated, err := repo.UpsertStatus(ctx, "EMP001", day, attendance.StatusLeave)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, updated.ID)
	assert.Equal(t, attendance.StatusLeave, updated.Status)
	require.NotNil(t, updated.CheckIn)
	assert.True(t, updated.CheckIn.Equal(checkIn))

	fresh, err := repo.UpsertStatus(ctx, "EMP002", day, attendance.StatusLeave)
	require.NoError(t, err)
	assert.Nil(t, fresh.CheckIn)
}

func TestAttendance_CloseDayOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(newStore())

	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	rec, err := repo.Create(ctx, attendance.Attendance{EmployeeID: "EMP001", Date: day, CheckIn: &checkIn, Status: attendance.StatusHalfDay})
	require.NoError(t, err)

	out := checkIn.Add(9 * time.Hour)
	closed, err := repo.CloseDay(ctx, rec.ID, out, attendance.StatusPresent)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, closed.Status)

	_, err = repo.CloseDay(ctx, rec.ID, out.Add(time.Hour), attendance.StatusPresent)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendance_ConcurrentWritersLeaveOneRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(newStore())
	checkIn := time.Date(2024, 3, 4, 23, 59, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = repo.Create(ctx, attendance.Attendance{EmployeeID: "EMP001", Date: day, CheckIn: &checkIn, Status: attendance.StatusHalfDay})
		}()
		go func() {
			defer wg.Done()
			_, _ = repo.CreateIfAbsent(ctx, "EMP001", day, attendance.StatusAbsent)
		}()
	}
	wg.Wait()

	records, err := repo.ListByEmployee(ctx, "EMP001")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttendance_ListJoinsIdentityAndFilters(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	users := NewUserRepository(store)
	repo := NewAttendanceRepository(store)

	_, err := users.Create(ctx, user.User{EmployeeID: "EMP001", Name: "Asha", Email: "asha@dayflow.test", Role: user.RoleEmployee})
	require.NoError(t, err)

	for _, d := range []time.Time{clock.Date(2024, 3, 1), clock.Date(2024, 3, 2), clock.Date(2024, 3, 3)} {
		_, err := repo.UpsertStatus(ctx, "EMP001", d, attendance.StatusAbsent)
		require.NoError(t, err)
	}
	_, err = repo.UpsertStatus(ctx, "EMP002", clock.Date(2024, 3, 2), attendance.StatusAbsent)
	require.NoError(t, err)

	all, err := repo.List(ctx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, clock.Date(2024, 3, 3), all[0].Date)
	require.NotNil(t, all[0].EmployeeName)
	assert.Equal(t, "Asha", *all[0].EmployeeName)

	from, to := clock.Date(2024, 3, 2), clock.Date(2024, 3, 2)
	narrowed, err := repo.List(ctx, attendance.AttendanceFilter{EmployeeID: "EMP001", From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, narrowed, 1)
	assert.Equal(t, from, narrowed[0].Date)
}

func TestLeave_DecideOnlyFromPending(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveRequestRepository(newStore())

	req, err := repo.Create(ctx, leave.LeaveRequest{
		EmployeeID: "EMP001",
		Type:       leave.LeaveKindPaid,
		FromDate:   clock.Date(2024, 3, 4),
		ToDate:     clock.Date(2024, 3, 6),
		Status:     leave.LeaveRequestStatusPending,
	})
	require.NoError(t, err)

	decided, err := repo.Decide(ctx, req.ID, leave.LeaveRequestStatusApproved, nil, "admin-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, decided.Status)

	_, err = repo.Decide(ctx, req.ID, leave.LeaveRequestStatusRejected, nil, "admin-1", time.Now())
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = repo.Decide(ctx, "missing", leave.LeaveRequestStatusRejected, nil, "admin-1", time.Now())
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	covered, err := repo.HasApprovedCovering(ctx, "EMP001", clock.Date(2024, 3, 5))
	require.NoError(t, err)
	assert.True(t, covered)

	covered, err = repo.HasApprovedCovering(ctx, "EMP001", clock.Date(2024, 3, 7))
	require.NoError(t, err)
	assert.False(t, covered)
}

func TestUser_Uniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newStore())

	_, err := repo.Create(ctx, user.User{EmployeeID: "EMP001", Email: "asha@dayflow.test"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, user.User{EmployeeID: "EMP002", Email: "ASHA@dayflow.test"})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = repo.Create(ctx, user.User{EmployeeID: "EMP001", Email: "other@dayflow.test"})
	assert.ErrorIs(t, err, user.ErrEmployeeIDExists)
}

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	repo := NewAttendanceRepository(store)
	boom := errors.New("boom")

	err := store.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.UpsertStatus(ctx, "EMP001", day, attendance.StatusLeave); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByEmployeeAndDate(ctx, "EMP001", day)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	err = store.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := repo.UpsertStatus(ctx, "EMP001", day, attendance.StatusLeave)
		return err
	})
	require.NoError(t, err)

	got, err := repo.GetByEmployeeAndDate(ctx, "EMP001", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLeave, got.Status)
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	repo := NewRefreshTokenRepository(store)

	expires := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC).Unix()
	require.NoError(t, repo.CreateRefreshToken(ctx, "u-1", "tok", expires, auth.SessionTrackingRequest{UserAgent: "test"}))

	userID, revoked, err := repo.IsRefreshTokenRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.False(t, revoked)

	require.NoError(t, repo.RevokeRefreshToken(ctx, "tok"))
	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.True(t, revoked)
}
