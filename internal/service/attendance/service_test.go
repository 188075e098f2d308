package attendance

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/apperror"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/metrics"
	"github.com/dayflow-hr/dayflow-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	svc   attendance.AttendanceService
	repo  attendance.AttendanceRepository
	users user.UserRepository
	clock *clock.Mock
	loc   *time.Location
}

func newFixture(t *testing.T, start time.Time) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	mock := clock.NewMock(start)
	store := memory.NewStore(mock)
	repo := memory.NewAttendanceRepository(store)
	return &fixture{
		svc:   NewAttendanceService(repo, clock.NewCalendar(mock, loc), metrics.New()),
		repo:  repo,
		users: memory.NewUserRepository(store),
		clock: mock,
		loc:   loc,
	}
}

func at(loc *time.Location, day, hour, minute int) time.Time {
	return time.Date(2024, 3, day, hour, minute, 0, 0, loc)
}

func TestCheckInCheckOut_FullDay(t *testing.T) {
	ctx := context.Background()
	kolkata, _ := time.LoadLocation("Asia/Kolkata")
	f := newFixture(t, at(kolkata, 4, 9, 0))

	in, err := f.svc.CheckIn(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", in.Date)
	assert.Equal(t, string(attendance.StatusHalfDay), in.Status)
	assert.Nil(t, in.CheckOut)

	f.clock.Set(at(kolkata, 4, 18, 0))
	out, err := f.svc.CheckOut(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), out.Status)
	require.NotNil(t, out.HoursWorked)
	assert.InDelta(t, 9.0, *out.HoursWorked, 0.0001)
}

func TestCheckOut_HalfDay(t *testing.T) {
	ctx := context.Background()
	kolkata, _ := time.LoadLocation("Asia/Kolkata")
	f := newFixture(t, at(kolkata, 4, 9, 0))

	_, err := f.svc.CheckIn(ctx, "EMP001")
	require.NoError(t, err)

	f.clock.Set(at(kolkata, 4, 13, 0))
	out, err := f.svc.CheckOut(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusHalfDay), out.Status)
}

func TestCheckOut_ExactlySixHoursIsPresent(t *testing.T) {
	ctx := context.Background()
	kolkata, _ := time.LoadLocation("Asia/Kolkata")
	f := newFixture(t, at(kolkata, 4, 9, 0))

	_, err := f.svc.CheckIn(ctx, "EMP001")
	require.NoError(t, err)

	f.clock.Set(at(kolkata, 4, 15, 0))
	out, err := f.svc.CheckOut(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), out.Status)
}

func TestCheckIn_Twice(t *testing.T) {
	ctx := context.Background()
	kolkata, _ := time.LoadLocation("Asia/Kolkata")
	f := newFixture(t, at(kolkata, 4, 9, 0))

	_, err := f.svc.CheckIn(ctx, "EMP001")
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	_, err = f.svc.CheckIn(ctx, "EMP001")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestCheckIn_UsesLocalCalendarDay(t *testing.T) {
	ctx := context.Background()
	kolkata, _ := time.LoadLocation("Asia/Kolkata")
	// 00:30 local on the 5th is 19:00 UTC on the 4th
	f := newFixture(t, at(kolkata, 5, 0, 30))

	in, err := f.svc.CheckIn(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", in.Date)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	ctx := context.Background()
	kolkata, _ := time.LoadLocation("Asia/Kolkata")
	f := newFixture(t, at(kolkata, 4, 18, 0))

	_, err := f.svc.CheckOut(ctx, "EMP001")
	assert.ErrorIs(t, err, attendance.ErrCheckInRequired)
	assert.ErrorIs(t, err, apperror.ErrPrecondition)
}

func TestCheckOut_OnLeaveRecordRequiresCheckIn(t *testing.T) {
	ctx := context.Background()
	kolkata, _ := time.LoadLocation("Asia/Kolkata")
	f := newFixture(t, at(kolkata, 4, 18, 0))

	_, err := f.svc.UpsertStatus(ctx, "EMP001", clock.Date(2024, 3, 4), attendance.StatusLeave)
	require.NoError(t, err)

	_, err = f.svc.CheckOut(ctx, "EMP001")
	assert.ErrorIs(t, err, attendance.ErrCheckInRequired)
}

func TestCheckOut_TwiceLeavesRecordUnchanged(t *testing.T) {
	ctx := context.Background()
	kolkata, _ := time.LoadLocation("Asia/Kolkata")
	f := newFixture(t, at(kolkata, 4, 9, 0))

	_, err := f.svc.CheckIn(ctx, "EMP001")
	require.NoError(t, err)
	f.clock.Set(at(kolkata, 4, 18, 0))
	_, err = f.svc.CheckOut(ctx, "EMP001")
	require.NoError(t, err)

	before, err := f.repo.GetByEmployeeAndDate(ctx, "EMP001", clock.Date(2024, 3, 4))
	require.NoError(t, err)

	f.clock.Set(at(kolkata, 4, 19, 0))
	_, err = f.svc.CheckOut(ctx, "EMP001")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	assert.ErrorIs(t, err, apperror.ErrPrecondition)

	after, err := f.repo.GetByEmployeeAndDate(ctx, "EMP001", clock.Date(2024, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGetMyAttendance_NewestFirst(t *testing.T) {
	ctx := context.Background()
	kolkata, _ := time.LoadLocation("Asia/Kolkata")
	f := newFixture(t, at(kolkata, 4, 9, 0))

	for _, d := range []int{4, 5, 6} {
		f.clock.Set(at(kolkata, d, 9, 0))
		_, err := f.svc.CheckIn(ctx, "EMP001")
		require.NoError(t, err)
	}
	_, err := f.svc.CheckIn(ctx, "EMP002")
	require.NoError(t, err)

	mine, err := f.svc.GetMyAttendance(ctx, "EMP001")
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, []string{"2024-03-06", "2024-03-05", "2024-03-04"}, []string{mine[0].Date, mine[1].Date, mine[2].Date})
}

func TestUpsertStatus_RejectsUnknownStatus(t *testing.T) {
	f := newFixture(t, time.Now())
	_, err := f.svc.UpsertStatus(context.Background(), "EMP001", clock.Date(2024, 3, 4), attendance.Status("SICK"))
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)
}

func TestExportAttendance(t *testing.T) {
	ctx := context.Background()
	kolkata, _ := time.LoadLocation("Asia/Kolkata")
	f := newFixture(t, at(kolkata, 4, 9, 0))

	_, err := f.users.Create(ctx, user.User{EmployeeID: "EMP001", Name: "Asha", Email: "asha@dayflow.test", Role: user.RoleEmployee})
	require.NoError(t, err)
	_, err = f.svc.CheckIn(ctx, "EMP001")
	require.NoError(t, err)
	f.clock.Set(at(kolkata, 4, 18, 0))
	_, err = f.svc.CheckOut(ctx, "EMP001")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportAttendance(ctx, attendance.AttendanceFilter{}, &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, []string{"2024-03-04", "EMP001", "Asha", "asha@dayflow.test", "2024-03-04 09:00:00", "2024-03-04 18:00:00", "9.00", "PRESENT"}, rows[1])
}
