package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func attendanceKey(employeeID string, date time.Time) string {
	return employeeID + "|" + clock.FormatDate(date)
}

func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	defer r.store.lock(ctx)()

	key := attendanceKey(a.EmployeeID, a.Date)
	if _, exists := r.store.data.attendance[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}

	now := r.store.now()
	a.ID = uuid.NewString()
	a.CreatedAt, a.UpdatedAt = now, now
	a.EmployeeName, a.EmployeeEmail = nil, nil
	r.store.data.attendance[key] = a
	return a, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	defer r.store.lock(ctx)()

	a, ok := r.store.data.attendance[attendanceKey(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *attendanceRepository) CloseDay(ctx context.Context, id string, checkOut time.Time, status attendance.Status) (attendance.Attendance, error) {
	defer r.store.lock(ctx)()

	for key, a := range r.store.data.attendance {
		if a.ID != id {
			continue
		}
		if a.CheckIn == nil {
			return attendance.Attendance{}, attendance.ErrCheckInRequired
		}
		if a.CheckOut != nil {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		out := checkOut
		a.CheckOut = &out
		a.Status = status
		a.UpdatedAt = r.store.now()
		r.store.data.attendance[key] = a
		return a, nil
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *attendanceRepository) UpsertStatus(ctx context.Context, employeeID string, date time.Time, status attendance.Status) (attendance.Attendance, error) {
	defer r.store.lock(ctx)()

	now := r.store.now()
	key := attendanceKey(employeeID, date)
	a, exists := r.store.data.attendance[key]
	if !exists {
		a = attendance.Attendance{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Date:       date,
			CreatedAt:  now,
		}
	}
	a.Status = status
	a.UpdatedAt = now
	r.store.data.attendance[key] = a
	return a, nil
}

func (r *attendanceRepository) CreateIfAbsent(ctx context.Context, employeeID string, date time.Time, status attendance.Status) (bool, error) {
	defer r.store.lock(ctx)()

	key := attendanceKey(employeeID, date)
	if _, exists := r.store.data.attendance[key]; exists {
		return false, nil
	}

	now := r.store.now()
	r.store.data.attendance[key] = attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return true, nil
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	defer r.store.lock(ctx)()

	records := make([]attendance.Attendance, 0)
	for _, a := range r.store.data.attendance {
		if a.EmployeeID == employeeID {
			records = append(records, a)
		}
	}
	sortAttendance(records)
	return records, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	defer r.store.lock(ctx)()

	names := make(map[string][2]string, len(r.store.data.users))
	for _, u := range r.store.data.users {
		names[u.EmployeeID] = [2]string{u.Name, u.Email}
	}

	records := make([]attendance.Attendance, 0)
	for _, a := range r.store.data.attendance {
		if filter.EmployeeID != "" && a.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.From != nil && a.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.Date.After(*filter.To) {
			continue
		}
		if identity, ok := names[a.EmployeeID]; ok {
			name, email := identity[0], identity[1]
			a.EmployeeName, a.EmployeeEmail = &name, &email
		}
		records = append(records, a)
	}
	sortAttendance(records)
	return records, nil
}

// sortAttendance orders by date descending, then employee id.
func sortAttendance(records []attendance.Attendance) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].EmployeeID < records[j].EmployeeID
	})
}
