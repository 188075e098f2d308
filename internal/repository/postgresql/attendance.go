package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `id, employee_id, date, check_in, check_out, status, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row, extra ...any) (attendance.Attendance, error) {
	var a attendance.Attendance
	dest := append([]any{
		&a.ID, &a.EmployeeID, &a.Date, &a.CheckIn, &a.CheckOut, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return attendance.Attendance{}, err
	}
	a.Date = a.Date.UTC()
	return a, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, check_in, check_out, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, a.EmployeeID, a.Date, a.CheckIn, a.CheckOut, a.Status).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if constraint, ok := uniqueViolationOn(err); ok && constraint == "attendances_employee_date_key" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return a, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 AND date = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// CloseDay implements attendance.AttendanceRepository. The guard in the WHERE
// clause makes concurrent check-outs race on the row lock; the loser sees no row.
func (r *attendanceRepository) CloseDay(ctx context.Context, id string, checkOut time.Time, status attendance.Status) (attendance.Attendance, error) {
	if !validID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $2, status = $3, updated_at = NOW()
		WHERE id = $1 AND check_in IS NOT NULL AND check_out IS NULL
		RETURNING ` + attendanceColumns

	a, err := scanAttendance(q.QueryRow(ctx, query, id, checkOut, status))
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, fmt.Errorf("failed to close attendance day: %w", err)
	}

	var checkIn, existingCheckOut *time.Time
	err = q.QueryRow(ctx, `SELECT check_in, check_out FROM attendances WHERE id = $1`, id).Scan(&checkIn, &existingCheckOut)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	case err != nil:
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	case checkIn == nil:
		return attendance.Attendance{}, attendance.ErrCheckInRequired
	default:
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
}

// UpsertStatus implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpsertStatus(ctx context.Context, employeeID string, date time.Time, status attendance.Status) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT attendances_employee_date_key
		DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
		RETURNING ` + attendanceColumns

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, status))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance status: %w", err)
	}
	return a, nil
}

// CreateIfAbsent implements attendance.AttendanceRepository.
func (r *attendanceRepository) CreateIfAbsent(ctx context.Context, employeeID string, date time.Time, status attendance.Status) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT attendances_employee_date_key DO NOTHING
	`
	tag, err := q.Exec(ctx, query, employeeID, date, status)
	if err != nil {
		return false, fmt.Errorf("failed to insert attendance: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 ORDER BY date DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	var (
		where []string
		args  []any
	)
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where = append(where, fmt.Sprintf("a.employee_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("a.date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("a.date <= $%d", len(args)))
	}

	query := `
		SELECT a.id, a.employee_id, a.date, a.check_in, a.check_out, a.status, a.created_at, a.updated_at,
		       u.name, u.email
		FROM attendances a
		LEFT JOIN users u ON u.employee_id = a.employee_id
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.date DESC, a.employee_id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var name, email *string
		a, err := scanAttendance(rows, &name, &email)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		a.EmployeeName, a.EmployeeEmail = name, email
		records = append(records, a)
	}
	return records, rows.Err()
}
