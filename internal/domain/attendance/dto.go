package attendance

import (
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	Name        *string    `json:"name,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Date        string     `json:"date"`
	CheckIn     *time.Time `json:"checkIn"`
	CheckOut    *time.Time `json:"checkOut"`
	Status      string     `json:"status"`
	HoursWorked *float64   `json:"hoursWorked,omitempty"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Name:       a.EmployeeName,
		Email:      a.EmployeeEmail,
		Date:       clock.FormatDate(a.Date),
		CheckIn:    a.CheckIn,
		CheckOut:   a.CheckOut,
		Status:     string(a.Status),
	}
	if hours, ok := a.HoursWorked(); ok {
		resp.HoursWorked = &hours
	}
	return resp
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, NewAttendanceResponse(a))
	}
	return responses
}

// ListAttendanceQuery is the query string of the admin listing and export.
type ListAttendanceQuery struct {
	EmployeeID string `json:"employeeId"`
	From       string `json:"from" validate:"omitempty,date"`
	To         string `json:"to" validate:"omitempty,date"`
}

func (q *ListAttendanceQuery) Validate() error {
	errs := validator.Struct(q)
	if len(errs) == 0 && q.From != "" && q.To != "" && q.From > q.To {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must not be after to",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToFilter converts a validated query into a repository filter.
func (q *ListAttendanceQuery) ToFilter() AttendanceFilter {
	filter := AttendanceFilter{EmployeeID: q.EmployeeID}
	if q.From != "" {
		if from, err := clock.ParseDate(q.From); err == nil {
			filter.From = &from
		}
	}
	if q.To != "" {
		if to, err := clock.ParseDate(q.To); err == nil {
			filter.To = &to
		}
	}
	return filter
}
