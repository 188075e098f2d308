package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/cron"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/lock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/metrics"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/queue"
	"github.com/dayflow-hr/dayflow-backend-go/internal/repository/memory"
	attendanceService "github.com/dayflow-hr/dayflow-backend-go/internal/service/attendance"
	authService "github.com/dayflow-hr/dayflow-backend-go/internal/service/auth"
	leaveService "github.com/dayflow-hr/dayflow-backend-go/internal/service/leave"
	payrollService "github.com/dayflow-hr/dayflow-backend-go/internal/service/payroll"
	profileService "github.com/dayflow-hr/dayflow-backend-go/internal/service/profile"
	userService "github.com/dayflow-hr/dayflow-backend-go/internal/service/user"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "s3cret-pass"

type testEnv struct {
	t      *testing.T
	router http.Handler
	clock  *clock.Mock
	users  user.UserRepository
	mail   *queue.InMemory
	dbUp   bool
}

// envelope mirrors response.Response with raw data.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

// newTestEnv builds the full router over the memory store. The clock starts
// on Monday 2024-03-04 09:00 UTC.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mock := clock.NewMock(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	calendar := clock.NewCalendar(mock, time.UTC)
	store := memory.NewStore(mock)
	m := metrics.New()

	users := memory.NewUserRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	leaveRepo := memory.NewLeaveRequestRepository(store)
	payrollRepo := memory.NewPayrollConfigRepository(store)

	jwtSvc := jwt.NewJWTService("handler-test-secret", 15*time.Minute, 24*time.Hour, false)
	mail := queue.NewInMemory(16)

	authSvc := authService.NewAuthService(users, memory.NewRefreshTokenRepository(store), jwtSvc, store, mail, mock, "http://dayflow.test").
		WithBcryptCost(bcrypt.MinCost)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, calendar, m)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, attendanceSvc, store, mock, m)
	profileSvc := profileService.NewProfileService(users, attendanceRepo, leaveRepo, payrollRepo)
	dayClose := cron.NewDayCloseJob(attendanceRepo, leaveRepo, users, calendar, lock.NewMemoryLocker(), m, 2)

	env := &testEnv{t: t, clock: mock, users: users, mail: mail, dbUp: true}
	env.router = NewRouter(RouterConfig{
		CORSOrigins:       []string{"http://localhost:5173"},
		JWTService:        jwtSvc,
		Metrics:           m.Handler(),
		AuthHandler:       NewAuthHandler(jwtSvc, authSvc, nil, "http://localhost:5173", false),
		AttendanceHandler: NewAttendanceHandler(attendanceSvc),
		LeaveHandler:      NewLeaveHandler(leaveSvc),
		PayrollHandler:    NewPayrollHandler(payrollService.NewPayrollService(payrollRepo, users)),
		UserHandler:       NewUserHandler(userService.NewUserService(users), profileSvc),
		AdminHandler:      NewAdminHandler(profileSvc, dayClose, calendar),
		HealthHandler:     NewHealthHandler(func(context.Context) bool { return env.dbUp }, nil),
	})
	return env
}

// createUser stores a verified user whose password is testPassword.
func (e *testEnv) createUser(employeeID, email string, role user.Role) user.User {
	e.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(e.t, err)
	hashStr := string(hash)

	u, err := e.users.Create(context.Background(), user.User{
		EmployeeID:    employeeID,
		Name:          "User " + employeeID,
		Email:         email,
		PasswordHash:  &hashStr,
		Role:          role,
		EmailVerified: true,
	})
	require.NoError(e.t, err)
	return u
}

// login returns an access token for email.
func (e *testEnv) login(email string) string {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": testPassword})
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	e.decode(rec, &data)
	require.NotEmpty(e.t, data.Token)
	return data.Token
}

func (e *testEnv) do(method, path, token string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) envelope(rec *httptest.ResponseRecorder) envelope {
	e.t.Helper()
	var env envelope
	require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

// decode unmarshals the envelope's data into v.
func (e *testEnv) decode(rec *httptest.ResponseRecorder, v any) {
	e.t.Helper()
	env := e.envelope(rec)
	require.NoError(e.t, json.Unmarshal(env.Data, v), string(env.Data))
}
