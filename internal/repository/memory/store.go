// Package memory implements every repository in process. It enforces the same
// uniqueness keys as the Postgres schema and backs tests and STORE_DRIVER=memory.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
)

type refreshToken struct {
	userID    string
	expiresAt time.Time
	revokedAt *time.Time
}

type tables struct {
	users         map[string]user.User             // by id
	attendance    map[string]attendance.Attendance // by employee|date
	leaveRequests map[string]leave.LeaveRequest    // by id
	payroll       map[string]payroll.PayrollConfig // by employee id
	refreshTokens map[string]refreshToken          // by token hash
}

func (t tables) clone() tables {
	return tables{
		users:         maps.Clone(t.users),
		attendance:    maps.Clone(t.attendance),
		leaveRequests: maps.Clone(t.leaveRequests),
		payroll:       maps.Clone(t.payroll),
		refreshTokens: maps.Clone(t.refreshTokens),
	}
}

// Store holds every table. Transactions take gate exclusively; single
// statements outside a transaction take it shared.
type Store struct {
	gate  sync.RWMutex
	mu    sync.Mutex
	data  tables
	clock clock.Clock
}

func NewStore(c clock.Clock) *Store {
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Store{
		clock: c,
		data: tables{
			users:         make(map[string]user.User),
			attendance:    make(map[string]attendance.Attendance),
			leaveRequests: make(map[string]leave.LeaveRequest),
			payroll:       make(map[string]payroll.PayrollConfig),
			refreshTokens: make(map[string]refreshToken),
		},
	}
}

type txKey struct{}

func inTx(ctx context.Context, s *Store) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// lock guards one statement.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx, s) {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.gate.RLock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.gate.RUnlock()
	}
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC()
}

// WithinTransaction runs fn with exclusive access to the store and restores
// the previous state if fn returns an error. Nested calls join the outer one.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx, s) {
		return fn(ctx)
	}

	s.gate.Lock()
	defer s.gate.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}
