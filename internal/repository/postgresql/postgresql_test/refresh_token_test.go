package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenRepository(t *testing.T) {
	db := openTestDB(t)
	u := seedUser(t, db, "EMP001", "asha@example.com")
	repo := postgresql.NewRefreshTokenRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateRefreshToken(ctx, u.ID, "token-a", time.Now().Add(time.Hour).Unix(), auth.SessionTrackingRequest{UserAgent: "test"}))

	userID, revoked, err := repo.IsRefreshTokenRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Equal(t, u.ID, userID)

	require.NoError(t, repo.RevokeRefreshToken(ctx, "token-a"))
	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestPayrollConfigRepository_Upsert(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "EMP001", "asha@example.com")
	repo := postgresql.NewPayrollConfigRepository(db)
	ctx := context.Background()

	_, err := repo.GetByEmployeeID(ctx, "EMP001")
	assert.ErrorIs(t, err, payroll.ErrPayrollConfigNotFound)

	cfg := payroll.PayrollConfig{
		EmployeeID:  "EMP001",
		MonthlyWage: decimal.NewFromInt(50000),
		YearlyWage:  decimal.NewFromInt(600000),
		Computed:    payroll.Computed{NetSalary: decimal.NewFromInt(46800)},
	}
	first, err := repo.Upsert(ctx, cfg)
	require.NoError(t, err)

	cfg.MonthlyWage = decimal.NewFromInt(60000)
	second, err := repo.Upsert(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.MonthlyWage.Equal(decimal.NewFromInt(60000)))
}
