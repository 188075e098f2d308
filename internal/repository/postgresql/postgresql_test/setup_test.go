package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/dayflow-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE TABLE refresh_tokens, payroll_configs, leave_requests, attendances, users CASCADE")
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *database.DB, employeeID, email string) user.User {
	t.Helper()
	u, err := postgresql.NewUserRepository(db).Create(context.Background(), user.User{
		EmployeeID: employeeID,
		Name:       "Employee " + employeeID,
		Email:      email,
		Role:       user.RoleEmployee,
	})
	require.NoError(t, err)
	return u
}
