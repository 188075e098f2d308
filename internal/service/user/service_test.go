package user

import (
	"context"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/apperror"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (user.UserService, user.User) {
	t.Helper()
	store := memory.NewStore(clock.NewMock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))
	repo := memory.NewUserRepository(store)

	u, err := repo.Create(context.Background(), user.User{
		EmployeeID: "EMP001",
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		Role:       user.RoleEmployee,
	})
	require.NoError(t, err)
	return NewUserService(repo), u
}

func ptr(s string) *string { return &s }

func TestUpdateMe(t *testing.T) {
	svc, u := setup(t)

	resp, err := svc.UpdateMe(context.Background(), u.ID, user.UpdateMeRequest{Name: "  Asha R  "})
	require.NoError(t, err)
	assert.Equal(t, "Asha R", resp.Name)
	assert.Equal(t, "EMPLOYEE", resp.Role)

	_, err = svc.UpdateMe(context.Background(), u.ID, user.UpdateMeRequest{Name: " "})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.UpdateMe(context.Background(), "missing", user.UpdateMeRequest{Name: "x"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUpdateByAdmin(t *testing.T) {
	svc, u := setup(t)

	resp, err := svc.UpdateByAdmin(context.Background(), u.ID, user.UpdateUserRequest{Role: ptr("admin"), Phone: ptr("+91 98765 43210")})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", resp.Role)
	assert.Equal(t, "Asha Rao", resp.Name)
	require.NotNil(t, resp.Phone)
	assert.Equal(t, "+91 98765 43210", *resp.Phone)

	_, err = svc.UpdateByAdmin(context.Background(), u.ID, user.UpdateUserRequest{Role: ptr("owner")})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestList(t *testing.T) {
	svc, _ := setup(t)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "EMP001", users[0].EmployeeID)
}
