package user

import (
	"context"
	"time"
)

type UserRepository interface {
	// Create returns ErrUserEmailExists or ErrEmployeeIDExists on duplicates.
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	GetByVerificationToken(ctx context.Context, token string) (User, error)
	MarkEmailVerified(ctx context.Context, id string, verifiedAt time.Time) error
	Update(ctx context.Context, id string, req UpdateUserRequest) (User, error)
	List(ctx context.Context) ([]User, error)

	// ListEmployeeIDs returns the employee code of every user.
	ListEmployeeIDs(ctx context.Context) ([]string, error)
}

type UserService interface {
	UpdateMe(ctx context.Context, userID string, req UpdateMeRequest) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
	UpdateByAdmin(ctx context.Context, userID string, req UpdateUserRequest) (UserResponse, error)
}
