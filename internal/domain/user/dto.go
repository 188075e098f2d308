package user

import (
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Phone         *string   `json:"phone,omitempty"`
	Address       *string   `json:"address,omitempty"`
	ProfilePic    *string   `json:"profilePic,omitempty"`
	EmailVerified bool      `json:"isVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		EmployeeID:    u.EmployeeID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		Phone:         u.Phone,
		Address:       u.Address,
		ProfilePic:    u.ProfilePic,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// UpdateMeRequest is what an employee may change about themselves.
type UpdateMeRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

func (r *UpdateMeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateUserRequest is the admin update; nil fields are left unchanged.
type UpdateUserRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Address    *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Role       *string `json:"role,omitempty" validate:"omitempty,oneof=EMPLOYEE ADMIN"`
	ProfilePic *string `json:"profilePic,omitempty" validate:"omitempty,url"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
	}
	if r.Role != nil {
		upper := strings.ToUpper(*r.Role)
		r.Role = &upper
	}
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}
