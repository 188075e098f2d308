package auth

import (
	"strings"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

type SignupRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
}

func (r *SignupRequest) Validate() error {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	errs := validator.Struct(r)
	if r.EmployeeID != "" && !validator.IsValidEmployeeCode(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId may only contain letters, numbers, underscores and hyphens (2-32 characters)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SignupResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (r *RefreshTokenRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"token"`
	AccessTokenExpiresIn  int64  `json:"expiresAt"`
	RefreshToken          string `json:"-"`
	RefreshTokenExpiresIn int64  `json:"-"`
	Role                  string `json:"role"`
	Name                  string `json:"name"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"token"`
	AccessTokenExpiresIn int64  `json:"expiresAt"`
}
