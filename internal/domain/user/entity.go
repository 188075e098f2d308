package user

import "time"

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// VerificationTTL is how long a signup verification token stays valid.
const VerificationTTL = 24 * time.Hour

type User struct {
	ID                      string
	EmployeeID              string
	Name                    string
	Email                   string
	PasswordHash            *string
	Role                    Role
	Phone                   *string
	Address                 *string
	ProfilePic              *string
	EmailVerified           bool
	VerificationToken       *string
	VerificationTokenExpiry *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanVerify reports whether token matches the user's pending verification at now.
func (u *User) CanVerify(token string, now time.Time) bool {
	if u.VerificationToken == nil || u.VerificationTokenExpiry == nil {
		return false
	}
	return *u.VerificationToken == token && now.Before(*u.VerificationTokenExpiry)
}
