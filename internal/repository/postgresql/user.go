package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, employee_id, name, email, password_hash, role, phone, address, profile_pic,
	email_verified, verification_token, verification_token_expiry, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.EmployeeID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Phone,
		&u.Address,
		&u.ProfilePic,
		&u.EmailVerified,
		&u.VerificationToken,
		&u.VerificationTokenExpiry,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *userRepositoryImpl) getOne(ctx context.Context, notFound error, where string, arg any) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, notFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			employee_id, name, email, password_hash, role, phone, address, profile_pic,
			email_verified, verification_token, verification_token_expiry
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		newUser.EmployeeID,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.Phone,
		newUser.Address,
		newUser.ProfilePic,
		newUser.EmailVerified,
		newUser.VerificationToken,
		newUser.VerificationTokenExpiry,
	).Scan(&newUser.ID, &newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		if constraint, ok := uniqueViolationOn(err); ok {
			switch constraint {
			case "users_email_lower_key":
				return user.User{}, user.ErrUserEmailExists
			case "users_employee_id_key":
				return user.User{}, user.ErrEmployeeIDExists
			}
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return newUser, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	if !validID(id) {
		return user.User{}, user.ErrUserNotFound
	}
	return r.getOne(ctx, user.ErrUserNotFound, "id = $1", id)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, user.ErrUserNotFound, "LOWER(email) = LOWER($1)", email)
}

// GetByEmployeeID implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	return r.getOne(ctx, user.ErrEmployeeNotFound, "employee_id = $1", employeeID)
}

// GetByVerificationToken implements user.UserRepository.
func (r *userRepositoryImpl) GetByVerificationToken(ctx context.Context, token string) (user.User, error) {
	return r.getOne(ctx, user.ErrUserNotFound, "verification_token = $1", token)
}

// MarkEmailVerified implements user.UserRepository.
func (r *userRepositoryImpl) MarkEmailVerified(ctx context.Context, id string, verifiedAt time.Time) error {
	if !validID(id) {
		return user.ErrUserNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET email_verified = TRUE, verification_token = NULL, verification_token_expiry = NULL, updated_at = $2
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id, verifiedAt)
	if err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Update implements user.UserRepository. Nil fields keep their value.
func (r *userRepositoryImpl) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.User, error) {
	if !validID(id) {
		return user.User{}, user.ErrUserNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users SET
			name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			address = COALESCE($4, address),
			role = COALESCE($5, role),
			profile_pic = COALESCE($6, profile_pic),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(q.QueryRow(ctx, query, id, req.Name, req.Phone, req.Address, req.Role, req.ProfilePic))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY employee_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListEmployeeIDs implements user.UserRepository.
func (r *userRepositoryImpl) ListEmployeeIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT employee_id FROM users ORDER BY employee_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee ids: %w", err)
	}
	return ids, nil
}
