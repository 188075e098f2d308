package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) user.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	defer r.store.lock(ctx)()

	for _, u := range r.store.data.users {
		if strings.EqualFold(u.Email, newUser.Email) {
			return user.User{}, user.ErrUserEmailExists
		}
		if u.EmployeeID == newUser.EmployeeID {
			return user.User{}, user.ErrEmployeeIDExists
		}
	}

	now := r.store.now()
	newUser.ID = uuid.NewString()
	newUser.CreatedAt, newUser.UpdatedAt = now, now
	r.store.data.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	defer r.store.lock(ctx)()

	u, ok := r.store.data.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) find(match func(user.User) bool) (user.User, bool) {
	for _, u := range r.store.data.users {
		if match(u) {
			return u, true
		}
	}
	return user.User{}, false
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	defer r.store.lock(ctx)()

	u, ok := r.find(func(u user.User) bool { return strings.EqualFold(u.Email, email) })
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	defer r.store.lock(ctx)()

	u, ok := r.find(func(u user.User) bool { return u.EmployeeID == employeeID })
	if !ok {
		return user.User{}, user.ErrEmployeeNotFound
	}
	return u, nil
}

func (r *userRepository) GetByVerificationToken(ctx context.Context, token string) (user.User, error) {
	defer r.store.lock(ctx)()

	u, ok := r.find(func(u user.User) bool {
		return u.VerificationToken != nil && *u.VerificationToken == token
	})
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, id string, verifiedAt time.Time) error {
	defer r.store.lock(ctx)()

	u, ok := r.store.data.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.EmailVerified = true
	u.VerificationToken = nil
	u.VerificationTokenExpiry = nil
	u.UpdatedAt = verifiedAt
	r.store.data.users[id] = u
	return nil
}

func (r *userRepository) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.User, error) {
	defer r.store.lock(ctx)()

	u, ok := r.store.data.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Address != nil {
		u.Address = req.Address
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.ProfilePic != nil {
		u.ProfilePic = req.ProfilePic
	}
	u.UpdatedAt = r.store.now()
	r.store.data.users[id] = u
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]user.User, error) {
	defer r.store.lock(ctx)()

	users := make([]user.User, 0, len(r.store.data.users))
	for _, u := range r.store.data.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].EmployeeID < users[j].EmployeeID })
	return users, nil
}

func (r *userRepository) ListEmployeeIDs(ctx context.Context) ([]string, error) {
	defer r.store.lock(ctx)()

	ids := make([]string, 0, len(r.store.data.users))
	for _, u := range r.store.data.users {
		ids = append(ids, u.EmployeeID)
	}
	sort.Strings(ids)
	return ids, nil
}
