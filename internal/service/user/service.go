package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{UserRepository: userRepository}
}

// UpdateMe lets a user rename themselves. Role and contact details stay admin-owned.
func (s *UserServiceImpl) UpdateMe(ctx context.Context, userID string, req user.UpdateMeRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	return s.update(ctx, userID, user.UpdateUserRequest{Name: &req.Name})
}

func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, user.NewUserResponse(u))
	}
	return resp, nil
}

func (s *UserServiceImpl) UpdateByAdmin(ctx context.Context, userID string, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	return s.update(ctx, userID, req)
}

func (s *UserServiceImpl) update(ctx context.Context, userID string, req user.UpdateUserRequest) (user.UserResponse, error) {
	updated, err := s.UserRepository.Update(ctx, userID, req)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}
	return user.NewUserResponse(updated), nil
}
