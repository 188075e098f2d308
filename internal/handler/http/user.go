package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/profile"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService    user.UserService
	profileService profile.ProfileService
}

func NewUserHandler(userService user.UserService, profileService profile.ProfileService) UserHandler {
	return &userHandlerImpl{
		userService:    userService,
		profileService: profileService,
	}
}

// GetMe returns the aggregated summary of the caller.
func (h *userHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	summary, err := h.profileService.GetSummary(r.Context(), id.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

func (h *userHandlerImpl) UpdateMe(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())

	var req user.UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateMe decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.userService.UpdateMe(r.Context(), id.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated", result)
}

func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

func (h *userHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.userService.UpdateByAdmin(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated", result)
}
