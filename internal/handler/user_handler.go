package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
	"github.com/Ihor-Prokopenko/teams-app/internal/dto"
	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
	"github.com/Ihor-Prokopenko/teams-app/internal/middleware"
	"github.com/Ihor-Prokopenko/teams-app/internal/request"
)

type UserService interface {
	Register(ctx context.Context, email, password, fullName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	EditProfile(ctx context.Context, userID int64, email, fullName string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmPassword string) error
	DeleteAccount(ctx context.Context, callerID, targetID int64) error
}

// SessionManager is the session lifecycle surface the account endpoints use.
type SessionManager interface {
	Create(ctx context.Context, userID int64) (string, error)
	Destroy(ctx context.Context, sessionID string) error
}

type UserHandler struct {
	service    UserService
	sessions   SessionManager
	sessionTTL time.Duration
	validator  *validator.Validate
}

func NewUserHandler(service UserService, sessions SessionManager, sessionTTL time.Duration, validator *validator.Validate) *UserHandler {
	return &UserHandler{
		service:    service,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		validator:  validator,
	}
}

// Register handles POST /api/users/register/.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondFailure(w, validationFields(err))
		return
	}

	if _, err := h.service.Register(r.Context(), req.Email, req.Password, req.FullName); err != nil {
		respondFailure(w, err)
		return
	}

	respondMessage(w, http.StatusCreated, "New user created")
}

// Login handles POST /api/users/login/. A session cookie is set for
// browsers and the token is echoed for bearer clients.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondFailure(w, validationFields(err))
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			respondMessage(w, http.StatusForbidden, "Invalid Credentials")
			return
		}
		respondFailure(w, err)
		return
	}

	h.openSession(w, r, user.ID)
}

// Logout handles POST /api/users/logout/.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := middleware.SessionIDFromContext(r.Context()); ok {
		if err := h.sessions.Destroy(r.Context(), sessionID); err != nil {
			respondFailure(w, err)
			return
		}
	}
	h.clearSessionCookie(w)

	respondMessage(w, http.StatusOK, "Logged out successfully")
}

// EditProfile handles PUT /api/users/edit-profile/.
func (h *UserHandler) EditProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req request.EditProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondFailure(w, validationFields(err))
		return
	}

	if _, err := h.service.EditProfile(r.Context(), userID, req.Email, req.FullName); err != nil {
		respondFailure(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Profile updated")
}

// ChangePassword handles POST /api/users/change-password/. On success the
// current session is destroyed so existing credentials stop working.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req request.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondFailure(w, validationFields(err))
		return
	}

	err := h.service.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		respondFailure(w, err)
		return
	}

	if sessionID, ok := middleware.SessionIDFromContext(r.Context()); ok {
		if err := h.sessions.Destroy(r.Context(), sessionID); err != nil {
			respondFailure(w, err)
			return
		}
	}
	h.clearSessionCookie(w)

	respondMessage(w, http.StatusOK, "Password changed")
}

// DeleteAccount handles DELETE /api/users/delete/{id}/.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	targetID, ok := pathID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.service.DeleteAccount(r.Context(), userID, targetID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		respondFailure(w, err)
		return
	}

	if sessionID, ok := middleware.SessionIDFromContext(r.Context()); ok {
		_ = h.sessions.Destroy(r.Context(), sessionID)
	}
	h.clearSessionCookie(w)

	respondMessage(w, http.StatusOK, "User deleted")
}

func (h *UserHandler) openSession(w http.ResponseWriter, r *http.Request, userID int64) {
	token, err := h.sessions.Create(r.Context(), userID)
	if err != nil {
		respondFailure(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, dto.LoginResponse{
		Message: "Login Successful",
		Token:   token,
	})
}

func (h *UserHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
