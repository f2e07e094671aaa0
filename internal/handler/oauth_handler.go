package handler

import (
	"context"
	"net/http"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
)

type OAuthService interface {
	LoginURL(ctx context.Context) (string, error)
	HandleCallback(ctx context.Context, state, code string) (*domain.User, error)
}

type OAuthHandler struct {
	service OAuthService
	users   *UserHandler
}

func NewOAuthHandler(service OAuthService, users *UserHandler) *OAuthHandler {
	return &OAuthHandler{
		service: service,
		users:   users,
	}
}

// GoogleLogin handles GET /api/users/oauth/google and returns the consent
// URL for clients that drive the redirect themselves.
func (h *OAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	url, err := h.service.LoginURL(r.Context())
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"auth_url": url})
}

// GoogleRedirect handles GET /api/users/oauth/google/redirect/ and sends
// the browser straight to the consent page.
func (h *OAuthHandler) GoogleRedirect(w http.ResponseWriter, r *http.Request) {
	url, err := h.service.LoginURL(r.Context())
	if err != nil {
		respondFailure(w, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

// GoogleCallback handles GET /api/users/oauth/google/callback: it closes
// the flow by resolving the local account and opening a session.
func (h *OAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		respondMessage(w, http.StatusBadRequest, "state and code query parameters are required")
		return
	}

	user, err := h.service.HandleCallback(r.Context(), state, code)
	if err != nil {
		respondFailure(w, err)
		return
	}

	h.users.openSession(w, r, user.ID)
}
