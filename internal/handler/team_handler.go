package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
	"github.com/Ihor-Prokopenko/teams-app/internal/mapper"
	"github.com/Ihor-Prokopenko/teams-app/internal/middleware"
	"github.com/Ihor-Prokopenko/teams-app/internal/request"
)

type TeamService interface {
	CreateTeam(ctx context.Context, ownerID int64, name string) (*domain.Team, error)
	GetTeam(ctx context.Context, ownerID, teamID int64) (*domain.Team, error)
	ListTeams(ctx context.Context, ownerID int64) ([]domain.Team, error)
	UpdateTeam(ctx context.Context, ownerID, teamID int64, name string) error
	DeleteTeam(ctx context.Context, ownerID, teamID int64) error
	AddMember(ctx context.Context, ownerID, teamID, memberID int64) error
	RemoveMember(ctx context.Context, ownerID, teamID, memberID int64) error
}

type TeamHandler struct {
	service   TeamService
	validator *validator.Validate
}

func NewTeamHandler(service TeamService, validator *validator.Validate) *TeamHandler {
	return &TeamHandler{
		service:   service,
		validator: validator,
	}
}

// CreateTeam handles POST /api/teams/create/.
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req request.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondFailure(w, validationFields(err))
		return
	}

	team, err := h.service.CreateTeam(r.Context(), ownerID, req.Name)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondMessage(w, http.StatusCreated, fmt.Sprintf("Team %s created", team.Name))
}

// ListTeams handles GET /api/teams/.
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	teams, err := h.service.ListTeams(r.Context(), ownerID)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapDomainTeamsToDTO(teams))
}

// GetTeam handles GET /api/teams/{id}/.
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	teamID, ok := pathID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid team id")
		return
	}

	team, err := h.service.GetTeam(r.Context(), ownerID, teamID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Team not found")
			return
		}
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapDomainTeamToDTO(team))
}

// UpdateTeam handles PUT /api/teams/{id}/update/.
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	teamID, ok := pathID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid team id")
		return
	}

	var req request.UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondFailure(w, validationFields(err))
		return
	}

	if err := h.service.UpdateTeam(r.Context(), ownerID, teamID, req.Name); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Team not found")
			return
		}
		respondFailure(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Team details updated")
}

// DeleteTeam handles DELETE /api/teams/{id}/delete/.
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	teamID, ok := pathID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid team id")
		return
	}

	if err := h.service.DeleteTeam(r.Context(), ownerID, teamID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Team not found")
			return
		}
		respondFailure(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Team deleted")
}

// AddMember handles POST /api/teams/{team_id}/add-member/{member_id}/.
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	ownerID, teamID, memberID, ok := membershipParams(w, r)
	if !ok {
		return
	}

	if err := h.service.AddMember(r.Context(), ownerID, teamID, memberID); err != nil {
		respondFailure(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Member added to the team")
}

// RemoveMember handles POST /api/teams/{team_id}/remove-member/{member_id}/.
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ownerID, teamID, memberID, ok := membershipParams(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveMember(r.Context(), ownerID, teamID, memberID); err != nil {
		respondFailure(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Member removed from the team")
}

func membershipParams(w http.ResponseWriter, r *http.Request) (ownerID, teamID, memberID int64, ok bool) {
	ownerID, authed := middleware.UserIDFromContext(r.Context())
	if !authed {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return 0, 0, 0, false
	}
	teamID, teamOK := pathID(r, "team_id")
	memberID, memberOK := pathID(r, "member_id")
	if !teamOK || !memberOK {
		respondMessage(w, http.StatusBadRequest, "Invalid team or member")
		return 0, 0, 0, false
	}
	return ownerID, teamID, memberID, true
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
