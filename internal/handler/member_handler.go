package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
	"github.com/Ihor-Prokopenko/teams-app/internal/mapper"
	"github.com/Ihor-Prokopenko/teams-app/internal/middleware"
	"github.com/Ihor-Prokopenko/teams-app/internal/request"
)

type MemberService interface {
	CreateMember(ctx context.Context, ownerID int64, email, fullName string) (*domain.Member, error)
	GetMember(ctx context.Context, ownerID, memberID int64) (*domain.Member, error)
	ListMembers(ctx context.Context, ownerID int64) ([]domain.Member, error)
	UpdateMember(ctx context.Context, ownerID, memberID int64, email, fullName string) error
	DeleteMember(ctx context.Context, ownerID, memberID int64) error
}

type MemberHandler struct {
	service   MemberService
	validator *validator.Validate
}

func NewMemberHandler(service MemberService, validator *validator.Validate) *MemberHandler {
	return &MemberHandler{
		service:   service,
		validator: validator,
	}
}

// CreateMember handles POST /api/members/create/.
func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req request.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondFailure(w, validationFields(err))
		return
	}

	member, err := h.service.CreateMember(r.Context(), ownerID, req.Email, req.FullName)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondMessage(w, http.StatusCreated, fmt.Sprintf("Member %s (%s) created", member.FullName(), member.Email))
}

// ListMembers handles GET /api/members/.
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	members, err := h.service.ListMembers(r.Context(), ownerID)
	if err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapDomainMembersToDTO(members))
}

// GetMember handles GET /api/members/{id}/.
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	memberID, ok := pathID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := h.service.GetMember(r.Context(), ownerID, memberID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Member not found")
			return
		}
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapDomainMemberToDTO(member))
}

// UpdateMember handles PUT /api/members/{id}/update/.
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	memberID, ok := pathID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid member id")
		return
	}

	var req request.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		respondFailure(w, validationFields(err))
		return
	}

	if err := h.service.UpdateMember(r.Context(), ownerID, memberID, req.Email, req.FullName); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Member not found")
			return
		}
		respondFailure(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Member details updated")
}

// DeleteMember handles DELETE /api/members/{id}/delete/.
func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}
	memberID, ok := pathID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid member id")
		return
	}

	if err := h.service.DeleteMember(r.Context(), ownerID, memberID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Member not found")
			return
		}
		respondFailure(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Member deleted")
}
