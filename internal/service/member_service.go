package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
	"github.com/Ihor-Prokopenko/teams-app/internal/retry"
)

type MemberService struct {
	members MemberRepository
	retry   retry.Policy
}

func NewMemberService(members MemberRepository, policy retry.Policy) *MemberService {
	return &MemberService{
		members: members,
		retry:   policy,
	}
}

// CreateMember rejects a duplicate email under the same owner (emails are
// compared case-insensitively and stored lowercased), then persists inside
// the retry envelope.
func (s *MemberService) CreateMember(ctx context.Context, ownerID int64, email, fullName string) (*domain.Member, error) {
	email = strings.ToLower(email)

	exists, err := s.members.EmailExists(ctx, ownerID, email, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check member email: %w", err)
	}
	if exists {
		return nil, errs.FieldError("email", fmt.Sprintf("Member with email %q already exists.", email))
	}

	member := &domain.Member{Email: email, OwnerID: ownerID}
	if err := member.SetFullName(fullName); err != nil {
		return nil, errs.FieldError("full_name", "Full name cannot be empty.")
	}

	err = retry.Do(ctx, s.retry, func() error {
		return s.members.CreateMember(ctx, member)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *MemberService) GetMember(ctx context.Context, ownerID, memberID int64) (*domain.Member, error) {
	return s.members.GetMember(ctx, ownerID, memberID)
}

func (s *MemberService) ListMembers(ctx context.Context, ownerID int64) ([]domain.Member, error) {
	return s.members.ListMembers(ctx, ownerID)
}

func (s *MemberService) UpdateMember(ctx context.Context, ownerID, memberID int64, email, fullName string) error {
	email = strings.ToLower(email)

	exists, err := s.members.EmailExists(ctx, ownerID, email, memberID)
	if err != nil {
		return fmt.Errorf("failed to check member email: %w", err)
	}
	if exists {
		return errs.FieldError("email", fmt.Sprintf("Member with email %q already exists.", email))
	}

	member, err := s.members.GetMember(ctx, ownerID, memberID)
	if err != nil {
		return err
	}
	member.Email = email
	if fullName != "" {
		if err := member.SetFullName(fullName); err != nil {
			return errs.FieldError("full_name", "Full name cannot be empty.")
		}
	}

	return retry.Do(ctx, s.retry, func() error {
		return s.members.UpdateMember(ctx, member)
	})
}

func (s *MemberService) DeleteMember(ctx context.Context, ownerID, memberID int64) error {
	return retry.Do(ctx, s.retry, func() error {
		return s.members.DeleteMember(ctx, ownerID, memberID)
	})
}
