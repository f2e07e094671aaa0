package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
	"github.com/Ihor-Prokopenko/teams-app/internal/retry"
)

type TeamService struct {
	teams   TeamRepository
	members MemberRepository
	retry   retry.Policy
}

func NewTeamService(teams TeamRepository, members MemberRepository, policy retry.Policy) *TeamService {
	return &TeamService{
		teams:   teams,
		members: members,
		retry:   policy,
	}
}

// CreateTeam rejects a duplicate name under the same owner, then persists
// inside the retry envelope. The unique index on (owner_id, name) backstops
// the check under concurrent requests.
func (s *TeamService) CreateTeam(ctx context.Context, ownerID int64, name string) (*domain.Team, error) {
	exists, err := s.teams.NameExists(ctx, ownerID, name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check team name: %w", err)
	}
	if exists {
		return nil, errs.FieldError("name", fmt.Sprintf("Team with name %q already exists.", name))
	}

	team := &domain.Team{Name: name, OwnerID: ownerID, Members: []domain.Member{}}
	err = retry.Do(ctx, s.retry, func() error {
		return s.teams.CreateTeam(ctx, team)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) GetTeam(ctx context.Context, ownerID, teamID int64) (*domain.Team, error) {
	return s.teams.GetTeam(ctx, ownerID, teamID)
}

func (s *TeamService) ListTeams(ctx context.Context, ownerID int64) ([]domain.Team, error) {
	return s.teams.ListTeams(ctx, ownerID)
}

func (s *TeamService) UpdateTeam(ctx context.Context, ownerID, teamID int64, name string) error {
	exists, err := s.teams.NameExists(ctx, ownerID, name, teamID)
	if err != nil {
		return fmt.Errorf("failed to check team name: %w", err)
	}
	if exists {
		return errs.FieldError("name", fmt.Sprintf("Team with name %q already exists.", name))
	}

	return retry.Do(ctx, s.retry, func() error {
		return s.teams.UpdateTeamName(ctx, ownerID, teamID, name)
	})
}

// DeleteTeam removes the team; members stay and lose their assignment.
func (s *TeamService) DeleteTeam(ctx context.Context, ownerID, teamID int64) error {
	return retry.Do(ctx, s.retry, func() error {
		return s.teams.DeleteTeam(ctx, ownerID, teamID)
	})
}

// AddMember assigns a member to a team. Both records must exist under the
// caller's ownership, and the member must not already be in the team.
func (s *TeamService) AddMember(ctx context.Context, ownerID, teamID, memberID int64) error {
	team, member, err := s.lookupPair(ctx, ownerID, teamID, memberID)
	if err != nil {
		return err
	}
	if member.InTeam(team.ID) {
		return errs.NewDomainError("Member already in the team", http.StatusBadRequest)
	}

	return retry.Do(ctx, s.retry, func() error {
		return s.members.SetMemberTeam(ctx, ownerID, memberID, &team.ID)
	})
}

// RemoveMember detaches a member from a team it is currently assigned to.
func (s *TeamService) RemoveMember(ctx context.Context, ownerID, teamID, memberID int64) error {
	team, member, err := s.lookupPair(ctx, ownerID, teamID, memberID)
	if err != nil {
		return err
	}
	if !member.InTeam(team.ID) {
		return errs.NewDomainError("Member is not in the team", http.StatusBadRequest)
	}

	return retry.Do(ctx, s.retry, func() error {
		return s.members.SetMemberTeam(ctx, ownerID, memberID, nil)
	})
}

func (s *TeamService) lookupPair(ctx context.Context, ownerID, teamID, memberID int64) (*domain.Team, *domain.Member, error) {
	invalid := errs.NewDomainError("Invalid team or member", http.StatusBadRequest)

	team, err := s.teams.GetTeam(ctx, ownerID, teamID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil, invalid
		}
		return nil, nil, err
	}
	member, err := s.members.GetMember(ctx, ownerID, memberID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil, invalid
		}
		return nil, nil, err
	}
	return team, member, nil
}
