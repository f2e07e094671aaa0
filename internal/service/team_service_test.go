package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
)

func TestCreateTeam_DuplicateName(t *testing.T) {
	teams := &fakeTeamRepo{
		nameExists: func(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
			return true, nil
		},
	}
	svc := NewTeamService(teams, &fakeMemberRepo{}, testPolicy)

	_, err := svc.CreateTeam(context.Background(), 1, "core")

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{`Team with name "core" already exists.`}, validationErr.Fields["name"])
	assert.Equal(t, 0, teams.createCalls, "duplicate must not reach the store")
}

func TestCreateTeam_Success(t *testing.T) {
	teams := &fakeTeamRepo{
		nameExists: func(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
			assert.Equal(t, int64(0), excludeID)
			return false, nil
		},
		createTeam: func(ctx context.Context, team *domain.Team) error {
			team.ID = 7
			return nil
		},
	}
	svc := NewTeamService(teams, &fakeMemberRepo{}, testPolicy)

	team, err := svc.CreateTeam(context.Background(), 1, "core")

	require.NoError(t, err)
	assert.Equal(t, int64(7), team.ID)
	assert.Equal(t, int64(1), team.OwnerID)
	assert.NotNil(t, team.Members)
	assert.Equal(t, 1, teams.createCalls)
}

func TestCreateTeam_RetriesTransientFailure(t *testing.T) {
	transient := &pgconn.PgError{Code: "40001"}
	teams := &fakeTeamRepo{
		nameExists: func(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
			return false, nil
		},
	}
	teams.createTeam = func(ctx context.Context, team *domain.Team) error {
		if teams.createCalls < 3 {
			return transient
		}
		return nil
	}
	svc := NewTeamService(teams, &fakeMemberRepo{}, testPolicy)

	_, err := svc.CreateTeam(context.Background(), 1, "core")

	require.NoError(t, err)
	assert.Equal(t, 3, teams.createCalls)
}

func TestCreateTeam_ExhaustsRetryBudget(t *testing.T) {
	transient := &pgconn.PgError{Code: "40P01"}
	teams := &fakeTeamRepo{
		nameExists: func(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
			return false, nil
		},
		createTeam: func(ctx context.Context, team *domain.Team) error {
			return transient
		},
	}
	svc := NewTeamService(teams, &fakeMemberRepo{}, testPolicy)

	_, err := svc.CreateTeam(context.Background(), 1, "core")

	require.Error(t, err)
	assert.True(t, errs.IsStoreFailure(err))
	assert.Equal(t, 3, teams.createCalls)
}

func TestUpdateTeam_ExcludesOwnRecord(t *testing.T) {
	var gotExclude int64
	teams := &fakeTeamRepo{
		nameExists: func(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
			gotExclude = excludeID
			return false, nil
		},
		updateTeamName: func(ctx context.Context, ownerID, teamID int64, name string) error {
			return nil
		},
	}
	svc := NewTeamService(teams, &fakeMemberRepo{}, testPolicy)

	err := svc.UpdateTeam(context.Background(), 1, 42, "core")

	require.NoError(t, err)
	assert.Equal(t, int64(42), gotExclude)
}

func TestAddMember_Success(t *testing.T) {
	members := &fakeMemberRepo{
		getMember: func(ctx context.Context, ownerID, memberID int64) (*domain.Member, error) {
			return &domain.Member{ID: memberID, OwnerID: ownerID}, nil
		},
	}
	var gotTeamID *int64
	members.setMemberTeam = func(ctx context.Context, ownerID, memberID int64, teamID *int64) error {
		gotTeamID = teamID
		return nil
	}
	teams := &fakeTeamRepo{
		getTeam: func(ctx context.Context, ownerID, teamID int64) (*domain.Team, error) {
			return &domain.Team{ID: teamID, OwnerID: ownerID}, nil
		},
	}
	svc := NewTeamService(teams, members, testPolicy)

	err := svc.AddMember(context.Background(), 1, 5, 9)

	require.NoError(t, err)
	require.NotNil(t, gotTeamID)
	assert.Equal(t, int64(5), *gotTeamID)
}

func TestAddMember_AlreadyInTeam(t *testing.T) {
	teamID := int64(5)
	members := &fakeMemberRepo{
		getMember: func(ctx context.Context, ownerID, memberID int64) (*domain.Member, error) {
			return &domain.Member{ID: memberID, OwnerID: ownerID, TeamID: &teamID}, nil
		},
	}
	teams := &fakeTeamRepo{
		getTeam: func(ctx context.Context, ownerID, tid int64) (*domain.Team, error) {
			return &domain.Team{ID: tid, OwnerID: ownerID}, nil
		},
	}
	svc := NewTeamService(teams, members, testPolicy)

	err := svc.AddMember(context.Background(), 1, teamID, 9)

	var domainErr *errs.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Member already in the team", domainErr.Message)
	assert.Equal(t, http.StatusBadRequest, domainErr.Status)
	assert.Equal(t, 0, members.setTeamCalls)
}

func TestAddMember_UnknownTeam(t *testing.T) {
	teams := &fakeTeamRepo{
		getTeam: func(ctx context.Context, ownerID, teamID int64) (*domain.Team, error) {
			return nil, errs.ErrNotFound
		},
	}
	svc := NewTeamService(teams, &fakeMemberRepo{}, testPolicy)

	err := svc.AddMember(context.Background(), 1, 5, 9)

	var domainErr *errs.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Invalid team or member", domainErr.Message)
	assert.Equal(t, http.StatusBadRequest, domainErr.Status)
}

func TestAddMember_UnknownMember(t *testing.T) {
	teams := &fakeTeamRepo{
		getTeam: func(ctx context.Context, ownerID, teamID int64) (*domain.Team, error) {
			return &domain.Team{ID: teamID, OwnerID: ownerID}, nil
		},
	}
	members := &fakeMemberRepo{
		getMember: func(ctx context.Context, ownerID, memberID int64) (*domain.Member, error) {
			return nil, errs.ErrNotFound
		},
	}
	svc := NewTeamService(teams, members, testPolicy)

	err := svc.AddMember(context.Background(), 1, 5, 9)

	var domainErr *errs.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Invalid team or member", domainErr.Message)
}

func TestRemoveMember_Success(t *testing.T) {
	teamID := int64(5)
	members := &fakeMemberRepo{
		getMember: func(ctx context.Context, ownerID, memberID int64) (*domain.Member, error) {
			return &domain.Member{ID: memberID, OwnerID: ownerID, TeamID: &teamID}, nil
		},
	}
	var gotTeamID *int64 = &teamID
	members.setMemberTeam = func(ctx context.Context, ownerID, memberID int64, tid *int64) error {
		gotTeamID = tid
		return nil
	}
	teams := &fakeTeamRepo{
		getTeam: func(ctx context.Context, ownerID, tid int64) (*domain.Team, error) {
			return &domain.Team{ID: tid, OwnerID: ownerID}, nil
		},
	}
	svc := NewTeamService(teams, members, testPolicy)

	err := svc.RemoveMember(context.Background(), 1, teamID, 9)

	require.NoError(t, err)
	assert.Nil(t, gotTeamID, "removal must clear the assignment")
}

func TestRemoveMember_NotInTeam(t *testing.T) {
	members := &fakeMemberRepo{
		getMember: func(ctx context.Context, ownerID, memberID int64) (*domain.Member, error) {
			return &domain.Member{ID: memberID, OwnerID: ownerID}, nil
		},
	}
	teams := &fakeTeamRepo{
		getTeam: func(ctx context.Context, ownerID, teamID int64) (*domain.Team, error) {
			return &domain.Team{ID: teamID, OwnerID: ownerID}, nil
		},
	}
	svc := NewTeamService(teams, members, testPolicy)

	err := svc.RemoveMember(context.Background(), 1, 5, 9)

	var domainErr *errs.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Member is not in the team", domainErr.Message)
	assert.Equal(t, http.StatusBadRequest, domainErr.Status)
	assert.Equal(t, 0, members.setTeamCalls)
}

func TestRemoveMember_InAnotherTeam(t *testing.T) {
	otherTeam := int64(8)
	members := &fakeMemberRepo{
		getMember: func(ctx context.Context, ownerID, memberID int64) (*domain.Member, error) {
			return &domain.Member{ID: memberID, OwnerID: ownerID, TeamID: &otherTeam}, nil
		},
	}
	teams := &fakeTeamRepo{
		getTeam: func(ctx context.Context, ownerID, teamID int64) (*domain.Team, error) {
			return &domain.Team{ID: teamID, OwnerID: ownerID}, nil
		},
	}
	svc := NewTeamService(teams, members, testPolicy)

	err := svc.RemoveMember(context.Background(), 1, 5, 9)

	var domainErr *errs.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Member is not in the team", domainErr.Message)
}

func TestDeleteTeam_PassesThroughNotFound(t *testing.T) {
	teams := &fakeTeamRepo{
		deleteTeam: func(ctx context.Context, ownerID, teamID int64) error {
			return errs.ErrNotFound
		},
	}
	svc := NewTeamService(teams, &fakeMemberRepo{}, testPolicy)

	err := svc.DeleteTeam(context.Background(), 1, 5)

	assert.True(t, errors.Is(err, errs.ErrNotFound))
}
