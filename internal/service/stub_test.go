package service

import (
	"context"
	"errors"
	"time"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
	"github.com/Ihor-Prokopenko/teams-app/internal/retry"
)

// testPolicy keeps the production retry budget but drops the delay so
// retry paths run instantly.
var testPolicy = retry.Policy{
	MaxAttempts: 3,
	Delay:       time.Duration(0),
	Retryable:   errs.IsTransient,
}

var errUnexpectedCall = errors.New("unexpected repository call")

type fakeUserRepo struct {
	createUser     func(ctx context.Context, user *domain.User) error
	getUserByID    func(ctx context.Context, id int64) (*domain.User, error)
	getUserByEmail func(ctx context.Context, email string) (*domain.User, error)
	emailExists    func(ctx context.Context, email string, excludeID int64) (bool, error)
	updateUser     func(ctx context.Context, user *domain.User) error
	updatePassword func(ctx context.Context, id int64, passwordHash string) error
	deleteUser     func(ctx context.Context, id int64) error

	createCalls int
	deleteCalls int
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	f.createCalls++
	if f.createUser == nil {
		return errUnexpectedCall
	}
	return f.createUser(ctx, user)
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.getUserByID == nil {
		return nil, errUnexpectedCall
	}
	return f.getUserByID(ctx, id)
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getUserByEmail == nil {
		return nil, errUnexpectedCall
	}
	return f.getUserByEmail(ctx, email)
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	if f.emailExists == nil {
		return false, errUnexpectedCall
	}
	return f.emailExists(ctx, email, excludeID)
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user *domain.User) error {
	if f.updateUser == nil {
		return errUnexpectedCall
	}
	return f.updateUser(ctx, user)
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if f.updatePassword == nil {
		return errUnexpectedCall
	}
	return f.updatePassword(ctx, id, passwordHash)
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id int64) error {
	f.deleteCalls++
	if f.deleteUser == nil {
		return errUnexpectedCall
	}
	return f.deleteUser(ctx, id)
}

type fakeTeamRepo struct {
	createTeam     func(ctx context.Context, team *domain.Team) error
	nameExists     func(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error)
	getTeam        func(ctx context.Context, ownerID, teamID int64) (*domain.Team, error)
	listTeams      func(ctx context.Context, ownerID int64) ([]domain.Team, error)
	updateTeamName func(ctx context.Context, ownerID, teamID int64, name string) error
	deleteTeam     func(ctx context.Context, ownerID, teamID int64) error

	createCalls int
}

func (f *fakeTeamRepo) CreateTeam(ctx context.Context, team *domain.Team) error {
	f.createCalls++
	if f.createTeam == nil {
		return errUnexpectedCall
	}
	return f.createTeam(ctx, team)
}

func (f *fakeTeamRepo) NameExists(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	if f.nameExists == nil {
		return false, errUnexpectedCall
	}
	return f.nameExists(ctx, ownerID, name, excludeID)
}

func (f *fakeTeamRepo) GetTeam(ctx context.Context, ownerID, teamID int64) (*domain.Team, error) {
	if f.getTeam == nil {
		return nil, errUnexpectedCall
	}
	return f.getTeam(ctx, ownerID, teamID)
}

func (f *fakeTeamRepo) ListTeams(ctx context.Context, ownerID int64) ([]domain.Team, error) {
	if f.listTeams == nil {
		return nil, errUnexpectedCall
	}
	return f.listTeams(ctx, ownerID)
}

func (f *fakeTeamRepo) UpdateTeamName(ctx context.Context, ownerID, teamID int64, name string) error {
	if f.updateTeamName == nil {
		return errUnexpectedCall
	}
	return f.updateTeamName(ctx, ownerID, teamID, name)
}

func (f *fakeTeamRepo) DeleteTeam(ctx context.Context, ownerID, teamID int64) error {
	if f.deleteTeam == nil {
		return errUnexpectedCall
	}
	return f.deleteTeam(ctx, ownerID, teamID)
}

type fakeMemberRepo struct {
	createMember  func(ctx context.Context, member *domain.Member) error
	emailExists   func(ctx context.Context, ownerID int64, email string, excludeID int64) (bool, error)
	getMember     func(ctx context.Context, ownerID, memberID int64) (*domain.Member, error)
	listMembers   func(ctx context.Context, ownerID int64) ([]domain.Member, error)
	updateMember  func(ctx context.Context, member *domain.Member) error
	deleteMember  func(ctx context.Context, ownerID, memberID int64) error
	setMemberTeam func(ctx context.Context, ownerID, memberID int64, teamID *int64) error

	createCalls  int
	setTeamCalls int
}

func (f *fakeMemberRepo) CreateMember(ctx context.Context, member *domain.Member) error {
	f.createCalls++
	if f.createMember == nil {
		return errUnexpectedCall
	}
	return f.createMember(ctx, member)
}

func (f *fakeMemberRepo) EmailExists(ctx context.Context, ownerID int64, email string, excludeID int64) (bool, error) {
	if f.emailExists == nil {
		return false, errUnexpectedCall
	}
	return f.emailExists(ctx, ownerID, email, excludeID)
}

func (f *fakeMemberRepo) GetMember(ctx context.Context, ownerID, memberID int64) (*domain.Member, error) {
	if f.getMember == nil {
		return nil, errUnexpectedCall
	}
	return f.getMember(ctx, ownerID, memberID)
}

func (f *fakeMemberRepo) ListMembers(ctx context.Context, ownerID int64) ([]domain.Member, error) {
	if f.listMembers == nil {
		return nil, errUnexpectedCall
	}
	return f.listMembers(ctx, ownerID)
}

func (f *fakeMemberRepo) UpdateMember(ctx context.Context, member *domain.Member) error {
	if f.updateMember == nil {
		return errUnexpectedCall
	}
	return f.updateMember(ctx, member)
}

func (f *fakeMemberRepo) DeleteMember(ctx context.Context, ownerID, memberID int64) error {
	if f.deleteMember == nil {
		return errUnexpectedCall
	}
	return f.deleteMember(ctx, ownerID, memberID)
}

func (f *fakeMemberRepo) SetMemberTeam(ctx context.Context, ownerID, memberID int64, teamID *int64) error {
	f.setTeamCalls++
	if f.setMemberTeam == nil {
		return errUnexpectedCall
	}
	return f.setMemberTeam(ctx, ownerID, memberID, teamID)
}
