package service

import (
	"context"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	DeleteUser(ctx context.Context, id int64) error
}

type TeamRepository interface {
	CreateTeam(ctx context.Context, team *domain.Team) error
	NameExists(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error)
	GetTeam(ctx context.Context, ownerID, teamID int64) (*domain.Team, error)
	ListTeams(ctx context.Context, ownerID int64) ([]domain.Team, error)
	UpdateTeamName(ctx context.Context, ownerID, teamID int64, name string) error
	DeleteTeam(ctx context.Context, ownerID, teamID int64) error
}

type MemberRepository interface {
	CreateMember(ctx context.Context, member *domain.Member) error
	EmailExists(ctx context.Context, ownerID int64, email string, excludeID int64) (bool, error)
	GetMember(ctx context.Context, ownerID, memberID int64) (*domain.Member, error)
	ListMembers(ctx context.Context, ownerID int64) ([]domain.Member, error)
	UpdateMember(ctx context.Context, member *domain.Member) error
	DeleteMember(ctx context.Context, ownerID, memberID int64) error
	SetMemberTeam(ctx context.Context, ownerID, memberID int64, teamID *int64) error
}
