package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
)

type TeamRepository struct {
	pool *pgxpool.Pool
}

func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team *domain.Team) error {
	query := `
        INSERT INTO teams (name, owner_id)
        VALUES ($1, $2)
        RETURNING id, created_at
    `
	err := r.pool.QueryRow(ctx, query, team.Name, team.OwnerID).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		if errs.IsUniqueViolation(err) {
			return errs.FieldError("name", fmt.Sprintf("Team with name %q already exists.", team.Name))
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *TeamRepository) NameExists(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM teams WHERE owner_id = $1 AND name = $2 AND id <> $3)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, ownerID, name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check team name existence: %w", err)
	}
	return exists, nil
}

// GetTeam loads a team with its members, scoped to the owner.
func (r *TeamRepository) GetTeam(ctx context.Context, ownerID, teamID int64) (*domain.Team, error) {
	query := `SELECT id, name, owner_id, created_at FROM teams WHERE id = $1 AND owner_id = $2`
	var team domain.Team
	err := r.pool.QueryRow(ctx, query, teamID, ownerID).Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	members, err := r.teamMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	team.Members = members
	return &team, nil
}

func (r *TeamRepository) ListTeams(ctx context.Context, ownerID int64) ([]domain.Team, error) {
	query := `SELECT id, name, owner_id, created_at FROM teams WHERE owner_id = $1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read teams: %w", err)
	}

	for i := range teams {
		members, err := r.teamMembers(ctx, teams[i].ID)
		if err != nil {
			return nil, err
		}
		teams[i].Members = members
	}
	return teams, nil
}

func (r *TeamRepository) UpdateTeamName(ctx context.Context, ownerID, teamID int64, name string) error {
	query := `UPDATE teams SET name = $3, updated_at = NOW() WHERE id = $1 AND owner_id = $2`
	tag, err := r.pool.Exec(ctx, query, teamID, ownerID, name)
	if err != nil {
		if errs.IsUniqueViolation(err) {
			return errs.FieldError("name", fmt.Sprintf("Team with name %q already exists.", name))
		}
		return fmt.Errorf("failed to update team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DeleteTeam removes a team; dependent members are detached by the
// ON DELETE SET NULL constraint, never deleted.
func (r *TeamRepository) DeleteTeam(ctx context.Context, ownerID, teamID int64) error {
	query := `DELETE FROM teams WHERE id = $1 AND owner_id = $2`
	tag, err := r.pool.Exec(ctx, query, teamID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) teamMembers(ctx context.Context, teamID int64) ([]domain.Member, error) {
	query := `
        SELECT id, email, first_name, last_name, team_id, owner_id, created_at
        FROM members
        WHERE team_id = $1
        ORDER BY email
    `
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(
			&member.ID,
			&member.Email,
			&member.FirstName,
			&member.LastName,
			&member.TeamID,
			&member.OwnerID,
			&member.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team members: %w", err)
	}
	return members, nil
}
