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

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

func (r *MemberRepository) CreateMember(ctx context.Context, member *domain.Member) error {
	query := `
        INSERT INTO members (email, first_name, last_name, team_id, owner_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	err := r.pool.QueryRow(ctx, query,
		member.Email,
		member.FirstName,
		member.LastName,
		member.TeamID,
		member.OwnerID,
	).Scan(&member.ID, &member.CreatedAt)
	if err != nil {
		if errs.IsUniqueViolation(err) {
			return errs.FieldError("email", fmt.Sprintf("Member with email %q already exists.", member.Email))
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *MemberRepository) EmailExists(ctx context.Context, ownerID int64, email string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE owner_id = $1 AND lower(email) = lower($2) AND id <> $3)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, ownerID, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check member email existence: %w", err)
	}
	return exists, nil
}

// GetMember loads a member with its team reference, scoped to the owner.
func (r *MemberRepository) GetMember(ctx context.Context, ownerID, memberID int64) (*domain.Member, error) {
	query := `
        SELECT m.id, m.email, m.first_name, m.last_name, m.team_id, m.owner_id, m.created_at, t.id, t.name
        FROM members m
        LEFT JOIN teams t ON t.id = m.team_id
        WHERE m.id = $1 AND m.owner_id = $2
    `
	var member domain.Member
	var teamID *int64
	var teamName *string
	err := r.pool.QueryRow(ctx, query, memberID, ownerID).Scan(
		&member.ID,
		&member.Email,
		&member.FirstName,
		&member.LastName,
		&member.TeamID,
		&member.OwnerID,
		&member.CreatedAt,
		&teamID,
		&teamName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if teamID != nil && teamName != nil {
		member.Team = &domain.TeamRef{ID: *teamID, Name: *teamName}
	}
	return &member, nil
}

func (r *MemberRepository) ListMembers(ctx context.Context, ownerID int64) ([]domain.Member, error) {
	query := `
        SELECT m.id, m.email, m.first_name, m.last_name, m.team_id, m.owner_id, m.created_at, t.id, t.name
        FROM members m
        LEFT JOIN teams t ON t.id = m.team_id
        WHERE m.owner_id = $1
        ORDER BY m.email
    `
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var member domain.Member
		var teamID *int64
		var teamName *string
		if err := rows.Scan(
			&member.ID,
			&member.Email,
			&member.FirstName,
			&member.LastName,
			&member.TeamID,
			&member.OwnerID,
			&member.CreatedAt,
			&teamID,
			&teamName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		if teamID != nil && teamName != nil {
			member.Team = &domain.TeamRef{ID: *teamID, Name: *teamName}
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read members: %w", err)
	}
	return members, nil
}

func (r *MemberRepository) UpdateMember(ctx context.Context, member *domain.Member) error {
	query := `
        UPDATE members
        SET email = $3, first_name = $4, last_name = $5, updated_at = NOW()
        WHERE id = $1 AND owner_id = $2
    `
	tag, err := r.pool.Exec(ctx, query, member.ID, member.OwnerID, member.Email, member.FirstName, member.LastName)
	if err != nil {
		if errs.IsUniqueViolation(err) {
			return errs.FieldError("email", fmt.Sprintf("Member with email %q already exists.", member.Email))
		}
		return fmt.Errorf("failed to update member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *MemberRepository) DeleteMember(ctx context.Context, ownerID, memberID int64) error {
	query := `DELETE FROM members WHERE id = $1 AND owner_id = $2`
	tag, err := r.pool.Exec(ctx, query, memberID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// SetMemberTeam assigns or detaches (nil teamID) a member's team.
func (r *MemberRepository) SetMemberTeam(ctx context.Context, ownerID, memberID int64, teamID *int64) error {
	query := `UPDATE members SET team_id = $3, updated_at = NOW() WHERE id = $1 AND owner_id = $2`
	tag, err := r.pool.Exec(ctx, query, memberID, ownerID, teamID)
	if err != nil {
		return fmt.Errorf("failed to set member team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
