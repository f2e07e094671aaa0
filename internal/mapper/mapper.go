package mapper

import (
	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
	"github.com/Ihor-Prokopenko/teams-app/internal/dto"
)

func MapDomainTeamToDTO(team *domain.Team) dto.TeamDTO {
	members := make([]dto.TeamMemberDTO, len(team.Members))
	for i, member := range team.Members {
		members[i] = dto.TeamMemberDTO{
			ID:       member.ID,
			Email:    member.Email,
			FullName: member.FullName(),
		}
	}

	return dto.TeamDTO{
		ID:           team.ID,
		Name:         team.Name,
		MembersCount: team.MembersCount(),
		Members:      members,
	}
}

func MapDomainTeamsToDTO(teams []domain.Team) []dto.TeamDTO {
	result := make([]dto.TeamDTO, len(teams))
	for i, team := range teams {
		result[i] = MapDomainTeamToDTO(&team)
	}
	return result
}

func MapDomainMemberToDTO(member *domain.Member) dto.MemberDTO {
	var team *dto.MemberTeamDTO
	if member.Team != nil {
		team = &dto.MemberTeamDTO{
			ID:   member.Team.ID,
			Name: member.Team.Name,
		}
	}

	return dto.MemberDTO{
		ID:       member.ID,
		Email:    member.Email,
		FullName: member.FullName(),
		Team:     team,
		UserID:   member.OwnerID,
	}
}

func MapDomainMembersToDTO(members []domain.Member) []dto.MemberDTO {
	result := make([]dto.MemberDTO, len(members))
	for i, member := range members {
		result[i] = MapDomainMemberToDTO(&member)
	}
	return result
}

func MapDomainUserToDTO(user *domain.User) dto.UserDTO {
	return dto.UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName(),
	}
}
