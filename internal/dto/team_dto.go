package dto

type TeamDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	MembersCount int             `json:"members_count"`
	Members      []TeamMemberDTO `json:"members"`
}

type TeamMemberDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
