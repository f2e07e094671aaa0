package dto

type MemberDTO struct {
	ID       int64          `json:"id"`
	Email    string         `json:"email"`
	FullName string         `json:"full_name"`
	Team     *MemberTeamDTO `json:"team"`
	UserID   int64          `json:"user"`
}

type MemberTeamDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
