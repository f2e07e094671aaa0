package domain

import "time"

// TeamRef is the shallow team reference embedded in member reads.
type TeamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Member struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	TeamID    *int64    `json:"team_id"`
	Team      *TeamRef  `json:"team"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName rejoins the stored name parts.
func (m *Member) FullName() string {
	return JoinName(m.FirstName, m.LastName)
}

// SetFullName splits name into first/last parts on the last space.
func (m *Member) SetFullName(name string) error {
	first, last, err := SplitFullName(name)
	if err != nil {
		return err
	}
	m.FirstName, m.LastName = first, last
	return nil
}

// InTeam reports whether the member is currently assigned to teamID.
func (m *Member) InTeam(teamID int64) bool {
	return m.TeamID != nil && *m.TeamID == teamID
}
