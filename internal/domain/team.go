package domain

import "time"

type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	Members   []Member  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// MembersCount is derived from the loaded members, never stored.
func (t *Team) MembersCount() int {
	return len(t.Members)
}
