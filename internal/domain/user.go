package domain

import "time"

// Registration methods recorded on a user account.
const (
	RegistrationEmail  = "email"
	RegistrationGoogle = "google"
)

type User struct {
	ID                 int64     `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	RegistrationMethod string    `json:"registration_method"`
	IsAdmin            bool      `json:"is_admin"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FullName rejoins the stored name parts.
func (u *User) FullName() string {
	return JoinName(u.FirstName, u.LastName)
}

// SetFullName splits name into first/last parts on the last space.
func (u *User) SetFullName(name string) error {
	first, last, err := SplitFullName(name)
	if err != nil {
		return err
	}
	u.FirstName, u.LastName = first, last
	return nil
}
