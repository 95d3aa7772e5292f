package domain

import "time"

type User struct {
	ID           int32  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	PhoneNumber  string `json:"phone_number"`
	// PreferredDuration seeds the dates for quick-rent. Empty means DAILY.
	PreferredDuration RentalDuration `json:"preferred_rental_duration,omitempty"`
	CreatedOn         time.Time      `json:"created_on"`
}

// Identity returns the caller identity for this user. A user row without
// a role resolves to Patron rather than failing.
func (u *User) Identity() Identity {
	role := u.Role
	if role == RoleAnonymous {
		role = RolePatron
	}
	return Identity{UserID: u.ID, Role: role}
}
