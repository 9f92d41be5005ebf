package models

import "time"

// UserProfile is the single profile record of a user, keyed by phone.
type UserProfile struct {
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	FullName  string    `json:"fullName,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfilePatch carries the profile fields to overwrite. Nil fields are left
// untouched.
type ProfilePatch struct {
	Name     *string `json:"name,omitempty"`
	FullName *string `json:"fullName,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// Apply merges the patch into p.
func (pp ProfilePatch) Apply(p *UserProfile) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.FullName != nil {
		p.FullName = *pp.FullName
	}
	if pp.Gender != nil {
		p.Gender = *pp.Gender
	}
	if pp.Email != nil {
		p.Email = *pp.Email
	}
}

// AuthSession marks the current user of the process. It is stored once,
// globally, and supplies the default user for every per-user lookup.
type AuthSession struct {
	Phone     string    `json:"phone"`
	Timestamp time.Time `json:"timestamp"`
}
