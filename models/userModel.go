package models

import "time"

const (
	RoleAdmin     = "ROLE_ADMIN"
	RoleModerator = "ROLE_MODERATOR"
	RoleUser      = "ROLE_USER"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" validate:"required,min=2,max=100"`
	Email        string    `json:"email" validate:"email,required"`
	Password     *string   `json:"password,omitempty" validate:"required,min=6"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasAnyRole reports whether the user holds at least one of the given roles.
func (u *User) HasAnyRole(roles ...string) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
