package model

import "time"

// Role is a named permission set. A permission of "*" grants everything.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Permissions []string  `json:"permissions" validate:"dive,required"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// User is the requesting subject of an access decision. It is an immutable
// snapshot for the duration of one decision.
type User struct {
	ID            int64         `json:"id"`
	Username      string        `json:"username"`
	Email         string        `json:"email,omitempty"`
	SecurityLevel SecurityLevel `json:"security_level"`
	Roles         []Role        `json:"roles"`
	Department    string        `json:"department,omitempty"`
}

// RoleNames returns the names of the user's roles, for logging and auditing.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
