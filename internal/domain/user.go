package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleReader Role = "reader"
)

// UserProfile is the stored profile record for a signed-in identity.
// An identity with no profile record is treated as a non-admin reader.
type UserProfile struct {
	UserID    string    `db:"user_id" json:"userId"`
	Email     string    `db:"email" json:"email"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Identity is what the external auth provider vouches for.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// Session is the resolved application session, constructed once per
// request after role resolution and passed down explicitly.
type Session struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}
