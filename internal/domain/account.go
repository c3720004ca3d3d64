package domain

import "time"

const (
	RoleScout  = "scout"
	RoleLeader = "leader"
)

// Account is the identity-provider record backing a login. It is owned by
// the provider; this service only mirrors the fields it needs.
type Account struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	EmailConfirmedAt *time.Time      `json:"email_confirmed_at,omitempty"`
	UserMetadata     AccountMetadata `json:"user_metadata"`
	CreatedAt        time.Time       `json:"created_at"`
	LastSignInAt     *time.Time      `json:"last_sign_in_at,omitempty"`
}

type AccountMetadata struct {
	UserRole string `json:"userrole,omitempty"`
	Name     string `json:"name,omitempty"`
	Rank     string `json:"rank,omitempty"`
	Crew     string `json:"crew,omitempty"`
}

// Session is what the identity provider returns from a password grant.
type Session struct {
	AccessToken  string  `json:"access_token"`
	TokenType    string  `json:"token_type"`
	ExpiresIn    int     `json:"expires_in"`
	RefreshToken string  `json:"refresh_token"`
	User         Account `json:"user"`
}

// RoleAssignment maps an account to exactly one role, "scout" or "leader".
type RoleAssignment struct {
	ID        uint      `json:"id"`
	AccountID string    `json:"user_id"`
	Role      string    `json:"userrole"`
	CreatedAt time.Time `json:"created_at"`
}
