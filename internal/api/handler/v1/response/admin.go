package response

import "github.com/tobscouts/troop-api/internal/domain"

type InviteUserResponse struct {
	Message string         `json:"message"`
	User    domain.Account `json:"user"`
}

type DeleteUserResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type ConfirmUserEmailResponse struct {
	Message string         `json:"message"`
	User    domain.Account `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SignInResponse struct {
	AccessToken  string         `json:"access_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int            `json:"expires_in"`
	RefreshToken string         `json:"refresh_token"`
	User         domain.Account `json:"user"`
}
