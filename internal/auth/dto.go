package auth

import "github.com/coauto/coauto-backend/pkg/identity"

// SignUpInput is the validated payload for account registration.
type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Lastname string
	IDRole   int64
	IDStatus int64
	ImageURL *string
}

// SignUpResult reports the registered account.
type SignUpResult struct {
	ID        int64  `json:"id"`
	Sub       string `json:"sub"`
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed"`
}

// TokensDTO is the credential triple issued on login.
type TokensDTO = identity.Tokens

// CurrentUserDTO is the directory's view of the authenticated account.
type CurrentUserDTO struct {
	Username   string            `json:"username"`
	Attributes map[string]string `json:"attributes"`
	Groups     []string          `json:"groups"`
}
