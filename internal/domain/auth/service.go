package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string) error
	// Me returns the profile of the employee behind the token in ctx.
	Me(ctx context.Context) (UserProfile, error)
}
