package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claims carried by every access token.
type Claims struct {
	EmployeeID int64
	GroupID    int64
	Role       string
}

type Service interface {
	GenerateAccessToken(claims Claims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	// RevokeToken blacklists the token's jti until the token would have expired anyway.
	RevokeToken(ctx context.Context, token string) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
	revoked                   RevocationStore
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, revoked RevocationStore) (Service, error) {
	expDuration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	if revoked == nil {
		revoked = NewMemoryRevocationStore()
	}
	return &JWTService{
		accessTokenExpirationTime: expDuration,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revoked:                   revoked,
		now:                       time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(c Claims) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]interface{}{
		"jti":         uuid.NewString(),
		"employee_id": c.EmployeeID,
		"group_id":    c.GroupID,
		"role":        c.Role,
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(ctx context.Context, tokenString string) error {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return fmt.Errorf("failed to decode token: %w", err)
	}
	if token.JwtID() == "" {
		return jwt.ErrInvalidJWT()
	}

	ttl := time.Until(token.Expiration())
	if ttl <= 0 {
		return nil
	}
	return j.revoked.Revoke(ctx, token.JwtID(), ttl)
}

func (j *JWTService) IsTokenRevoked(ctx context.Context, tokenString string) (bool, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return true, nil
	}
	return j.revoked.IsRevoked(ctx, token.JwtID())
}
