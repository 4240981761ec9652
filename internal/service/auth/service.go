package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/johangly/gpu/internal/domain/auth"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	e, err := a.EmployeeRepository.GetByUsername(ctx, loginReq.Username)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by username: %w", err)
	}

	if e.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*e.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	// checked after the password so the response does not reveal which accounts exist
	if !e.Active {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(jwt.Claims{
		EmployeeID: e.ID,
		GroupID:    e.GroupID,
		Role:       string(e.Role),
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("employee logged in", "employee_id", e.ID, "role", e.Role)

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		User:                 newUserProfile(e),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	if err := a.Service.RevokeToken(ctx, token); err != nil {
		return fmt.Errorf("%w: %w", auth.ErrInvalidToken, err)
	}
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.UserProfile, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return auth.UserProfile{}, fmt.Errorf("%w: %w", auth.ErrInvalidToken, err)
	}

	e, err := a.EmployeeRepository.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		return auth.UserProfile{}, err
	}
	if !e.Active {
		return auth.UserProfile{}, auth.ErrAccountInactive
	}
	return newUserProfile(e), nil
}

func newUserProfile(e employee.Employee) auth.UserProfile {
	profile := auth.UserProfile{
		ID:        e.ID,
		Cedula:    e.Cedula,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		GroupID:   e.GroupID,
		GroupName: e.GroupName,
		Role:      string(e.Role),
	}
	if e.Username != nil {
		profile.Username = *e.Username
	}
	return profile
}
