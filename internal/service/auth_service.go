package service

import (
	"context"
	"fmt"
	"log"

	"bugwise/internal/model"
	"bugwise/internal/repository"
	"bugwise/internal/utils"
)

// AuthService issues tokens and resolves callers from them.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	store   repository.Store
	jwtUtil *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(store repository.Store, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		store:   store,
		jwtUtil: jwtUtil,
	}
}

// Login checks the credentials and returns a signed access token.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.Username, user.Role)
	if err != nil {
		log.Printf("ERROR: failed to create access token for user %s (ID: %d): %v", user.Username, user.ID, err)
		return "", utils.ErrTokenCreation
	}
	return token, nil
}

// Authenticate validates the token and loads the user named by its subject.
// Every failure collapses to ErrUnauthorized so callers cannot tell a forged
// token from one whose user no longer exists.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtUtil.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.store.Users().FindByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("error resolving token subject: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// RequireRole passes user through when policy allows its role.
func RequireRole(user *model.User, policy model.Policy) (*model.User, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}
	if !policy.Allows(user.Role) {
		return nil, fmt.Errorf("%w: requires %s privileges", ErrForbidden, policy)
	}
	return user, nil
}
