package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cardapio-go/models"
	"cardapio-go/repository"
	"cardapio-go/utils"

	"github.com/google/uuid"
)

type IAuthService interface {
	Register(ctx context.Context, email, password string) (*models.Profile, error)
	Login(ctx context.Context, email, password string) (string, *models.Profile, error)
	AdminLogin(ctx context.Context, email, password string) (string, *models.Profile, error)
	CurrentRole(ctx context.Context, userID uuid.UUID) (models.Role, error)
}

type AuthService struct {
	repo   repository.IProfileRepository
	tokens *utils.TokenIssuer
}

func NewAuthService(repo repository.IProfileRepository, tokens *utils.TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*models.Profile, error) {
	profile := &models.Profile{Email: normalizeEmail(email), Role: models.RoleCustomer}
	if err := profile.HashPassword(password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	err := s.repo.Create(ctx, profile)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.Profile, error) {
	profile, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := profile.CheckPassword(password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(profile)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, profile, nil
}

// AdminLogin is Login for the back office. Valid credentials of a
// non-admin account are refused without issuing a token.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (string, *models.Profile, error) {
	token, profile, err := s.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if !profile.IsAdmin() {
		return "", nil, ErrNotAdmin
	}
	return token, profile, nil
}

// CurrentRole reads the role stored on the profile, which wins over the one
// carried by an issued token.
func (s *AuthService) CurrentRole(ctx context.Context, userID uuid.UUID) (models.Role, error) {
	profile, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}

// EnsureAdmin creates the administrator account, or promotes and resets an
// existing profile with that email.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (*models.Profile, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, errors.New("admin email and password are required")
	}

	profile, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		profile = &models.Profile{Email: email, Role: models.RoleAdmin}
		if err := profile.HashPassword(password); err != nil {
			return nil, err
		}
		return profile, s.repo.Create(ctx, profile)
	case err != nil:
		return nil, err
	}

	if profile.IsAdmin() && profile.CheckPassword(password) == nil {
		return profile, nil
	}
	profile.Role = models.RoleAdmin
	if err := profile.HashPassword(password); err != nil {
		return nil, err
	}
	return profile, s.repo.Save(ctx, profile)
}
