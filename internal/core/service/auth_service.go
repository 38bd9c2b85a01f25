package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
	"github.com/pizzadelivery/pizza-api/internal/core/ports"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

// AuthOptions carries the signup and login policy.
type AuthOptions struct {
	Defaults domain.UserDefaults
	// AllowRoleFlags lets signup requests set is_staff and is_active.
	AllowRoleFlags bool
	// EnforceActive rejects inactive users at login.
	EnforceActive bool
}

// AuthService implements signup, login and token exchange.
type AuthService struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenService
	opts      AuthOptions
	dummyHash string
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	opts AuthOptions,
	log zerolog.Logger,
) (*AuthService, error) {
	// Compared against when the username is unknown so both login failure
	// paths cost one hash comparison.
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		opts:      opts,
		dummyHash: dummy,
		log:       log,
	}, nil
}

// Register creates a user. Email uniqueness is checked before username.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	switch {
	case in.Username == "":
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	case in.Email == "":
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	case in.Password == "":
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	case len(in.Password) > maxPasswordBytes:
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, maxPasswordBytes)
	}

	if err := s.ensureFree(ctx, s.repo.FindByEmail, in.Email, domain.ErrEmailTaken); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, s.repo.FindByUsername, in.Username, domain.ErrUsernameTaken); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	flags := s.opts.Defaults
	if s.opts.AllowRoleFlags {
		if in.IsStaff != nil {
			flags.IsStaff = *in.IsStaff
		}
		if in.IsActive != nil {
			flags.IsActive = *in.IsActive
		}
	}

	now := time.Now().UTC()
	user, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		IsActive:     flags.IsActive,
		IsStaff:      flags.IsStaff,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Bool("is_staff", user.IsStaff).Msg("user registered")
	return user, nil
}

func (s *AuthService) ensureFree(
	ctx context.Context,
	find func(context.Context, string) (*domain.User, error),
	value string,
	taken error,
) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return err
	}
}

// Authenticate returns the same error for an unknown user and a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(s.dummyHash, password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	if s.opts.EnforceActive && !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	access, err := s.tokens.IssueAccess(user.Username)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user.Username)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.tokens.Refresh(ctx, refreshToken)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string, all bool) error {
	return s.tokens.Revoke(ctx, refreshToken, all)
}
