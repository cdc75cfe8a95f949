package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/student-records-api/internal/auth"
	"github.com/student-records-api/internal/models"
	"github.com/student-records-api/internal/repository"
)

// authService is the concrete implementation of AuthService
type authService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	issuer *auth.TokenIssuer
	log    zerolog.Logger
}

// newAuthService creates a new AuthService
func newAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, issuer *auth.TokenIssuer, log zerolog.Logger) *authService {
	return &authService{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		log:    log.With().Str("service", "auth").Logger(),
	}
}

// Register creates a new account with the default least-privileged role.
func (s *authService) Register(ctx context.Context, email, username, password string) (int64, error) {
	if email == "" || username == "" || password == "" {
		return 0, ErrValidation
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicateEmail
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return 0, err
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         models.DefaultRole,
		Status:       "active",
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("user_id", id).Str("role", string(user.Role)).Msg("User registered")
	return id, nil
}

// Login verifies credentials and issues a token. The unknown-email and
// wrong-password paths return the same error and both pay one bcrypt
// comparison, so callers cannot enumerate accounts.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.hasher.VerifyDummy(password)
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("User logged in")
	return &LoginResult{
		Token:     token,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}
