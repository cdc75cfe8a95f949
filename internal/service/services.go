package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/student-records-api/internal/auth"
	"github.com/student-records-api/internal/config"
	"github.com/student-records-api/internal/models"
	"github.com/student-records-api/internal/repository"
	"github.com/student-records-api/internal/tabular"
)

// Sentinel errors translated to HTTP statuses at the request boundary.
var (
	ErrValidation         = errors.New("missing required fields")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmptyDataset       = errors.New("no data in uploaded file")
)

// ImportError reports the 1-based row at which an import aborted.
type ImportError struct {
	Row int
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import failed at row %d: %v", e.Row, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// LoginResult is returned to the client on successful login. The shape
// mirrors the token claims so the client can render the profile without
// decoding the token.
type LoginResult struct {
	Token     string      `json:"token"`
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	FirstName string      `json:"f_name"`
	LastName  string      `json:"l_name"`
}

// ImportSummary reports the outcome of a completed import.
type ImportSummary struct {
	Table          string `json:"table"`
	Inserted       int    `json:"inserted"`
	MismatchedRows int    `json:"mismatched_rows,omitempty"`
}

// AuthService defines the interface for registration and login.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (int64, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// ImportService defines the interface for the tabular import pipeline.
type ImportService interface {
	Import(ctx context.Context, filePath, table string) (*ImportSummary, error)
}

// Services holds all service interfaces.
type Services struct {
	Auth   AuthService
	Import ImportService
}

// NewServices creates all services.
func NewServices(repos *repository.Repositories, issuer *auth.TokenIssuer, cfg *config.Config, log zerolog.Logger) *Services {
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	return &Services{
		Auth:   newAuthService(repos.User, hasher, issuer, log),
		Import: newImportService(repos.Import, tabular.NewRegistry(), log),
	}
}
