package repository

import (
	"context"

	"github.com/student-records-api/internal/database"
	"github.com/student-records-api/internal/models"
)

// UserRepository defines the interface for account data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, upd *models.UserUpdate) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// StudentRepository defines the interface for student profile operations.
type StudentRepository interface {
	GetAll(ctx context.Context) ([]*models.Student, error)
	Create(ctx context.Context, s *models.Student) (int64, error)
	Update(ctx context.Context, id int64, s *models.Student) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
	DistributionBySection(ctx context.Context) ([]models.Distribution, error)
	DistributionByCourse(ctx context.Context) ([]models.Distribution, error)
}

// SettingsRepository defines the interface for company settings storage.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, s *models.Settings, updateLogo bool) error
}

// ImportRepository performs the per-row inserts of the import pipeline.
// Implementations must only ever receive identifiers that already passed
// the tabular allow-list.
type ImportRepository interface {
	InsertRow(ctx context.Context, table string, columns []string, values []interface{}) error
}

// Repositories holds all repository interfaces.
type Repositories struct {
	User     UserRepository
	Student  StudentRepository
	Settings SettingsRepository
	Import   ImportRepository
}

// New creates all repositories with the given database connection.
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepo(db),
		Student:  NewStudentRepo(db),
		Settings: NewSettingsRepo(db),
		Import:   NewImportRepo(db),
	}
}
