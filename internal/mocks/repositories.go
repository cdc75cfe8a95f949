package mocks

import (
	"context"
	"sync"

	"github.com/student-records-api/internal/models"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[int64]*models.User
	EmailToUser map[string]*models.User
	NextID      int64
	CreateError error
	QueryError  error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[int64]*models.User),
		EmailToUser: make(map[string]*models.User),
		NextID:      1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	user.ID = m.NextID
	m.NextID++
	m.Users[user.ID] = user
	m.EmailToUser[user.Email] = user
	return user.ID, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	return m.EmailToUser[email], nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryError != nil {
		return false, m.QueryError
	}
	_, exists := m.EmailToUser[email]
	return exists, nil
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	return users, nil
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, upd *models.UserUpdate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[id]
	if !ok {
		return false, nil
	}
	delete(m.EmailToUser, user.Email)
	user.Email = upd.Email
	user.Username = upd.Username
	user.FirstName = upd.FirstName
	user.LastName = upd.LastName
	user.Role = upd.Role
	user.MobileNumber = upd.MobileNumber
	user.Birthday = upd.Birthday
	user.Status = upd.Status
	m.EmailToUser[user.Email] = user
	return true, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.Users[id]; ok {
		delete(m.EmailToUser, user.Email)
		delete(m.Users, id)
	}
	return nil
}

// InsertedRow records one InsertRow call on MockImportRepository
type InsertedRow struct {
	Table   string
	Columns []string
	Values  []interface{}
}

// MockImportRepository is a mock implementation of repository.ImportRepository
type MockImportRepository struct {
	mu         sync.Mutex
	Rows       []InsertedRow
	FailAtRow  int // 1-based; 0 means never fail
	InsertErr  error
	InsertCall int
}

func NewMockImportRepository() *MockImportRepository {
	return &MockImportRepository{}
}

func (m *MockImportRepository) InsertRow(ctx context.Context, table string, columns []string, values []interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCall++
	if m.FailAtRow > 0 && m.InsertCall == m.FailAtRow {
		return m.InsertErr
	}
	m.Rows = append(m.Rows, InsertedRow{Table: table, Columns: columns, Values: values})
	return nil
}

// MockStudentRepository is a mock implementation of repository.StudentRepository
type MockStudentRepository struct {
	mu       sync.Mutex
	Students map[int64]*models.Student
	NextID   int64
	Sections []models.Distribution
	Courses  []models.Distribution
}

func NewMockStudentRepository() *MockStudentRepository {
	return &MockStudentRepository{
		Students: make(map[int64]*models.Student),
		NextID:   1,
	}
}

func (m *MockStudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	students := make([]*models.Student, 0, len(m.Students))
	for _, s := range m.Students {
		students = append(students, s)
	}
	return students, nil
}

func (m *MockStudentRepository) Create(ctx context.Context, s *models.Student) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.NextID
	m.NextID++
	m.Students[s.ID] = s
	return s.ID, nil
}

func (m *MockStudentRepository) Update(ctx context.Context, id int64, s *models.Student) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Students[id]; !ok {
		return false, nil
	}
	s.ID = id
	m.Students[id] = s
	return true, nil
}

func (m *MockStudentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Students[id]; !ok {
		return false, nil
	}
	delete(m.Students, id)
	return true, nil
}

func (m *MockStudentRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Students), nil
}

func (m *MockStudentRepository) DistributionBySection(ctx context.Context) ([]models.Distribution, error) {
	return m.Sections, nil
}

func (m *MockStudentRepository) DistributionByCourse(ctx context.Context) ([]models.Distribution, error) {
	return m.Courses, nil
}

// MockSettingsRepository is a mock implementation of repository.SettingsRepository
type MockSettingsRepository struct {
	mu       sync.Mutex
	Settings *models.Settings
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Settings, nil
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *models.Settings, updateLogo bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Settings != nil && !updateLogo {
		s.LogoURL = m.Settings.LogoURL
	}
	s.ID = 1
	m.Settings = s
	return nil
}
