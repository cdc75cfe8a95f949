package mocks

import (
	"context"

	"github.com/student-records-api/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService
type MockAuthService struct {
	RegisterFunc func(ctx context.Context, email, username, password string) (int64, error)
	LoginFunc    func(ctx context.Context, email, password string) (*service.LoginResult, error)
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, email, username, password string) (int64, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, username, password)
	}
	return 1, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &service.LoginResult{Token: "test-token", Email: email}, nil
}

// MockImportService is a mock implementation of service.ImportService
type MockImportService struct {
	ImportFunc  func(ctx context.Context, filePath, table string) (*service.ImportSummary, error)
	LastFile    string
	LastTable   string
	ImportCalls int
}

func NewMockImportService() *MockImportService {
	return &MockImportService{}
}

func (m *MockImportService) Import(ctx context.Context, filePath, table string) (*service.ImportSummary, error) {
	m.ImportCalls++
	m.LastFile = filePath
	m.LastTable = table
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, filePath, table)
	}
	return &service.ImportSummary{Table: table, Inserted: 0}, nil
}
