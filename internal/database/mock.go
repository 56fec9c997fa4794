package database

import (
	"github.com/stretchr/testify/mock"

	"github.com/uroom/uroom-server/internal/types"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockSessionRepository) LoadSession() (Session, error) {
	args := m.Called()
	return args.Get(0).(Session), args.Error(1)
}
func (m *MockSessionRepository) SaveUser(user types.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *MockSessionRepository) DeleteUser() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockSessionRepository) SaveOnboarded(onboarded bool) error {
	args := m.Called(onboarded)
	return args.Error(0)
}
func (m *MockSessionRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
