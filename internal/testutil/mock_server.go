//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"
)

// MockGateway 实现 types.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) IsMaintenanceMode() bool {
	return m.Called().Bool(0)
}
