// test/mock/cache.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/MichaelGetu-git/Security-Project/model"
	"github.com/MichaelGetu-git/Security-Project/util"
)

var _ util.Cache = &MockCache{}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockCache) SetUser(ctx context.Context, user model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockCache) DeleteUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockCache) Lock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, name, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Unlock(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockCache) Allow(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, per)
	return args.Bool(0), args.Error(1)
}
