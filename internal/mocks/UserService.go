package mocks

import (
	context "context"

	model "github.com/dtroode/userdesk-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// UserService is a mock type for the UserService type
type UserService struct {
	mock.Mock
}

// ListUsers provides a mock function with given fields: ctx
func (_m *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	ret := _m.Called(ctx)

	var r0 []model.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.User)
	}

	return r0, ret.Error(1)
}

// CreateUser provides a mock function with given fields: ctx, in
func (_m *UserService) CreateUser(ctx context.Context, in model.UserInput) (model.User, error) {
	ret := _m.Called(ctx, in)
	return ret.Get(0).(model.User), ret.Error(1)
}

// GetUser provides a mock function with given fields: ctx, storeID
func (_m *UserService) GetUser(ctx context.Context, storeID string) (model.User, error) {
	ret := _m.Called(ctx, storeID)
	return ret.Get(0).(model.User), ret.Error(1)
}

// UpdateUser provides a mock function with given fields: ctx, storeID, profile
func (_m *UserService) UpdateUser(ctx context.Context, storeID string, profile model.Profile) (model.User, error) {
	ret := _m.Called(ctx, storeID, profile)
	return ret.Get(0).(model.User), ret.Error(1)
}

// DeleteUser provides a mock function with given fields: ctx, storeID
func (_m *UserService) DeleteUser(ctx context.Context, storeID string) error {
	ret := _m.Called(ctx, storeID)
	return ret.Error(0)
}

// NewUserService creates a new instance of UserService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUserService(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserService {
	m := &UserService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
