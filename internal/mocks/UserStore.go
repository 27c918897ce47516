package mocks

import (
	context "context"

	model "github.com/dtroode/userdesk-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// UserStore is a mock type for the UserStore type
type UserStore struct {
	mock.Mock
}

// Insert provides a mock function with given fields: ctx, user
func (_m *UserStore) Insert(ctx context.Context, user model.User) (string, error) {
	ret := _m.Called(ctx, user)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, model.User) string); ok {
		r0 = rf(ctx, user)
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0, ret.Error(1)
}

// FindOne provides a mock function with given fields: ctx, storeID
func (_m *UserStore) FindOne(ctx context.Context, storeID string) (model.User, error) {
	ret := _m.Called(ctx, storeID)

	var r0 model.User
	if rf, ok := ret.Get(0).(func(context.Context, string) model.User); ok {
		r0 = rf(ctx, storeID)
	} else {
		r0 = ret.Get(0).(model.User)
	}

	return r0, ret.Error(1)
}

// FindAll provides a mock function with given fields: ctx
func (_m *UserStore) FindAll(ctx context.Context) ([]model.User, error) {
	ret := _m.Called(ctx)

	var r0 []model.User
	if rf, ok := ret.Get(0).(func(context.Context) []model.User); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.User)
	}

	return r0, ret.Error(1)
}

// Replace provides a mock function with given fields: ctx, storeID, profile
func (_m *UserStore) Replace(ctx context.Context, storeID string, profile model.Profile) (bool, error) {
	ret := _m.Called(ctx, storeID, profile)

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, string, model.Profile) bool); ok {
		r0 = rf(ctx, storeID, profile)
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0, ret.Error(1)
}

// Remove provides a mock function with given fields: ctx, storeID
func (_m *UserStore) Remove(ctx context.Context, storeID string) (bool, error) {
	ret := _m.Called(ctx, storeID)

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, string) bool); ok {
		r0 = rf(ctx, storeID)
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0, ret.Error(1)
}

// Ping provides a mock function with given fields: ctx
func (_m *UserStore) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// Close provides a mock function with no fields
func (_m *UserStore) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}

// NewUserStore creates a new instance of UserStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUserStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserStore {
	m := &UserStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
