package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// ContextManager is a mock type for the ContextManager type
type ContextManager struct {
	mock.Mock
}

// SetCallerToContext provides a mock function with given fields: ctx, subject
func (_m *ContextManager) SetCallerToContext(ctx context.Context, subject string) context.Context {
	ret := _m.Called(ctx, subject)

	var r0 context.Context
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(context.Context)
	}

	return r0
}

// GetCallerFromContext provides a mock function with given fields: ctx
func (_m *ContextManager) GetCallerFromContext(ctx context.Context) (string, bool) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Bool(1)
}

// NewContextManager creates a new instance of ContextManager. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewContextManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContextManager {
	m := &ContextManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
