package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/userdesk-server/internal/api/resource"
	"github.com/dtroode/userdesk-server/internal/api/rest/middleware"
	"github.com/dtroode/userdesk-server/internal/mocks"
	"github.com/dtroode/userdesk-server/internal/model"
	"github.com/dtroode/userdesk-server/internal/testutil"
)

func newHandler(t *testing.T) (http.Handler, *mocks.UserService) {
	t.Helper()

	svc := mocks.NewUserService(t)
	users := resource.NewUsers(svc, testutil.MakeNoopLogger())
	rt := New(users, 64, middleware.Options{Logger: testutil.MakeNoopLogger()})

	return rt.Handler(), svc
}

func TestRouter_Name(t *testing.T) {
	assert.Equal(t, "router", New(nil, 0, middleware.Options{}).Name())
}

func TestRouter_Dispatch(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setup      func(svc *mocks.UserService)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/api/users",
			setup: func(svc *mocks.UserService) {
				svc.On("ListUsers", mock.Anything).Return([]model.User{}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"data":[]}`,
		},
		{
			name:   "get passes the id through",
			method: http.MethodGet,
			path:   "/api/users/abc/",
			setup: func(svc *mocks.UserService) {
				svc.On("GetUser", mock.Anything, "abc").Return(model.User{}, model.ErrNotFound)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":false,"message":"User not found"}`,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/api/users/abc",
			setup: func(svc *mocks.UserService) {
				svc.On("DeleteUser", mock.Anything, "abc").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"message":"User deleted successfully"}`,
		},
		{
			name:       "body over the limit never reaches the service",
			method:     http.MethodPut,
			path:       "/api/users/abc",
			body:       `{"summary":"` + strings.Repeat("x", 64) + `"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Invalid JSON or Database error"}`,
		},
		{
			name:       "empty id",
			method:     http.MethodGet,
			path:       "/api/users//",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"success":false,"message":"Route not found"}`,
		},
		{
			name:       "method not allowed",
			method:     http.MethodPatch,
			path:       "/api/users",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"success":false,"message":"Route not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newHandler(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
