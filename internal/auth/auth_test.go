package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/userdesk-server/internal/mocks"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager()

	_, ok := m.GetCallerFromContext(context.Background())
	assert.False(t, ok)

	ctx := m.SetCallerToContext(context.Background(), "svc")
	got, ok := m.GetCallerFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "svc", got)

	ctx = m.SetCallerToContext(context.Background(), "")
	_, ok = m.GetCallerFromContext(ctx)
	assert.False(t, ok)
}

func TestAuthenticator_Authenticate(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		parse   bool
		parsed  string
		parseEr error
		want    string
		wantErr error
	}{
		{name: "empty", header: "", wantErr: ErrMissingToken},
		{name: "wrong scheme", header: "Basic abc", wantErr: ErrMissingToken},
		{name: "no token", header: "Bearer  ", wantErr: ErrMissingToken},
		{name: "valid", header: "Bearer tok", parse: true, parsed: "svc", want: "svc"},
		{name: "lower case scheme", header: "bearer tok", parse: true, parsed: "svc", want: "svc"},
		{name: "invalid", header: "Bearer tok", parse: true, parseEr: errors.New("expired"), wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := mocks.NewTokenManager(t)
			if tt.parse {
				tm.On("ParseAccessToken", "tok").Return(tt.parsed, tt.parseEr)
			}

			got, err := NewAuthenticator(tm).Authenticate(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
