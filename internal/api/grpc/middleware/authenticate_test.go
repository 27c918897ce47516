package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/userdesk-server/internal/auth"
	"github.com/dtroode/userdesk-server/internal/mocks"
	"github.com/dtroode/userdesk-server/internal/testutil"
	"github.com/dtroode/userdesk-server/internal/token"
)

func TestAuthenticate_AuthFunc(t *testing.T) {
	t.Parallel()

	tokens := token.NewJWT("secret", 0)
	valid, err := tokens.GenerateAccessToken("svc")
	require.NoError(t, err)

	manager := auth.NewManager()
	m := NewAuthenticate(auth.NewAuthenticator(tokens), manager, testutil.MakeNoopLogger())

	tests := []struct {
		name       string
		header     string
		wantCode   codes.Code
		wantCaller string
	}{
		{name: "missing authorization header", wantCode: codes.Unauthenticated},
		{name: "invalid token", header: "Bearer invalid", wantCode: codes.Unauthenticated},
		{name: "no scheme", header: valid, wantCode: codes.Unauthenticated},
		{name: "valid token", header: "Bearer " + valid, wantCode: codes.OK, wantCaller: "svc"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			if tt.header != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", tt.header))
			}

			got, err := m.AuthFunc(ctx)
			if tt.wantCode != codes.OK {
				st, ok := status.FromError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantCode, st.Code())
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			caller, ok := manager.GetCallerFromContext(got)
			assert.True(t, ok)
			assert.Equal(t, tt.wantCaller, caller)
		})
	}
}

func TestAuthenticate_UsesContextManager(t *testing.T) {
	t.Parallel()

	tokens := token.NewJWT("secret", 0)
	valid, err := tokens.GenerateAccessToken("svc")
	require.NoError(t, err)

	type key struct{}
	marked := context.WithValue(context.Background(), key{}, "marked")

	cm := mocks.NewContextManager(t)
	cm.On("SetCallerToContext", mock.Anything, "svc").Return(marked).Once()

	m := NewAuthenticate(auth.NewAuthenticator(tokens), cm, testutil.MakeNoopLogger())

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+valid))
	got, err := m.AuthFunc(ctx)
	require.NoError(t, err)
	assert.Equal(t, "marked", got.Value(key{}))
}
