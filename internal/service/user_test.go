package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/userdesk-server/internal/mocks"
	"github.com/dtroode/userdesk-server/internal/model"
	"github.com/dtroode/userdesk-server/internal/testutil"
)

func newTestUser(t *testing.T, timeout time.Duration) (*User, *mocks.UserStore) {
	t.Helper()

	store := mocks.NewUserStore(t)
	s := NewUser(store, testutil.MakeNoopLogger(), timeout)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	return s, store
}

func TestUser_ListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		s, store := newTestUser(t, 0)
		store.On("FindAll", ctx).Return([]model.User{{StoreID: "a"}}, nil)

		users, err := s.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("store error", func(t *testing.T) {
		s, store := newTestUser(t, 0)
		store.On("FindAll", ctx).Return(nil, errors.New("down"))

		_, err := s.ListUsers(ctx)
		assert.ErrorContains(t, err, "failed to list users")
	})
}

func TestUser_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns creation time", func(t *testing.T) {
		s, store := newTestUser(t, 0)
		in := model.UserInput{Profile: model.Profile{Name: "Ann", Age: model.AgeOf(30)}}

		store.On("Insert", ctx, mock.MatchedBy(func(u model.User) bool {
			return u.Name == "Ann" && u.CreatedAt.Equal(s.now()) && u.StoreID == ""
		})).Return("id-1", nil)

		user, err := s.CreateUser(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "id-1", user.StoreID)
		assert.True(t, s.now().Equal(user.CreatedAt))
	})

	t.Run("keeps supplied creation time", func(t *testing.T) {
		s, store := newTestUser(t, 0)
		supplied := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

		store.On("Insert", ctx, mock.MatchedBy(func(u model.User) bool {
			return u.CreatedAt.Equal(supplied)
		})).Return("id-2", nil)

		user, err := s.CreateUser(ctx, model.UserInput{CreatedAt: supplied})
		require.NoError(t, err)
		assert.Equal(t, supplied, user.CreatedAt)
	})

	t.Run("store error", func(t *testing.T) {
		s, store := newTestUser(t, 0)
		store.On("Insert", ctx, mock.Anything).Return("", errors.New("dup"))

		_, err := s.CreateUser(ctx, model.UserInput{})
		assert.ErrorContains(t, err, "failed to create user")
	})
}

func TestUser_GetUser(t *testing.T) {
	ctx := context.Background()
	s, store := newTestUser(t, 0)

	store.On("FindOne", ctx, "missing").Return(model.User{}, model.ErrNotFound)
	store.On("FindOne", ctx, "bad").Return(model.User{}, model.ErrInvalidStoreID)

	_, err := s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.GetUser(ctx, "bad")
	assert.ErrorIs(t, err, model.ErrInvalidStoreID)
}

func TestUser_UpdateUser(t *testing.T) {
	ctx := context.Background()
	profile := model.Profile{Label: json.RawMessage(`"7"`), Name: "Bob"}

	tests := []struct {
		name     string
		matched  bool
		storeErr error
		wantErr  error
	}{
		{name: "matched", matched: true},
		{name: "no match", matched: false, wantErr: model.ErrNotFound},
		{name: "store error", storeErr: errors.New("down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store := newTestUser(t, 0)
			store.On("Replace", ctx, "id-1", profile).Return(tt.matched, tt.storeErr)

			user, err := s.UpdateUser(ctx, "id-1", profile)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.storeErr != nil:
				assert.ErrorContains(t, err, "failed to update user")
				assert.NotErrorIs(t, err, model.ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, "id-1", user.StoreID)
				assert.Equal(t, profile, user.Profile)
				assert.True(t, user.CreatedAt.IsZero())
			}
		})
	}
}

func TestUser_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		s, store := newTestUser(t, 0)
		store.On("Remove", ctx, "id-1").Return(true, nil)
		assert.NoError(t, s.DeleteUser(ctx, "id-1"))
	})

	t.Run("nothing deleted", func(t *testing.T) {
		s, store := newTestUser(t, 0)
		store.On("Remove", ctx, "id-1").Return(false, nil)
		assert.ErrorIs(t, s.DeleteUser(ctx, "id-1"), model.ErrNotFound)
	})
}

func TestUser_Timeout(t *testing.T) {
	s, store := newTestUser(t, 50*time.Millisecond)

	store.On("Ping", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(nil)

	assert.NoError(t, s.Ping(context.Background()))
}

func TestUser_NoTimeout(t *testing.T) {
	s, store := newTestUser(t, 0)

	store.On("Ping", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return !ok
	})).Return(nil)

	assert.NoError(t, s.Ping(context.Background()))
}
