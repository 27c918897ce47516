//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/userdesk-server/internal/model"
	repo "github.com/dtroode/userdesk-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "userdesk_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/userdesk_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	ur := repo.NewUserRepository(conn)
	t.Cleanup(func() { _ = ur.Close() })

	require.NoError(t, ur.Ping(ctx))

	u := model.User{
		Profile: model.Profile{
			Label:      json.RawMessage(`{"ext":7}`),
			Name:       "Ann",
			Email:      "a@x.com",
			Age:        model.AgeOf(30),
			Profession: "Eng",
		},
		GoogleID:  "g-1",
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	id, err := ur.Insert(ctx, u)
	require.NoError(t, err)

	got, err := ur.FindOne(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, got.StoreID)
	require.Equal(t, "Ann", got.Name)
	require.JSONEq(t, `{"ext":7}`, string(got.Label))
	require.True(t, u.CreatedAt.Equal(got.CreatedAt))

	all, err := ur.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	matched, err := ur.Replace(ctx, id, model.Profile{Name: "Bob", Age: model.NaN})
	require.NoError(t, err)
	require.True(t, matched)

	got, err = ur.FindOne(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Bob", got.Name)
	require.Empty(t, got.Label)
	require.True(t, got.Age.IsNaN())
	require.Equal(t, "g-1", got.GoogleID)

	deleted, err := ur.Remove(ctx, id)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = ur.FindOne(ctx, id)
	require.ErrorIs(t, err, model.ErrNotFound)

	matched, err = ur.Replace(ctx, id, model.Profile{Name: "Ghost"})
	require.NoError(t, err)
	require.False(t, matched)
}
