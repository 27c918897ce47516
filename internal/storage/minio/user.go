package minio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/userdesk-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository keeps one JSON object per record under <collection>/<id>.json.
//
// Object storage has no conditional writes here, so check-and-write
// sequences are serialised per process only. Two processes updating or
// deleting the same record may both report a match.
type UserRepository struct {
	mu     sync.Mutex
	client *Client
	prefix string
}

func NewUserRepository(client *Client, collection string) *UserRepository {
	return &UserRepository{
		client: client,
		prefix: collection + "/",
	}
}

func (r *UserRepository) key(id string) string {
	return r.prefix + id + ".json"
}

func parseID(storeID string) (string, error) {
	id, err := uuid.Parse(storeID)
	if err != nil {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidStoreID, storeID)
	}
	return id.String(), nil
}

func (r *UserRepository) Insert(ctx context.Context, user model.User) (string, error) {
	id := uuid.NewString()
	user.StoreID = ""

	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to encode user: %w", err)
	}

	if err := r.client.Put(ctx, r.key(id), data); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

func (r *UserRepository) FindOne(ctx context.Context, storeID string) (model.User, error) {
	id, err := parseID(storeID)
	if err != nil {
		return model.User{}, err
	}

	return r.load(ctx, id)
}

func (r *UserRepository) load(ctx context.Context, id string) (model.User, error) {
	data, err := r.client.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return model.User{}, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	user.StoreID = id

	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	keys, err := r.client.Keys(ctx, r.prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]model.User, 0, len(keys))
	for _, k := range keys {
		id := strings.TrimSuffix(strings.TrimPrefix(k, r.prefix), ".json")

		user, err := r.load(ctx, id)
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].StoreID < users[j].StoreID
	})

	return users, nil
}

func (r *UserRepository) Replace(ctx context.Context, storeID string, profile model.Profile) (bool, error) {
	id, err := parseID(storeID)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, err := r.load(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	user.Profile = profile
	user.StoreID = ""

	data, err := json.Marshal(user)
	if err != nil {
		return false, fmt.Errorf("failed to encode user: %w", err)
	}
	if err := r.client.Put(ctx, r.key(id), data); err != nil {
		return false, fmt.Errorf("failed to replace user: %w", err)
	}

	return true, nil
}

func (r *UserRepository) Remove(ctx context.Context, storeID string) (bool, error) {
	id, err := parseID(storeID)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ok, err := r.client.Exists(ctx, r.key(id))
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	if !ok {
		return false, nil
	}

	if err := r.client.Delete(ctx, r.key(id)); err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	return true, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// Close is a no-op, the minio client holds no persistent connection.
func (r *UserRepository) Close() error {
	return nil
}
