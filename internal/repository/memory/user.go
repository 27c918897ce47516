package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/dtroode/userdesk-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository keeps user records in process memory.
// Records never expire.
type UserRepository struct {
	// mu makes check-and-write sequences atomic.
	mu sync.Mutex
	c  *gocache.Cache
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		c: gocache.New(gocache.NoExpiration, 0),
	}
}

func parseID(storeID string) (string, error) {
	id, err := uuid.Parse(storeID)
	if err != nil {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidStoreID, storeID)
	}
	return id.String(), nil
}

func (r *UserRepository) Insert(_ context.Context, user model.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	user.StoreID = id
	if err := r.c.Add(id, clone(user), gocache.NoExpiration); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

func (r *UserRepository) FindOne(_ context.Context, storeID string) (model.User, error) {
	id, err := parseID(storeID)
	if err != nil {
		return model.User{}, err
	}

	v, ok := r.c.Get(id)
	if !ok {
		return model.User{}, model.ErrNotFound
	}

	return clone(v.(model.User)), nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]model.User, error) {
	items := r.c.Items()

	users := make([]model.User, 0, len(items))
	for _, item := range items {
		users = append(users, clone(item.Object.(model.User)))
	}

	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].StoreID < users[j].StoreID
	})

	return users, nil
}

func (r *UserRepository) Replace(_ context.Context, storeID string, profile model.Profile) (bool, error) {
	id, err := parseID(storeID)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.c.Get(id)
	if !ok {
		return false, nil
	}

	user := v.(model.User)
	user.Profile = profile
	if err := r.c.Replace(id, clone(user), gocache.NoExpiration); err != nil {
		return false, fmt.Errorf("failed to replace user: %w", err)
	}

	return true, nil
}

func (r *UserRepository) Remove(_ context.Context, storeID string) (bool, error) {
	id, err := parseID(storeID)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.c.Get(id); !ok {
		return false, nil
	}
	r.c.Delete(id)

	return true, nil
}

func (r *UserRepository) Ping(_ context.Context) error {
	return nil
}

func (r *UserRepository) Close() error {
	r.c.Flush()
	return nil
}

func clone(u model.User) model.User {
	u.Label = bytes.Clone(u.Label)
	return u
}
