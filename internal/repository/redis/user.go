package redis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	rdb "github.com/redis/go-redis/v9"

	"github.com/dtroode/userdesk-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// replaceScript overwrites the tracked fields only when the record exists.
// KEYS[1] is the record hash, ARGV holds field/value pairs.
var replaceScript = rdb.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HDEL', KEYS[1], 'id')
redis.call('HSET', KEYS[1], unpack(ARGV))
return 1
`)

// removeScript deletes the record hash and its index entry together.
var removeScript = rdb.NewScript(`
if redis.call('DEL', KEYS[1]) == 0 then
	return 0
end
redis.call('ZREM', KEYS[2], ARGV[1])
return 1
`)

// UserRepository stores each record as a hash of JSON encoded fields.
// A sorted set scored by creation time keeps listing order.
type UserRepository struct {
	client *rdb.Client
	prefix string
}

// Connect opens a client and checks the server is reachable. Keys are
// namespaced by collection.
func Connect(ctx context.Context, addr, password string, db int, collection string) (*UserRepository, error) {
	client := rdb.NewClient(&rdb.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	return NewUserRepository(client, collection), nil
}

func NewUserRepository(client *rdb.Client, collection string) *UserRepository {
	return &UserRepository{
		client: client,
		prefix: collection,
	}
}

func (r *UserRepository) recordKey(id string) string {
	return r.prefix + ":" + id
}

func (r *UserRepository) indexKey() string {
	return r.prefix + ":index"
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

	fields, err := encodeUser(user)
	if err != nil {
		return "", err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe rdb.Pipeliner) error {
		pipe.HSet(ctx, r.recordKey(id), fields...)
		pipe.ZAdd(ctx, r.indexKey(), rdb.Z{
			Score:  float64(user.CreatedAt.UnixMilli()),
			Member: id,
		})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

func (r *UserRepository) FindOne(ctx context.Context, storeID string) (model.User, error) {
	id, err := parseID(storeID)
	if err != nil {
		return model.User{}, err
	}

	fields, err := r.client.HGetAll(ctx, r.recordKey(id)).Result()
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	if len(fields) == 0 {
		return model.User{}, model.ErrNotFound
	}

	return decodeUser(id, fields)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]model.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	cmds := make([]*rdb.MapStringStringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe rdb.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, r.recordKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for i, cmd := range cmds {
		fields := cmd.Val()
		// removed between the two round trips
		if len(fields) == 0 {
			continue
		}

		user, err := decodeUser(ids[i], fields)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func (r *UserRepository) Replace(ctx context.Context, storeID string, profile model.Profile) (bool, error) {
	id, err := parseID(storeID)
	if err != nil {
		return false, err
	}

	fields, err := encodeProfile(profile)
	if err != nil {
		return false, err
	}

	n, err := replaceScript.Run(ctx, r.client, []string{r.recordKey(id)}, fields...).Int()
	if err != nil {
		return false, fmt.Errorf("failed to replace user: %w", err)
	}

	return n == 1, nil
}

func (r *UserRepository) Remove(ctx context.Context, storeID string) (bool, error) {
	id, err := parseID(storeID)
	if err != nil {
		return false, err
	}

	n, err := removeScript.Run(ctx, r.client, []string{r.recordKey(id), r.indexKey()}, id).Int()
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	return n == 1, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *UserRepository) Close() error {
	return r.client.Close()
}
