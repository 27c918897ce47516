package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/userdesk-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository stores user records as JSONB documents.
//
// JSONB normalises objects: keys are re-sorted and duplicate keys collapse to
// the last one. An object-valued label therefore comes back as an equal JSON
// value but not byte for byte. Scalar and array labels are unaffected.
type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func parseID(storeID string) (uuid.UUID, error) {
	id, err := uuid.Parse(storeID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", model.ErrInvalidStoreID, storeID)
	}
	return id, nil
}

func (r *UserRepository) Insert(ctx context.Context, user model.User) (string, error) {
	id := uuid.New()

	user.StoreID = ""
	doc, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to encode user: %w", err)
	}

	query := `INSERT INTO users (id, doc, created_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, id, doc, user.CreatedAt); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return id.String(), nil
}

func (r *UserRepository) FindOne(ctx context.Context, storeID string) (model.User, error) {
	id, err := parseID(storeID)
	if err != nil {
		return model.User{}, err
	}

	var doc []byte
	query := `SELECT doc FROM users WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return decode(id.String(), doc)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, doc FROM users ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		user, err := decode(id, doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// Replace merges the profile into the stored document. The label is removed
// first so that an absent label does not survive the overwrite.
func (r *UserRepository) Replace(ctx context.Context, storeID string, profile model.Profile) (bool, error) {
	id, err := parseID(storeID)
	if err != nil {
		return false, err
	}

	patch, err := json.Marshal(model.User{Profile: profile})
	if err != nil {
		return false, fmt.Errorf("failed to encode user: %w", err)
	}

	query := `UPDATE users SET doc = (doc - 'id') || $2::jsonb WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, patch)
	if err != nil {
		return false, fmt.Errorf("failed to replace user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to replace user: %w", err)
	}

	return n > 0, nil
}

func (r *UserRepository) Remove(ctx context.Context, storeID string) (bool, error) {
	id, err := parseID(storeID)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	return n > 0, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *UserRepository) Close() error {
	return r.db.Close()
}

func decode(id string, doc []byte) (model.User, error) {
	var user model.User
	if err := json.Unmarshal(doc, &user); err != nil {
		return model.User{}, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	user.StoreID = id

	return user, nil
}
