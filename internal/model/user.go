package model

import (
	"context"
	"encoding/json"
	"time"
)

// UserStore defines persistence operations for user records.
// Implementations own the native identifier type behind storeID.
type UserStore interface {
	// Insert persists a new record and returns the identifier assigned to it.
	Insert(ctx context.Context, user User) (string, error)
	// FindOne returns ErrNotFound when no record carries storeID.
	FindOne(ctx context.Context, storeID string) (User, error)
	FindAll(ctx context.Context) ([]User, error)
	// Replace overwrites the tracked profile fields and reports whether a record matched.
	Replace(ctx context.Context, storeID string, profile Profile) (bool, error)
	// Remove deletes the record and reports whether one was deleted.
	Remove(ctx context.Context, storeID string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// Profile holds the caller-tracked fields of a user record.
// An update replaces all of them at once.
type Profile struct {
	// Label is the caller supplied "id" value kept verbatim.
	Label      json.RawMessage
	Name       string
	Email      string
	Age        Age
	Profession string
	Summary    string
}

// User represents a stored user record.
type User struct {
	Profile

	StoreID   string
	GoogleID  string
	Avatar    string
	CreatedAt time.Time
}

type wireUser struct {
	StoreID    string          `json:"_id,omitempty"`
	Label      json.RawMessage `json:"id,omitempty"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Age        Age             `json:"age"`
	Profession string          `json:"profession"`
	Summary    string          `json:"summary"`
	GoogleID   string          `json:"googleId,omitempty"`
	Avatar     string          `json:"avatar,omitempty"`
	CreatedAt  *time.Time      `json:"createdAt,omitempty"`
}

// MarshalJSON renders the wire representation of the record.
func (u User) MarshalJSON() ([]byte, error) {
	w := wireUser{
		StoreID:    u.StoreID,
		Label:      u.Label,
		Name:       u.Name,
		Email:      u.Email,
		Age:        u.Age,
		Profession: u.Profession,
		Summary:    u.Summary,
		GoogleID:   u.GoogleID,
		Avatar:     u.Avatar,
	}
	if !u.CreatedAt.IsZero() {
		t := u.CreatedAt.UTC()
		w.CreatedAt = &t
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a record previously produced by MarshalJSON.
// Request bodies go through ParseUser instead.
func (u *User) UnmarshalJSON(b []byte) error {
	var w wireUser
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*u = User{
		Profile: Profile{
			Label:      w.Label,
			Name:       w.Name,
			Email:      w.Email,
			Age:        w.Age,
			Profession: w.Profession,
			Summary:    w.Summary,
		},
		StoreID:  w.StoreID,
		GoogleID: w.GoogleID,
		Avatar:   w.Avatar,
	}
	if w.CreatedAt != nil {
		u.CreatedAt = *w.CreatedAt
	}

	return nil
}

// WithStoreID returns a copy of the profile as a record keyed by storeID.
func (p Profile) WithStoreID(storeID string) User {
	return User{Profile: p, StoreID: storeID}
}
