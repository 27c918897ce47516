package redis

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dtroode/userdesk-server/internal/model"
)

const (
	fieldLabel      = "id"
	fieldName       = "name"
	fieldEmail      = "email"
	fieldAge        = "age"
	fieldProfession = "profession"
	fieldSummary    = "summary"
	fieldGoogleID   = "googleId"
	fieldAvatar     = "avatar"
	fieldCreatedAt  = "createdAt"
)

// encodeProfile flattens the tracked fields into HSET arguments. Every
// value is JSON so the label and the age sentinel survive unchanged.
func encodeProfile(p model.Profile) ([]any, error) {
	age, err := json.Marshal(p.Age)
	if err != nil {
		return nil, fmt.Errorf("failed to encode age: %w", err)
	}

	args := make([]any, 0, 12)
	if len(p.Label) > 0 {
		args = append(args, fieldLabel, string(p.Label))
	}

	for _, f := range []struct {
		key string
		val string
	}{
		{fieldName, p.Name},
		{fieldEmail, p.Email},
		{fieldProfession, p.Profession},
		{fieldSummary, p.Summary},
	} {
		b, err := json.Marshal(f.val)
		if err != nil {
			return nil, err
		}
		args = append(args, f.key, string(b))
	}

	return append(args, fieldAge, string(age)), nil
}

func encodeUser(u model.User) ([]any, error) {
	args, err := encodeProfile(u.Profile)
	if err != nil {
		return nil, err
	}

	if u.GoogleID != "" {
		args = append(args, fieldGoogleID, quote(u.GoogleID))
	}
	if u.Avatar != "" {
		args = append(args, fieldAvatar, quote(u.Avatar))
	}

	return append(args, fieldCreatedAt, quote(u.CreatedAt.UTC().Format(time.RFC3339Nano))), nil
}

func decodeUser(id string, fields map[string]string) (model.User, error) {
	user := model.User{StoreID: id}

	if v, ok := fields[fieldLabel]; ok {
		user.Label = json.RawMessage(v)
	}
	if v, ok := fields[fieldAge]; ok {
		user.Age = model.CoerceAge(json.RawMessage(v))
	}

	for _, f := range []struct {
		key string
		dst *string
	}{
		{fieldName, &user.Name},
		{fieldEmail, &user.Email},
		{fieldProfession, &user.Profession},
		{fieldSummary, &user.Summary},
		{fieldGoogleID, &user.GoogleID},
		{fieldAvatar, &user.Avatar},
	} {
		v, ok := fields[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(v), f.dst); err != nil {
			return model.User{}, fmt.Errorf("failed to decode user %s field %s: %w", id, f.key, err)
		}
	}

	if v, ok := fields[fieldCreatedAt]; ok {
		var s string
		if err := json.Unmarshal([]byte(v), &s); err != nil {
			return model.User{}, fmt.Errorf("failed to decode user %s field %s: %w", id, fieldCreatedAt, err)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to decode user %s field %s: %w", id, fieldCreatedAt, err)
		}
		user.CreatedAt = t
	}

	return user, nil
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
