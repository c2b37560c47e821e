package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func userKey(kakaoID string) string {
	return "user:kakao:" + kakaoID
}

func userIDKey(userID string) string {
	return "user:id:" + userID
}

// GetOrCreateUser resolves a messenger identity to a User, creating one
// on first contact. A reverse mapping from internal ID to messenger ID
// is kept so reminder dispatch can find the recipient.
func (s *Store) GetOrCreateUser(ctx context.Context, kakaoID string) (*User, error) {
	raw, err := s.rdb.Get(ctx, userKey(kakaoID)).Result()
	if err == nil {
		var user User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("unmarshal user: %w", err)
		}
		return &user, nil
	}
	if err != redis.Nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	now := s.now()
	user := &User{
		ID:        uuid.NewString(),
		KakaoID:   kakaoID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, userKey(kakaoID), data, 0)
	pipe.Set(ctx, userIDKey(user.ID), kakaoID, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// SetUserAccessToken stores an OAuth access token on the user, creating
// the user on first contact.
func (s *Store) SetUserAccessToken(ctx context.Context, kakaoID, accessToken string) (*User, error) {
	user, err := s.GetOrCreateUser(ctx, kakaoID)
	if err != nil {
		return nil, err
	}

	user.AccessToken = accessToken
	user.UpdatedAt = s.now()
	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}
	if err := s.rdb.Set(ctx, userKey(kakaoID), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("set access token: %w", err)
	}
	return user, nil
}

// UserByID resolves an internal user ID back to the full User record.
func (s *Store) UserByID(ctx context.Context, userID string) (*User, error) {
	kakaoID, err := s.rdb.Get(ctx, userIDKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve user id: %w", err)
	}

	raw, err := s.rdb.Get(ctx, userKey(kakaoID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &user, nil
}
