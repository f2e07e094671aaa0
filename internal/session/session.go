// Package session issues and validates login sessions. The token is a
// signed JWT whose jti keys a Redis record, so logout and password changes
// kill the session server-side before the JWT itself expires.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

type Store struct {
	rdb    *redis.Client
	secret string
	ttl    time.Duration
}

func NewStore(rdb *redis.Client, secret string, ttl time.Duration) *Store {
	return &Store{
		rdb:    rdb,
		secret: secret,
		ttl:    ttl,
	}
}

// Create opens a session for the user and returns the signed token.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	sessionID := uuid.NewString()
	token, err := signToken(userID, sessionID, s.secret, s.ttl)
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, sessionKey(sessionID), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Validate parses the token and checks the backing Redis record. Returns
// the user id and the session id for later invalidation.
func (s *Store) Validate(ctx context.Context, token string) (int64, string, error) {
	claims, err := parseToken(token, s.secret)
	if err != nil {
		return 0, "", err
	}

	stored, err := s.rdb.Get(ctx, sessionKey(claims.ID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, "", errs.ErrSessionNotFound
		}
		return 0, "", fmt.Errorf("failed to load session: %w", err)
	}

	userID, err := strconv.ParseInt(stored, 10, 64)
	if err != nil || userID != claims.UserID {
		return 0, "", errs.ErrInvalidToken
	}
	return userID, claims.ID, nil
}

// Destroy invalidates a session. Destroying a missing session is a no-op.
func (s *Store) Destroy(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func signToken(userID int64, sessionID, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func parseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid || claims.ID == "" {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}
