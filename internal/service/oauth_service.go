package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
	"github.com/Ihor-Prokopenko/teams-app/internal/oauth"
	"github.com/Ihor-Prokopenko/teams-app/internal/retry"
)

const stateTTL = 10 * time.Minute

// GoogleProvider is the identity provider surface the OAuth flow consumes.
type GoogleProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchUserInfo(ctx context.Context, token *oauth2.Token) (*oauth.UserInfo, error)
}

type OAuthService struct {
	provider GoogleProvider
	users    UserRepository
	rdb      *redis.Client
	retry    retry.Policy
}

func NewOAuthService(provider GoogleProvider, users UserRepository, rdb *redis.Client, policy retry.Policy) *OAuthService {
	return &OAuthService{
		provider: provider,
		users:    users,
		rdb:      rdb,
		retry:    policy,
	}
}

// LoginURL issues a state nonce and returns the Google consent URL.
func (s *OAuthService) LoginURL(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.rdb.Set(ctx, stateKey(state), "1", stateTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}
	return s.provider.AuthCodeURL(state), nil
}

// HandleCallback verifies the state nonce, exchanges the code, fetches the
// profile, and returns the matching local account, creating it on first
// login. Only the account write goes through the retry envelope; provider
// calls stay single-attempt.
func (s *OAuthService) HandleCallback(ctx context.Context, state, code string) (*domain.User, error) {
	deleted, err := s.rdb.Del(ctx, stateKey(state)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check oauth state: %w", err)
	}
	if deleted == 0 {
		return nil, errs.NewDomainError("Invalid or expired OAuth state", http.StatusBadRequest)
	}

	token, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	info, err := s.provider.FetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errs.NewDomainError("Google profile has no email", http.StatusBadRequest)
	}

	email := strings.ToLower(info.Email)
	user, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	// First Google login: provision an account with an unusable password.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}
	user = &domain.User{
		Email:              email,
		PasswordHash:       string(hash),
		FirstName:          info.GivenName,
		LastName:           info.FamilyName,
		RegistrationMethod: domain.RegistrationGoogle,
	}

	err = retry.Do(ctx, s.retry, func() error {
		return s.users.CreateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func stateKey(state string) string {
	return "oauth_state:" + state
}
