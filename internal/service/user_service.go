package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
	"github.com/Ihor-Prokopenko/teams-app/internal/retry"
)

type UserService struct {
	users UserRepository
	retry retry.Policy
}

func NewUserService(users UserRepository, policy retry.Policy) *UserService {
	return &UserService{
		users: users,
		retry: policy,
	}
}

// Register creates a user account with a bcrypt-hashed password. A
// persistence failure after validation passed surfaces as a 417 domain
// error, matching the dependency-failed contract.
func (s *UserService) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	email = strings.ToLower(email)

	exists, err := s.users.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check user email: %w", err)
	}
	if exists {
		return nil, errs.FieldError("email", fmt.Sprintf("User with email %q already exists.", email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:              email,
		PasswordHash:       string(hash),
		RegistrationMethod: domain.RegistrationEmail,
	}
	if fullName != "" {
		if err := user.SetFullName(fullName); err != nil {
			return nil, errs.FieldError("full_name", "Full name cannot be empty.")
		}
	}

	err = retry.Do(ctx, s.retry, func() error {
		return s.users.CreateUser(ctx, user)
	})
	if err != nil {
		var validationErr *errs.ValidationError
		if errors.As(err, &validationErr) {
			return nil, err
		}
		return nil, errs.NewDomainError("User creation failed", http.StatusExpectationFailed)
	}
	return user, nil
}

// Login verifies credentials without revealing which check failed.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errs.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// EditProfile applies a partial update to email and/or full name. Email
// uniqueness is checked excluding the user's own record.
func (s *UserService) EditProfile(ctx context.Context, userID int64, email, fullName string) (*domain.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email != "" {
		email = strings.ToLower(email)
		exists, err := s.users.EmailExists(ctx, email, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check user email: %w", err)
		}
		if exists {
			return nil, errs.FieldError("email", fmt.Sprintf("User with email %q already exists.", email))
		}
		user.Email = email
	}
	if fullName != "" {
		if err := user.SetFullName(fullName); err != nil {
			return nil, errs.FieldError("full_name", "Full name cannot be empty.")
		}
	}

	err = retry.Do(ctx, s.retry, func() error {
		return s.users.UpdateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword enforces the precondition triple: the new password must
// differ from the old one, the old one must verify, and the confirmation
// must match. Each failure responds 412.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmPassword string) error {
	if newPassword == oldPassword {
		return errs.NewDomainError("New password must be different from the old one", http.StatusPreconditionFailed)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return errs.NewDomainError("Invalid old password", http.StatusPreconditionFailed)
	}
	if newPassword != confirmPassword {
		return errs.NewDomainError("Passwords do not match", http.StatusPreconditionFailed)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return retry.Do(ctx, s.retry, func() error {
		return s.users.UpdatePassword(ctx, userID, string(hash))
	})
}

// DeleteAccount is self-service only: the target must be the caller,
// anything else is invisible under owner scoping.
func (s *UserService) DeleteAccount(ctx context.Context, callerID, targetID int64) error {
	if callerID != targetID {
		return errs.ErrNotFound
	}

	return retry.Do(ctx, s.retry, func() error {
		return s.users.DeleteUser(ctx, targetID)
	})
}
