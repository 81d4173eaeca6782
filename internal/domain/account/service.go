package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/validation"
)

var (
	// ErrInvalidCredentials is returned for a bad username/password pair.
	// Login failures are indistinguishable on purpose.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrWrongAnswer is returned when the recovery answer does not match.
	ErrWrongAnswer = errors.New("incorrect recovery answer")
)

// Default credentials for the first run. The clinic changes these from the
// profile page after the initial login.
const (
	seedUsername = "admin"
	seedPassword = "password123"
	seedName     = "BHW Maria"
	seedRole     = "Barangay Health Worker"
	seedQuestion = "What is your favorite color?"
	seedAnswer   = "emerald"
)

type Service struct {
	users Repository
}

func NewService(users Repository) *Service {
	return &Service{users: users}
}

// Login verifies a username/password pair and returns the matching user.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// RecoveryQuestion returns the stored recovery question for a username.
func (s *Service) RecoveryQuestion(ctx context.Context, username string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return u.RecoveryQuestion, nil
}

// ResetPassword sets a new password after checking the recovery answer.
// Answers are compared case-insensitively, matching how they are stored.
func (s *Service) ResetPassword(ctx context.Context, username, answer, newPassword string) error {
	if len(newPassword) < 6 {
		return validation.Errorf("new password must be at least 6 characters")
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.RecoveryAnswerHash), []byte(normalizeAnswer(answer))) != nil {
		return ErrWrongAnswer
	}
	hash, err := hashSecret(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, u.ID, hash)
}

// Profile returns the authenticated user's account.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies profile edits for the authenticated user. Password
// and recovery fields are only overwritten when the input provides them.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, validation.Errorf("username is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, validation.Errorf("name is required")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Username = strings.TrimSpace(in.Username)
	u.Name = strings.TrimSpace(in.Name)

	if in.Password != "" {
		if len(in.Password) < 6 {
			return nil, validation.Errorf("password must be at least 6 characters")
		}
		hash, err := hashSecret(in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if in.RecoveryQuestion != "" {
		u.RecoveryQuestion = in.RecoveryQuestion
	}
	if in.RecoveryAnswer != "" {
		hash, err := hashSecret(normalizeAnswer(in.RecoveryAnswer))
		if err != nil {
			return nil, err
		}
		u.RecoveryAnswerHash = hash
	}

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// CheckUsername reports whether a username is free for the given user to
// take. The user's current username always counts as available.
func (s *Service) CheckUsername(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	if strings.TrimSpace(username) == "" {
		return false, nil
	}
	taken, err := s.users.UsernameTaken(ctx, username, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// EnsureSeed creates the default account when the users table is empty, so
// a fresh install can be logged into.
func (s *Service) EnsureSeed(ctx context.Context) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	passwordHash, err := hashSecret(seedPassword)
	if err != nil {
		return err
	}
	answerHash, err := hashSecret(normalizeAnswer(seedAnswer))
	if err != nil {
		return err
	}

	return s.users.Create(ctx, &User{
		Username:           seedUsername,
		PasswordHash:       passwordHash,
		Name:               seedName,
		Role:               seedRole,
		RecoveryQuestion:   seedQuestion,
		RecoveryAnswerHash: answerHash,
	})
}

func hashSecret(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
