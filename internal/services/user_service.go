package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/A1ekseiPanov/task-management-system/internal/auth"
	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/repository"
)

type UserService struct {
	logger zerolog.Logger
	users  repository.Users
	hasher auth.PasswordHasher
	tokens *auth.TokenCodec
}

func NewUserService(
	logger zerolog.Logger,
	users repository.Users,
	hasher auth.PasswordHasher,
	tokens *auth.TokenCodec,
) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a user with the default USER role, storing the
// password only as a salted one-way hash.
//
// It returns ErrUserAlreadyExists if the email is already taken.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Audit: models.Audit{
			Created: now,
			Updated: now,
		},
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Roles:        []models.Role{models.RoleUser},
	}

	err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Error().
				Str("email", user.Email).
				Msg("user with this email already exists")
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("registered user")
	return user, nil
}

// Login verifies the email/password pair and issues a stateless
// session token asserting the user's id, email and roles.
//
// It returns ErrBadCredentials both for an unknown email and for a
// wrong password, never telling the two apart.
func (s *UserService) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := s.users.ByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Str("email", params.Email).
				Msg("user not found")
			return nil, ErrBadCredentials
		}

		s.logger.Error().
			Err(err).
			Str("email", params.Email).
			Msg("failed to select user by email")
		return nil, err
	}

	match, err := s.hasher.Verify(params.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Error().
			Int64("user_id", user.ID).
			Msg("passwords do not match")
		return nil, ErrBadCredentials
	}

	token, expiresAt, err := s.tokens.Issue(auth.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue token")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("logged in")
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetByID returns ErrUserNotFound if the user doesn't exist.
func (s *UserService) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Int64("user_id", userID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to select user by id")
		return nil, err
	}
	return user, nil
}
