package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/logger"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt cost used for new passwords.
const PasswordHashCost = 12

// UserStore is the persistence UserService reads and writes through.
type UserStore interface {
	GetUserWithEmail(ctx context.Context, email string) (*model.User, error)
	GetUserWithID(ctx context.Context, id int) (*model.User, error)
	AddUser(ctx context.Context, u model.NewUser) (*model.User, error)
}

// WelcomeEnqueuer schedules the welcome email sent after registration.
type WelcomeEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
}

// UserService registers and looks up users.
type UserService struct {
	store    UserStore
	jobs     WelcomeEnqueuer
	hashCost int
	logger   *zerolog.Logger
}

var userNotFoundCode = "USER_NOT_FOUND"

func userNotFound() *errs.Error {
	return errs.NewNotFoundError("User not found", true, &userNotFoundCode)
}

// Register validates u, stores it with a bcrypt-hashed password and queues
// the welcome email.
func (s *UserService) Register(ctx context.Context, u model.NewUser) (*model.User, error) {
	if err := validation.Check(&u); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, errs.NewBadRequestError("Password must not exceed 72 bytes", true, nil,
			[]errs.FieldError{{Field: "password", Error: "must not exceed 72 bytes"}})
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}
	u.Password = string(hash)

	user, err := s.store.AddUser(ctx, u)
	if err != nil {
		return nil, err
	}

	if s.jobs != nil {
		if err := s.jobs.EnqueueWelcomeEmail(ctx, user.Email, user.Name); err != nil {
			logger.FromContext(ctx, s.logger).Warn().
				Err(err).
				Int("user_id", user.ID).
				Msg("failed to enqueue welcome email")
		}
	}

	return user, nil
}

// GetByEmail returns the user with email, or a USER_NOT_FOUND error.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.store.GetUserWithEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userNotFound()
	}
	return user, nil
}

// GetByID returns the user with id, or a USER_NOT_FOUND error.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	user, err := s.store.GetUserWithID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userNotFound()
	}
	return user, nil
}
