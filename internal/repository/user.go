package repository

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// UserRepository looks up and inserts users.
type UserRepository struct {
	base
}

const (
	getUserWithEmailQuery = `SELECT id, name, email, password FROM users WHERE email = $1`
	getUserWithIDQuery    = `SELECT id, name, email, password FROM users WHERE id = $1`
	insertUserQuery       = `INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id, name, email, password`
)

// GetUserWithEmail returns the user with the given email, or nil when there
// is none. The email is lower-cased before lookup.
func (r *UserRepository) GetUserWithEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "getUserWithEmail", getUserWithEmailQuery, model.NormalizeEmail(email))
}

// GetUserWithID returns the user with the given id, or nil when there is none.
func (r *UserRepository) GetUserWithID(ctx context.Context, id int) (*model.User, error) {
	return r.getOne(ctx, "getUserWithId", getUserWithIDQuery, id)
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}
	return &u, nil
}

// AddUser inserts u with a lower-cased email and returns the stored row.
func (r *UserRepository) AddUser(ctx context.Context, u model.NewUser) (*model.User, error) {
	const op = "addUser"

	var user model.User
	err := r.db.QueryRow(ctx, insertUserQuery, u.Name, model.NormalizeEmail(u.Email), u.Password).
		Scan(&user.ID, &user.Name, &user.Email, &user.Password)
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}

	r.log(ctx).Info().Str("op", op).Int("user_id", user.ID).Msg("user created")
	return &user, nil
}
