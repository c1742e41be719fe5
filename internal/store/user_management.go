package store

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var (
	ErrAlreadyExists    = errors.New("already exists")
	ErrPasswordTooShort = errors.New("password too short")
)

const MinPasswordLength = 6

// UserFilter restricts ListUsers. A nil Active matches every user.
type UserFilter struct {
	Query  string
	Active *bool
}

// ListUsers returns the users matching the filter, ordered by name. The
// query matches the DNI or the full name.
func (s *Store) ListUsers(ctx context.Context, filter UserFilter) ([]*User, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 3)

	if filter.Active != nil {
		where = append(where, "estado = ?")
		args = append(args, *filter.Active)
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + q + "%"
		where = append(where, "(dni LIKE ? OR UPPER(nombre || ' ' || apellidos) LIKE UPPER(?))")
		args = append(args, pattern, pattern)
	}

	query := fmt.Sprintf(`SELECT %s FROM users`, userAttributes)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY nombre ASC, id ASC"

	users := make([]*User, 0)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user := &User{}
				if err := s.bindUser(stmt, user); err != nil {
					return errors.WithStack(err)
				}

				users = append(users, user)

				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return users, nil
}

// FindUser returns the user with the given id, active or not.
func (s *Store) FindUser(ctx context.Context, id int64) (*User, error) {
	var user *User

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		var err error
		user, err = s.findUser(conn, "id = ?", id)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// CreateUser inserts a new user. Email or DNI collisions return
// ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, user *User, password string) (*User, error) {
	if err := checkPassword(password); err != nil {
		return nil, errors.WithStack(err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var created *User

	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			INSERT INTO users
				(nombre, apellidos, email, dni, password, role, estado, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING %s`,
			userAttributes,
		)

		now := time.Now().UTC().Unix()

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{user.Nombre, user.Apellidos, nullable(user.Email), nullable(user.DNI), hash, user.Role, user.Active, now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				created = &User{}
				return errors.WithStack(s.bindUser(stmt, created))
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(uniqueViolation(err))
	}

	return created, nil
}

// UpdateUser saves the name, email, role and state of an existing user.
func (s *Store) UpdateUser(ctx context.Context, user *User) (*User, error) {
	var updated *User

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			UPDATE users SET
				nombre = ?, apellidos = ?, email = ?, role = ?, estado = ?, updated_at = ?
			WHERE id = ?
			RETURNING %s`,
			userAttributes,
		)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{user.Nombre, user.Apellidos, nullable(user.Email), user.Role, user.Active, time.Now().UTC().Unix(), user.ID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				updated = &User{}
				return errors.WithStack(s.bindUser(stmt, updated))
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(uniqueViolation(err))
	}

	if updated == nil {
		return nil, errors.WithStack(ErrNotFound)
	}

	return updated, nil
}

// SetPassword replaces the password of the given user.
func (s *Store) SetPassword(ctx context.Context, id int64, password string) error {
	if err := checkPassword(password); err != nil {
		return errors.WithStack(err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return errors.WithStack(err)
	}

	var found bool

	err = s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, `UPDATE users SET password = ?, updated_at = ? WHERE id = ? RETURNING id`, &sqlitex.ExecOptions{
			Args: []any{hash, time.Now().UTC().Unix(), id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				return nil
			},
		}))
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if !found {
		return errors.WithStack(ErrNotFound)
	}

	return nil
}

// ChangePassword replaces the password of an active user after checking the
// current one.
func (s *Store) ChangePassword(ctx context.Context, id int64, current, next string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	if !verifyPassword(current, user.Password) {
		return errors.WithStack(ErrInvalidPassword)
	}

	if err := s.SetPassword(ctx, id, next); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func checkPassword(password string) error {
	if utf8.RuneCountInString(strings.TrimSpace(password)) < MinPasswordLength {
		return errors.WithStack(ErrPasswordTooShort)
	}

	return nil
}

func uniqueViolation(err error) error {
	if sqlite.ErrCode(err) == sqlite.ResultConstraintUnique {
		return errors.Wrapf(ErrAlreadyExists, "%s", err)
	}

	return err
}
