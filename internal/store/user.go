package store

import (
	"context"
	"crypto/subtle"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/asistenciav2/portal/internal/authn"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidPassword = errors.New("invalid password")
)

var userMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,

		nombre TEXT NOT NULL DEFAULT '',
		apellidos TEXT NOT NULL DEFAULT '',
		email TEXT,
		dni TEXT,

		password TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'usuario',
		estado INTEGER NOT NULL DEFAULT 1,

		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		ultimo_acceso INTEGER,

		UNIQUE (email),
		UNIQUE (dni)
	);`,
}

const (
	RoleAdministrator = "administrador"
	RoleUser          = "usuario"
)

const Provider = "local"

type User struct {
	ID int64

	Nombre    string
	Apellidos string
	Email     string
	DNI       string

	Password string
	Role     string
	Active   bool

	CreatedAt  time.Time
	UpdatedAt  time.Time
	LastAccess time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdministrator
}

// UserSubject implements authn.User.
func (u *User) UserSubject() string {
	if u.Email != "" {
		return u.Email
	}

	return u.DNI
}

// UserProvider implements authn.User.
func (u *User) UserProvider() string {
	return Provider
}

var _ authn.User = &User{}

// FindActiveUser looks up an active user by email or DNI.
func (s *Store) FindActiveUser(ctx context.Context, identifier string) (*User, error) {
	var user *User

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		var err error
		user, err = s.findUser(conn, "(email = ? OR dni = ?) AND estado = 1", identifier, identifier)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*User, error) {
	var user *User

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		var err error
		user, err = s.findUser(conn, "id = ? AND estado = 1", id)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// Authenticate returns the active user matching the given identifier and
// password.
func (s *Store) Authenticate(ctx context.Context, identifier, password string) (*User, error) {
	user, err := s.FindActiveUser(ctx, identifier)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !verifyPassword(password, user.Password) {
		return nil, errors.WithStack(ErrInvalidPassword)
	}

	return user, nil
}

func (s *Store) TouchLastAccess(ctx context.Context, id int64) error {
	return s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, `UPDATE users SET ultimo_acceso = ? WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{time.Now().UTC().Unix(), id},
		}))
	})
}

// SaveUser creates or updates the user sharing the same email. An empty
// password keeps the existing hash.
func (s *Store) SaveUser(ctx context.Context, user *User, password string) (*User, error) {
	var hash string
	if password != "" {
		h, err := hashPassword(password)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		hash = h
	}

	var saved *User

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			INSERT INTO users
				(nombre, apellidos, email, dni, password, role, estado, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (email) DO UPDATE SET
				nombre = excluded.nombre,
				apellidos = excluded.apellidos,
				dni = excluded.dni,
				password = CASE WHEN excluded.password = '' THEN users.password ELSE excluded.password END,
				role = excluded.role,
				estado = excluded.estado,
				updated_at = excluded.updated_at
			RETURNING %s`,
			userAttributes,
		)

		now := time.Now().UTC().Unix()

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{user.Nombre, user.Apellidos, nullable(user.Email), nullable(user.DNI), hash, user.Role, user.Active, now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				saved = &User{}
				return errors.WithStack(s.bindUser(stmt, saved))
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return saved, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, "SELECT COUNT(*) FROM users", &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		}))
	})

	return count, errors.WithStack(err)
}

func (s *Store) findUser(conn *sqlite.Conn, where string, args ...any) (*User, error) {
	var user *User

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s LIMIT 1`, userAttributes, where)

	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			user = &User{}
			return errors.WithStack(s.bindUser(stmt, user))
		},
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if user == nil {
		return nil, errors.WithStack(ErrNotFound)
	}

	return user, nil
}

var userAttributes = `id, nombre, apellidos, email, dni, password, role, estado, created_at, updated_at, ultimo_acceso`

func (s *Store) bindUser(stmt *sqlite.Stmt, user *User) error {
	user.ID = stmt.ColumnInt64(0)
	user.Nombre = stmt.ColumnText(1)
	user.Apellidos = stmt.ColumnText(2)
	user.Email = stmt.ColumnText(3)
	user.DNI = stmt.ColumnText(4)
	user.Password = stmt.ColumnText(5)
	user.Role = stmt.ColumnText(6)
	user.Active = stmt.ColumnInt64(7) == 1
	user.CreatedAt = unixTime(stmt.ColumnInt64(8))
	user.UpdatedAt = unixTime(stmt.ColumnInt64(9))
	user.LastAccess = unixTime(stmt.ColumnInt64(10))

	return nil
}

func unixTime(timestamp int64) time.Time {
	if timestamp == 0 {
		return time.Time{}
	}

	return time.Unix(timestamp, 0)
}

func nullable(str string) any {
	if str == "" {
		return nil
	}

	return str
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(bytes), nil
}

var bcryptHash = regexp.MustCompile(`^\$2[aby]\$\d+\$.*`)

// verifyPassword accepts bcrypt hashes, including the "$2y$" variant, and
// falls back to a plain comparison for legacy unhashed values.
func verifyPassword(password, stored string) bool {
	if stored == "" {
		return false
	}

	if strings.HasPrefix(stored, "$2y$") {
		stored = "$2a$" + stored[4:]
	}

	if !bcryptHash.MatchString(stored) {
		return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
	}

	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
