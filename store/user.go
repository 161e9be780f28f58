package store

import (
	"fmt"
	"strings"

	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrEmailExists is returned when registering an email that is taken.
var ErrEmailExists = errors.New("email already registered")

func (s *Store) CreateUser(create *model.User) (*model.User, error) {
	stmt := `
		INSERT INTO user (
			name,
			email,
			password_hash
		) VALUES (?, ?, ?)
		RETURNING id, name, email, password_hash, created_ts
	`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var user model.User
	if err := tx.QueryRow(stmt, create.Name, create.Email, create.PasswordHash).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedTs,
	); err != nil {
		// sqlite reports duplicates as a UNIQUE constraint violation
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.UserCache.Store(user.Email, &user)
	return &user, nil
}

func (s *Store) GetUser(find *model.FindUser) (*model.User, error) {
	if find.Email != nil {
		if cache, ok := s.UserCache.Load(*find.Email); ok {
			return cache.(*model.User), nil
		}
	}

	list, err := s.ListUsers(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	user := list[0]
	s.UserCache.Store(user.Email, user)
	return user, nil
}

func (s *Store) ListUsers(find *model.FindUser) ([]*model.User, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Email; v != nil {
		where, args = append(where, "email = ?"), append(args, *v)
	}

	// Here will return password_hash, so need to be careful
	// If need to response to client, strip it first
	query := `
		SELECT
			id,
			name,
			email,
			password_hash,
			created_ts
		FROM user
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	// zap not support escape character, so need to fallback.
	// https://github.com/uber-go/zap/issues/963
	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Debug("Error querying users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		// The ordering of query results should be consistent with query var
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
