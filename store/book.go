package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *Store) AddBook(create *model.Book) (*model.Book, error) {
	stmt := `
		INSERT INTO book (
			uid,
			title,
			author,
			publisher,
			price,
			discount_percentage,
			discounted_price,
			description,
			isbn,
			uploaded_by,
			status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING uid, title, author, publisher, price, discount_percentage,
			discounted_price, description, isbn, uploaded_by, status, created_ts
	`
	args := []any{
		create.UID,
		create.Title,
		create.Author,
		create.Publisher,
		create.Price,
		create.DiscountPercentage,
		create.DiscountedPrice,
		create.Description,
		create.ISBN,
		create.UploadedBy,
		create.Status.String(),
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	var book model.Book
	if err := tx.QueryRow(stmt, args...).Scan(
		&book.UID,
		&book.Title,
		&book.Author,
		&book.Publisher,
		&book.Price,
		&book.DiscountPercentage,
		&book.DiscountedPrice,
		&book.Description,
		&book.ISBN,
		&book.UploadedBy,
		&book.Status,
		&book.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.BookCache.Store(book.UID, &book)
	return &book, nil
}

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	if find.UID != nil && find.Status == nil {
		if cache, ok := s.BookCache.Load(*find.UID); ok {
			return cache.(*model.Book), nil
		}
	}

	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	book := list[0]
	s.BookCache.Store(book.UID, book)
	return book, nil
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "status = ?"), append(args, v.String())
	}
	if v := find.UploadedBy; v != nil {
		where, args = append(where, "uploaded_by = ?"), append(args, *v)
	}
	if v := find.ISBN; v != nil {
		where, args = append(where, "isbn = ?"), append(args, *v)
	}

	// The cover blob stays out of list queries, it is served separately.
	query := `
		SELECT
			uid,
			title,
			author,
			publisher,
			price,
			discount_percentage,
			discounted_price,
			description,
			isbn,
			uploaded_by,
			status,
			created_ts
		FROM book
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.UID,
			&book.Title,
			&book.Author,
			&book.Publisher,
			&book.Price,
			&book.DiscountPercentage,
			&book.DiscountedPrice,
			&book.Description,
			&book.ISBN,
			&book.UploadedBy,
			&book.Status,
			&book.CreatedAt,
		); err != nil {
			log.Error("Failed to scan book", zap.Error(err))
			return nil, err
		}
		list = append(list, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// SetBookStatus moves a book between review states. Approving a pending
// book is what publishes it.
func (s *Store) SetBookStatus(uid string, status model.BookStatus) error {
	stmt := `UPDATE book SET status = ? WHERE uid = ?`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	res, err := s.db.Exec(stmt, status.String(), uid)
	if err != nil {
		return errors.Wrap(err, "failed to update book status")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.Errorf("no book with uid %s", uid)
	}

	s.BookCache.Delete(uid)
	return nil
}

// RemoveBook deletes the record outright. Rejecting a pending book goes
// through here.
func (s *Store) RemoveBook(uid string) error {
	stmt := `DELETE FROM book WHERE uid = ?`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	if _, err := s.db.Exec(stmt, uid); err != nil {
		return errors.Wrap(err, "failed to delete book")
	}

	s.BookCache.Delete(uid)
	log.Info("Book deleted", zap.String("uid", uid))
	return nil
}

func (s *Store) SetCover(uid string, cover []byte, coverType string) error {
	stmt := `UPDATE book SET cover_image = ?, cover_type = ? WHERE uid = ?`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	if _, err := s.db.Exec(stmt, cover, coverType, uid); err != nil {
		return errors.Wrap(err, "failed to store cover")
	}
	return nil
}

// GetCover returns the stored cover blob and its content type.
func (s *Store) GetCover(uid string) ([]byte, string, error) {
	stmt := `SELECT cover_image, cover_type FROM book WHERE uid = ?`

	var cover []byte
	var coverType string
	if err := s.db.QueryRow(stmt, uid).Scan(&cover, &coverType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return cover, coverType, nil
}
