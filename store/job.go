package store

import (
	"github.com/bookbazaar/bookbazaar/model"
)

func (s *Store) AddJob(job model.Job) (*model.Job, error) {
	stmt := `
    INSERT INTO job (book_uid, type, status) VALUES (?, ?, ?)
    RETURNING id, book_uid, type, status
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var j model.Job
	if err := tx.QueryRow(stmt, job.BookUID, job.Type, job.Status).Scan(
		&j.ID, &j.BookUID, &j.Type, &j.Status,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &j, nil
}

func (s *Store) SetJobStatus(id int, status string) error {
	stmt := `UPDATE job SET status = ? WHERE id = ?`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	_, err := s.db.Exec(stmt, status, id)
	return err
}

func (s *Store) ListJobs(status string) ([]*model.Job, error) {
	query := `SELECT id, book_uid, type, status FROM job WHERE status = ? ORDER BY id`

	rows, err := s.db.Query(query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Job, 0)
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.BookUID, &j.Type, &j.Status); err != nil {
			return nil, err
		}
		list = append(list, &j)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
