// Package store persists posts in a relational database through database/sql.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"radioboard/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

const postColumns = "id, program_id, date, time, type, name, title, group_names, is_published"

type Store struct {
	DB     *sql.DB
	Driver string
}

// Open connects to the database and brings the schema up to date.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case "":
		driver = DriverSQLite
	case "postgres", "postgresql":
		driver = DriverPostgres
	}
	if dsn == "" && driver == DriverSQLite {
		dsn = "./radioboard.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	s := &Store{DB: db, Driver: driver}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	if driver == DriverSQLite {
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
	}
	return s, nil
}

func (s *Store) Close() error { return s.DB.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

// Published returns a program's published posts, newest date first and
// ascending time within a date.
func (s *Store) Published(ctx context.Context, programID string) ([]domain.Post, error) {
	return s.query(ctx, "SELECT "+postColumns+" FROM posts WHERE program_id = $1 AND is_published = $2 ORDER BY date DESC, time ASC, id ASC",
		programID, true)
}

// Drafts returns a program's unpublished posts, latest time first.
func (s *Store) Drafts(ctx context.Context, programID string) ([]domain.Post, error) {
	return s.query(ctx, "SELECT "+postColumns+" FROM posts WHERE program_id = $1 AND is_published = $2 ORDER BY time DESC, id DESC",
		programID, false)
}

// PublishedSince returns published posts dated on or after since.
func (s *Store) PublishedSince(ctx context.Context, programID string, since string) ([]domain.Post, error) {
	return s.query(ctx, "SELECT "+postColumns+" FROM posts WHERE program_id = $1 AND is_published = $2 AND date >= $3 ORDER BY date DESC, time DESC, id DESC",
		programID, true, since)
}

func (s *Store) Get(ctx context.Context, id int64) (domain.Post, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1", id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Post{}, fmt.Errorf("post %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("select post %d: %w", id, err)
	}
	return p, nil
}

// Create inserts p as given and returns the id assigned by the database.
func (s *Store) Create(ctx context.Context, p domain.Post) (int64, error) {
	var id int64
	err := s.DB.QueryRowContext(ctx,
		"INSERT INTO posts (program_id, date, time, type, name, title, group_names, is_published) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id",
		p.ProgramID, domain.FormatDate(p.Date), p.Time, p.Type, p.Name, p.Title, p.GroupNames, p.IsPublished,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}
	return id, nil
}

// Update overwrites the mutable fields of post p.ID and returns its program id.
func (s *Store) Update(ctx context.Context, p domain.Post) (string, error) {
	var programID string
	err := s.DB.QueryRowContext(ctx,
		"UPDATE posts SET date = $1, time = $2, type = $3, name = $4, title = $5, group_names = $6 WHERE id = $7 RETURNING program_id",
		domain.FormatDate(p.Date), p.Time, p.Type, p.Name, p.Title, p.GroupNames, p.ID,
	).Scan(&programID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("post %d: %w", p.ID, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("update post %d: %w", p.ID, err)
	}
	return programID, nil
}

// Delete removes post id and returns the program it belonged to.
func (s *Store) Delete(ctx context.Context, id int64) (string, error) {
	var programID string
	err := s.DB.QueryRowContext(ctx, "DELETE FROM posts WHERE id = $1 RETURNING program_id", id).Scan(&programID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("post %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("delete post %d: %w", id, err)
	}
	return programID, nil
}

// PublishDrafts marks every draft of a program as published in one transaction.
func (s *Store) PublishDrafts(ctx context.Context, programID string) (int64, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error in begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "UPDATE posts SET is_published = $1 WHERE program_id = $2 AND is_published = $3")
	if err != nil {
		return 0, fmt.Errorf("error preparing statement in table posts: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, true, programID, false)
	if err != nil {
		return 0, fmt.Errorf("error executing statement in table posts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error in commit transaction: %w", err)
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]domain.Post, error) {
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (domain.Post, error) {
	var (
		p    domain.Post
		date string
	)
	if err := row.Scan(&p.ID, &p.ProgramID, &date, &p.Time, &p.Type, &p.Name, &p.Title, &p.GroupNames, &p.IsPublished); err != nil {
		return domain.Post{}, err
	}
	d, err := domain.ParseDate(date)
	if err != nil {
		return domain.Post{}, fmt.Errorf("post %d has malformed date %q: %w", p.ID, date, err)
	}
	p.Date = d
	return p, nil
}
