package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/chroniclex-be/internal/apperr"
	"github.com/isdelr/chroniclex-be/internal/models"
)

const selectBlogs = `
	SELECT b.id, b.title, b.content, b.publication_date, b.author_id, u.username
	FROM blogs b JOIN users u ON u.id = b.author_id
`

// SQLiteBlogRepository implements BlogRepository on top of SQLite.
type SQLiteBlogRepository struct {
	db *sql.DB
}

// NewSQLiteBlogRepository creates a new SQLiteBlogRepository.
func NewSQLiteBlogRepository(db *sql.DB) *SQLiteBlogRepository {
	return &SQLiteBlogRepository{db: db}
}

// Create inserts a new post. Publication dates are stored in UTC so that they sort lexically.
func (r *SQLiteBlogRepository) Create(ctx context.Context, blog models.Blog) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO blogs (id, title, content, publication_date, author_id) VALUES (?, ?, ?, ?, ?)",
		blog.ID, blog.Title, blog.Content, blog.PublicationDate.UTC(), blog.Author)
	if err != nil {
		return fmt.Errorf("create blog: %w", err)
	}
	return nil
}

// GetByID retrieves a single post.
func (r *SQLiteBlogRepository) GetByID(ctx context.Context, id string) (models.Blog, error) {
	row := r.db.QueryRowContext(ctx, selectBlogs+"WHERE b.id = ?", id)
	blog, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Blog{}, fmt.Errorf("blog %s: %w", id, apperr.ErrNotFound)
		}
		return models.Blog{}, fmt.Errorf("get blog: %w", err)
	}
	return blog, nil
}

// List returns posts newest first, optionally restricted to one author.
func (r *SQLiteBlogRepository) List(ctx context.Context, filter models.BlogFilter) ([]models.Blog, error) {
	var (
		where []string
		args  []any
	)
	if filter.UsernameSet || filter.Username != "" {
		where = append(where, "u.username = ?")
		args = append(args, filter.Username)
	}

	query := selectBlogs
	if len(where) > 0 {
		query += "WHERE " + strings.Join(where, " AND ") + " "
	}
	query += "ORDER BY b.publication_date DESC, b.rowid DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	blogs := []models.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}
	return blogs, rows.Err()
}

// Update overwrites the title and content of a post.
func (r *SQLiteBlogRepository) Update(ctx context.Context, blog models.Blog) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE blogs SET title = ?, content = ? WHERE id = ?", blog.Title, blog.Content, blog.ID)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	return expectOneRow(res, blog.ID)
}

// Delete removes a post. Deleting an unknown id reports ErrNotFound.
func (r *SQLiteBlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM blogs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return expectOneRow(res, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(s scanner) (models.Blog, error) {
	var blog models.Blog
	err := s.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.PublicationDate, &blog.Author, &blog.AuthorUsername)
	return blog, err
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("blog %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}
