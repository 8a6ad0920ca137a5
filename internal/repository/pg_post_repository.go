package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"abyss-server/internal/models"
)

// Compile-time check to ensure pgPostRepository implements PostRepository
var _ PostRepository = (*pgPostRepository)(nil)

type pgPostRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgPostRepository creates a new PostgreSQL-backed PostRepository.
func NewPgPostRepository(db DBTX, logger *zap.Logger) PostRepository {
	return &pgPostRepository{
		db:     db,
		logger: logger.Named("PgPostRepo"),
	}
}

// ListPosts returns all posts, newest first.
func (r *pgPostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	query := `SELECT id, title, content, author, created_at, updated_at
	          FROM posts ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list posts from postgres", zap.Error(err))
		return nil, wrapPgError("list posts", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, wrapPgError("scan post row", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgError("iterate post rows", err)
	}
	return posts, nil
}

// CreatePost inserts a new post and fills in its generated fields.
func (r *pgPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	query := `INSERT INTO posts (title, content, author) VALUES ($1, $2, $3)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, post.Title, post.Content, post.Author).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create post in postgres", zap.Error(err), zap.String("title", post.Title))
		return wrapPgError("create post", err)
	}
	r.logger.Info("Post created", zap.Int64("postID", post.ID), zap.String("author", post.Author))
	return nil
}

// UpdatePost rewrites title and content of an existing post.
func (r *pgPostRepository) UpdatePost(ctx context.Context, id int64, title, content string) (*models.Post, error) {
	query := `UPDATE posts SET title = $2, content = $3, updated_at = now() WHERE id = $1
	          RETURNING id, title, content, author, created_at, updated_at`
	p := &models.Post{}
	err := r.db.QueryRow(ctx, query, id, title, content).
		Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPostNotFound
		}
		r.logger.Error("Failed to update post in postgres", zap.Error(err), zap.Int64("postID", id))
		return nil, wrapPgError("update post", err)
	}
	r.logger.Info("Post updated", zap.Int64("postID", id))
	return p, nil
}

// DeletePost removes a post.
func (r *pgPostRepository) DeletePost(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete post from postgres", zap.Error(err), zap.Int64("postID", id))
		return wrapPgError("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrPostNotFound
	}
	r.logger.Info("Post deleted", zap.Int64("postID", id))
	return nil
}
