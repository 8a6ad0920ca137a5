package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"abyss-server/internal/models"
	"abyss-server/internal/repository"
)

const maxPostTitleLength = 500

// PostService defines the blog post operations.
type PostService interface {
	// List is public and returns all posts, newest first.
	List(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, author, title, content string) (*models.Post, error)
	Update(ctx context.Context, id int64, title, content string) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

// Compile-time check to ensure postServiceImpl implements PostService
var _ PostService = (*postServiceImpl)(nil)

type postServiceImpl struct {
	repo   repository.PostRepository
	logger *zap.Logger
}

// NewPostService creates a new PostService.
func NewPostService(repo repository.PostRepository, logger *zap.Logger) PostService {
	return &postServiceImpl{
		repo:   repo,
		logger: logger.Named("PostService"),
	}
}

func (s *postServiceImpl) List(ctx context.Context) ([]models.Post, error) {
	return s.repo.ListPosts(ctx)
}

func validatePostInput(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return "", "", fmt.Errorf("title and content are required: %w", models.ErrInvalidInput)
	}
	if len(title) > maxPostTitleLength {
		return "", "", fmt.Errorf("title exceeds %d characters: %w", maxPostTitleLength, models.ErrInvalidInput)
	}
	return title, content, nil
}

func (s *postServiceImpl) Create(ctx context.Context, author, title, content string) (*models.Post, error) {
	title, content, err := validatePostInput(title, content)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   title,
		Content: content,
		Author:  author,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info("Post created", zap.Int64("postID", post.ID), zap.String("author", author))
	return post, nil
}

func (s *postServiceImpl) Update(ctx context.Context, id int64, title, content string) (*models.Post, error) {
	title, content, err := validatePostInput(title, content)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdatePost(ctx, id, title, content)
}

func (s *postServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.repo.DeletePost(ctx, id)
}
