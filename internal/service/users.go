package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"abyss-server/internal/models"
	"abyss-server/internal/repository"
)

// UserOverview groups the full roster with the subset still awaiting approval.
type UserOverview struct {
	Users   []models.User `json:"users"`
	Pending []models.User `json:"pending"`
}

// AdminUserService covers the admin-only user management operations.
type AdminUserService interface {
	List(ctx context.Context) (*UserOverview, error)
	Get(ctx context.Context, username string) (*models.User, error)
	// Approve marks a user approved. Approving an already-approved user succeeds.
	Approve(ctx context.Context, username string) error
	// Reject removes a pending registration. Same effect as Delete.
	Reject(ctx context.Context, username string) error
	Delete(ctx context.Context, username string) error
}

// Compile-time check to ensure adminUserServiceImpl implements AdminUserService
var _ AdminUserService = (*adminUserServiceImpl)(nil)

type adminUserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

// NewAdminUserService creates a new AdminUserService.
func NewAdminUserService(repo repository.UserRepository, logger *zap.Logger) AdminUserService {
	return &adminUserServiceImpl{
		repo:   repo,
		logger: logger.Named("AdminUserService"),
	}
}

func (s *adminUserServiceImpl) List(ctx context.Context) (*UserOverview, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.ListPendingUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &UserOverview{Users: users, Pending: pending}, nil
}

func (s *adminUserServiceImpl) Get(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", models.ErrInvalidInput)
	}
	return s.repo.GetUserByUsername(ctx, username)
}

func (s *adminUserServiceImpl) Approve(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required: %w", models.ErrInvalidInput)
	}
	if err := s.repo.ApproveUser(ctx, username); err != nil {
		return err
	}
	s.logger.Info("User approved", zap.String("username", username))
	return nil
}

func (s *adminUserServiceImpl) Reject(ctx context.Context, username string) error {
	if err := s.Delete(ctx, username); err != nil {
		return err
	}
	s.logger.Info("Registration rejected", zap.String("username", username))
	return nil
}

func (s *adminUserServiceImpl) Delete(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required: %w", models.ErrInvalidInput)
	}
	return s.repo.DeleteUser(ctx, username)
}
