package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"abyss-server/internal/models"
	"abyss-server/internal/repository"
)

// Field caps applied to public contact submissions.
const (
	maxContactNameLength    = 255
	maxContactEmailLength   = 255
	maxContactMessageLength = 5000
)

// ContactService defines the contact form operations. Submit is public;
// listing and status changes are admin-only and enforced at the gate.
type ContactService interface {
	Submit(ctx context.Context, name, email, message string) (*models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Compile-time check to ensure contactServiceImpl implements ContactService
var _ ContactService = (*contactServiceImpl)(nil)

type contactServiceImpl struct {
	repo   repository.ContactRepository
	logger *zap.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(repo repository.ContactRepository, logger *zap.Logger) ContactService {
	return &contactServiceImpl{
		repo:   repo,
		logger: logger.Named("ContactService"),
	}
}

func (s *contactServiceImpl) Submit(ctx context.Context, name, email, message string) (*models.Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	message = strings.TrimSpace(message)

	if name == "" || email == "" || message == "" {
		return nil, fmt.Errorf("name, email and message are required: %w", models.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email format: %w", models.ErrInvalidInput)
	}
	if len(name) > maxContactNameLength {
		return nil, fmt.Errorf("name exceeds %d characters: %w", maxContactNameLength, models.ErrInvalidInput)
	}
	if len(email) > maxContactEmailLength {
		return nil, fmt.Errorf("email exceeds %d characters: %w", maxContactEmailLength, models.ErrInvalidInput)
	}
	if len(message) > maxContactMessageLength {
		return nil, fmt.Errorf("message exceeds %d characters: %w", maxContactMessageLength, models.ErrInvalidInput)
	}

	contact := &models.Contact{
		Name:    name,
		Email:   email,
		Message: message,
		Status:  models.ContactStatusPending,
	}
	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, err
	}
	s.logger.Info("Contact message received", zap.String("contactID", contact.ID.String()), zap.String("name", name))
	return contact, nil
}

func (s *contactServiceImpl) List(ctx context.Context) ([]models.Contact, error) {
	return s.repo.ListContacts(ctx)
}

func (s *contactServiceImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !models.ValidContactStatus(status) {
		return fmt.Errorf("status must be one of pending, read, replied: %w", models.ErrInvalidInput)
	}
	return s.repo.UpdateContactStatus(ctx, id, status)
}
