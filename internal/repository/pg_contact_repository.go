package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"abyss-server/internal/models"
)

// Compile-time check to ensure pgContactRepository implements ContactRepository
var _ ContactRepository = (*pgContactRepository)(nil)

type pgContactRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgContactRepository creates a new PostgreSQL-backed ContactRepository.
func NewPgContactRepository(db DBTX, logger *zap.Logger) ContactRepository {
	return &pgContactRepository{
		db:     db,
		logger: logger.Named("PgContactRepo"),
	}
}

// CreateContact inserts a new contact message with status pending.
func (r *pgContactRepository) CreateContact(ctx context.Context, contact *models.Contact) error {
	query := `INSERT INTO contacts (name, email, message, status) VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, contact.Name, contact.Email, contact.Message, contact.Status).
		Scan(&contact.ID, &contact.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create contact in postgres", zap.Error(err), zap.String("email", contact.Email))
		return wrapPgError("create contact", err)
	}
	r.logger.Info("Contact message stored", zap.String("contactID", contact.ID.String()), zap.String("name", contact.Name))
	return nil
}

// ListContacts returns all contact messages, newest first.
func (r *pgContactRepository) ListContacts(ctx context.Context) ([]models.Contact, error) {
	query := `SELECT id, name, email, message, status, created_at
	          FROM contacts ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list contacts from postgres", zap.Error(err))
		return nil, wrapPgError("list contacts", err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.Status, &c.CreatedAt); err != nil {
			return nil, wrapPgError("scan contact row", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgError("iterate contact rows", err)
	}
	return contacts, nil
}

// UpdateContactStatus advances the status of a message.
func (r *pgContactRepository) UpdateContactStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE contacts SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.logger.Error("Failed to update contact status in postgres", zap.Error(err), zap.String("contactID", id.String()))
		return wrapPgError("update contact status", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrContactNotFound
	}
	r.logger.Info("Contact status updated", zap.String("contactID", id.String()), zap.String("status", status))
	return nil
}
