package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

const registrationColumns = `
	id, customer_id, status, reject_message, step, done, created_at, updated_at
`

func (s *Store) RegistrationForUpdate(ctx context.Context, id uuid.UUID) (*model.CustomerRegistration, error) {
	var reg model.CustomerRegistration
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+registrationColumns+`
		FROM customer_registrations
		WHERE id = ?
		FOR UPDATE
	`, id).Scan(&reg).Error; err != nil {
		return nil, err
	}
	if reg.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &reg, nil
}

func (s *Store) ResolveRegistration(ctx context.Context, id uuid.UUID, status model.RegistrationStatus, rejectMessage *string) error {
	return s.db.WithContext(ctx).Exec(`
		UPDATE customer_registrations
		SET status = ?, reject_message = COALESCE(?, reject_message), updated_at = NOW()
		WHERE id = ?
	`, status, rejectMessage, id).Error
}

// ListRegistrations returns finished applications for the moderation queue.
func (s *Store) ListRegistrations(ctx context.Context) ([]model.CustomerRegistration, error) {
	var regs []model.CustomerRegistration
	if err := s.db.WithContext(ctx).Raw(`
		SELECT ` + registrationColumns + `
		FROM customer_registrations
		WHERE done
		ORDER BY created_at DESC
	`).Scan(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}
