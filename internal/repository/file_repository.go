package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

// RehomeFileToLoad points an uploaded proof image at a load. When a load is
// extended, the new proof simply moves onto the existing load.
func (s *Store) RehomeFileToLoad(ctx context.Context, fileID, loadID uuid.UUID) error {
	return s.db.WithContext(ctx).Exec(`
		UPDATE files
		SET load_id = ?
		WHERE id = ?
	`, loadID, fileID).Error
}

func (s *Store) AttachFilesToPayment(ctx context.Context, fileIDs []uuid.UUID, paymentID uuid.UUID) error {
	if len(fileIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Exec(`
		UPDATE files
		SET payment_id = ?
		WHERE id IN ?
	`, paymentID, fileIDs).Error
}

func (s *Store) AttachFilesToProduct(ctx context.Context, fileIDs []uuid.UUID, productID uuid.UUID) error {
	if len(fileIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Exec(`
		UPDATE files
		SET product_id = ?
		WHERE id IN ?
	`, productID, fileIDs).Error
}

func (s *Store) FilesByPayment(ctx context.Context, paymentID uuid.UUID) ([]model.File, error) {
	var files []model.File
	if err := s.db.WithContext(ctx).Raw(`
		SELECT id, name, path, size, content_type, product_id, load_id,
			payment_id, registration_id, created_at
		FROM files
		WHERE payment_id = ?
		ORDER BY created_at ASC
	`, paymentID).Scan(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
