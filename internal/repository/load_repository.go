package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

const loadColumns = `
	id, customer_id, weight, cost, loads_count, status, is_active,
	accepted_by_id, accepted_time, created_at, updated_at
`

func (s *Store) LoadByID(ctx context.Context, id uuid.UUID) (*model.Load, error) {
	var load model.Load
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+loadColumns+`
		FROM loads
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&load).Error; err != nil {
		return nil, err
	}
	if load.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &load, nil
}

func (s *Store) ActiveLoad(ctx context.Context, customerID uuid.UUID) (*model.Load, error) {
	var load model.Load
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+loadColumns+`
		FROM loads
		WHERE customer_id = ? AND is_active
		LIMIT 1
	`, customerID).Scan(&load).Error; err != nil {
		return nil, err
	}
	if load.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &load, nil
}

// ActiveLoadForUpdate locks the customer's open load so a concurrent
// consolidation or settlement cannot interleave its read-modify-write.
func (s *Store) ActiveLoadForUpdate(ctx context.Context, customerID uuid.UUID) (*model.Load, error) {
	var load model.Load
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+loadColumns+`
		FROM loads
		WHERE customer_id = ? AND is_active
		FOR UPDATE
	`, customerID).Scan(&load).Error; err != nil {
		return nil, err
	}
	if load.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &load, nil
}

func (s *Store) CreateLoad(ctx context.Context, l *model.Load) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Exec(`
		INSERT INTO loads (
			id, customer_id, weight, cost, loads_count, status, is_active,
			accepted_by_id, accepted_time
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.CustomerID, l.Weight, l.Cost, l.LoadsCount, l.Status, l.IsActive,
		l.AcceptedByID, l.AcceptedTime).Error
}

func (s *Store) SaveLoad(ctx context.Context, l *model.Load) error {
	return s.db.WithContext(ctx).Exec(`
		UPDATE loads
		SET weight = ?, cost = ?, loads_count = ?, status = ?, is_active = ?,
			accepted_by_id = ?, accepted_time = ?, updated_at = NOW()
		WHERE id = ?
	`, l.Weight, l.Cost, l.LoadsCount, l.Status, l.IsActive,
		l.AcceptedByID, l.AcceptedTime, l.ID).Error
}

func (s *Store) CustomerLoads(ctx context.Context, customerID uuid.UUID) ([]model.Load, error) {
	var loads []model.Load
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+loadColumns+`
		FROM loads
		WHERE customer_id = ?
		ORDER BY created_at DESC
	`, customerID).Scan(&loads).Error; err != nil {
		return nil, err
	}
	return loads, nil
}

func (s *Store) ListLoads(ctx context.Context) ([]model.LoadListRow, error) {
	var rows []model.LoadListRow
	if err := s.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			c.prefix AS customer_prefix,
			c.code AS customer_code,
			l.weight,
			l.cost,
			l.loads_count,
			l.status,
			l.is_active,
			l.updated_at
		FROM loads l
		JOIN customers c ON c.id = l.customer_id
		ORDER BY l.updated_at DESC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) AppendLoadAccepted(ctx context.Context, rec *model.LoadAccepted) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Exec(`
		INSERT INTO load_accepted (id, load_id, accepted_by_id, accepted_time)
		VALUES (?, ?, ?, ?)
	`, rec.ID, rec.LoadID, rec.AcceptedByID, rec.AcceptedTime).Error
}

func (s *Store) CountLoadsAcceptedToday(ctx context.Context, operatorID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM load_accepted
		WHERE accepted_by_id = ? AND accepted_time >= CURRENT_DATE
	`, operatorID).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
