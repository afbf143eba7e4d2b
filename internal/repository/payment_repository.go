package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

const paymentColumns = `
	id, load_id, customer_id, paid_amount, status, is_operator,
	comment, operator_id, created_at, updated_at
`

func (s *Store) CreatePayment(ctx context.Context, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Exec(`
		INSERT INTO payments (
			id, load_id, customer_id, paid_amount, status, is_operator,
			comment, operator_id
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.LoadID, p.CustomerID, p.PaidAmount, p.Status, p.IsOperator,
		p.Comment, p.OperatorID).Error
}

func (s *Store) PaymentByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&payment).Error; err != nil {
		return nil, err
	}
	if payment.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &payment, nil
}

// PaymentForUpdate locks the claim row so two moderators cannot resolve the
// same application at once.
func (s *Store) PaymentForUpdate(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = ?
		FOR UPDATE
	`, id).Scan(&payment).Error; err != nil {
		return nil, err
	}
	if payment.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &payment, nil
}

func (s *Store) ResolvePayment(ctx context.Context, id uuid.UUID, status model.PaymentStatus, comment *string, operatorID uuid.UUID) error {
	return s.db.WithContext(ctx).Exec(`
		UPDATE payments
		SET status = ?, comment = COALESCE(?, comment), operator_id = ?, updated_at = NOW()
		WHERE id = ?
	`, status, comment, operatorID, id).Error
}

const paymentApplicationQuery = `
	SELECT
		p.id,
		p.load_id,
		p.customer_id,
		c.prefix AS customer_prefix,
		c.code AS customer_code,
		c.debt AS customer_debt,
		p.paid_amount,
		p.status,
		p.is_operator,
		p.comment,
		p.created_at
	FROM payments p
	JOIN customers c ON c.id = p.customer_id
`

func (s *Store) PendingApplications(ctx context.Context) ([]model.PaymentApplication, error) {
	var rows []model.PaymentApplication
	if err := s.db.WithContext(ctx).Raw(paymentApplicationQuery+`
		WHERE p.status IS NULL AND NOT p.is_operator
		ORDER BY p.created_at ASC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) ProcessedApplications(ctx context.Context) ([]model.PaymentApplication, error) {
	var rows []model.PaymentApplication
	if err := s.db.WithContext(ctx).Raw(paymentApplicationQuery+`
		WHERE p.status IS NOT NULL AND NOT p.is_operator
		ORDER BY p.updated_at DESC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) ApplicationByID(ctx context.Context, id uuid.UUID) (*model.PaymentApplication, error) {
	var row model.PaymentApplication
	if err := s.db.WithContext(ctx).Raw(paymentApplicationQuery+`
		WHERE p.id = ?
		LIMIT 1
	`, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// HasPendingCustomerPayment reports whether a customer-submitted claim on
// the load still awaits moderation.
func (s *Store) HasPendingCustomerPayment(ctx context.Context, loadID uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM payments
		WHERE load_id = ? AND status IS NULL AND NOT is_operator
	`, loadID).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
