package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

const customerColumns = `
	id, prefix, code, debt, phone_number, tg_id, language, user_type,
	full_name, accepted_by_id, accepted_time, is_active, created_at, updated_at
`

func (s *Store) CustomerByCode(ctx context.Context, prefix, code string) (*model.Customer, error) {
	var customer model.Customer
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+customerColumns+`
		FROM customers
		WHERE prefix = ? AND code = ?
		LIMIT 1
	`, prefix, code).Scan(&customer).Error; err != nil {
		return nil, err
	}
	if customer.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &customer, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Exec(`
		INSERT INTO customers (
			id, prefix, code, debt, phone_number, tg_id, language, user_type,
			full_name, is_active
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Prefix, c.Code, c.Debt, c.PhoneNumber, c.TgID, c.Language,
		c.UserType, c.FullName, c.IsActive).Error
}

func (s *Store) CustomerByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+customerColumns+`
		FROM customers
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&customer).Error; err != nil {
		return nil, err
	}
	if customer.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &customer, nil
}

// CustomerForUpdate locks the customer row for the rest of the transaction.
// Debt and active-load mutations must go through this lock so that two
// concurrent consolidations against one customer serialize instead of
// overwriting each other.
func (s *Store) CustomerForUpdate(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := s.db.WithContext(ctx).Raw(`
		SELECT `+customerColumns+`
		FROM customers
		WHERE id = ?
		FOR UPDATE
	`, id).Scan(&customer).Error; err != nil {
		return nil, err
	}
	if customer.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &customer, nil
}

func (s *Store) SaveCustomerDebt(ctx context.Context, id uuid.UUID, debt decimal.Decimal) error {
	return s.db.WithContext(ctx).Exec(`
		UPDATE customers
		SET debt = ?, updated_at = NOW()
		WHERE id = ?
	`, debt, id).Error
}

// ActivateCustomer marks the customer usable and stamps the approving
// operator. Used when a registration application is accepted.
func (s *Store) ActivateCustomer(ctx context.Context, id, operatorID uuid.UUID, at time.Time) error {
	return s.db.WithContext(ctx).Exec(`
		UPDATE customers
		SET is_active = TRUE, accepted_by_id = ?, accepted_time = ?, updated_at = NOW()
		WHERE id = ?
	`, operatorID, at, id).Error
}

func (s *Store) StampCustomerAccepted(ctx context.Context, id, operatorID uuid.UUID, at time.Time) error {
	return s.db.WithContext(ctx).Exec(`
		UPDATE customers
		SET accepted_by_id = ?, accepted_time = ?, updated_at = NOW()
		WHERE id = ?
	`, operatorID, at, id).Error
}
