package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentSuccessful PaymentStatus = "SUCCESSFUL"
	PaymentDeclined   PaymentStatus = "DECLINED"
)

var paymentLabels = map[PaymentStatus]string{
	PaymentSuccessful: "Успешно",
	PaymentDeclined:   "Отклонено",
}

func (s PaymentStatus) Label() string {
	return paymentLabels[s]
}

// Payment records either an operator-forced settlement (IsOperator, created
// already SUCCESSFUL) or a customer claim (created with nil Status, resolved
// by moderation). Once resolved it is immutable history.
type Payment struct {
	ID         uuid.UUID
	LoadID     uuid.UUID
	CustomerID uuid.UUID
	PaidAmount decimal.Decimal
	Status     *PaymentStatus // nil while pending moderation
	IsOperator bool
	Comment    *string // decline reason
	OperatorID *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p *Payment) IsPending() bool {
	return p.Status == nil
}
