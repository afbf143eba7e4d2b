package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LoadStatus string

const (
	LoadNotPaid       LoadStatus = "NOT_PAID"
	LoadPartiallyPaid LoadStatus = "PARTIALLY_PAID"
	LoadPaid          LoadStatus = "PAID"

	// LoadOnModeration is a synthetic, customer-facing status shown while a
	// customer-submitted payment claim awaits moderation. It is never stored.
	LoadOnModeration LoadStatus = "ON_MODERATION"
)

var loadLabels = map[LoadStatus]string{
	LoadNotPaid:       "Не оплачен",
	LoadPartiallyPaid: "Частично оплачен",
	LoadPaid:          "Оплачен",
	LoadOnModeration:  "В модерации",
}

func (s LoadStatus) Label() string {
	return loadLabels[s]
}

type Load struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	Weight       float64
	Cost         decimal.Decimal
	LoadsCount   int
	Status       LoadStatus
	IsActive     bool
	AcceptedByID *uuid.UUID
	AcceptedTime *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LoadAccepted is an append-only audit row, one per consolidation event.
type LoadAccepted struct {
	ID           uuid.UUID
	LoadID       uuid.UUID
	AcceptedByID uuid.UUID
	AcceptedTime time.Time
}
