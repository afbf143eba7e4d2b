package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read-side rows joined across entities for list endpoints and exports.

type ProductListRow struct {
	ID             uuid.UUID
	Barcode        string
	Status         ProductStatus
	CustomerPrefix string
	CustomerCode   string
	IsHomeless     bool
	UpdatedAt      time.Time
}

func (r ProductListRow) CustomerFullCode() string {
	return r.CustomerPrefix + r.CustomerCode
}

type LoadListRow struct {
	ID             uuid.UUID
	CustomerPrefix string
	CustomerCode   string
	Weight         float64
	Cost           decimal.Decimal
	LoadsCount     int
	Status         LoadStatus
	IsActive       bool
	UpdatedAt      time.Time
}

func (r LoadListRow) CustomerFullCode() string {
	return r.CustomerPrefix + r.CustomerCode
}

// PaymentApplication is a payment claim joined with its customer, as shown
// in moderation lists and on the moderation card.
type PaymentApplication struct {
	ID             uuid.UUID
	LoadID         uuid.UUID
	CustomerID     uuid.UUID
	CustomerPrefix string
	CustomerCode   string
	CustomerDebt   decimal.Decimal
	PaidAmount     decimal.Decimal
	Status         *PaymentStatus
	IsOperator     bool
	Comment        *string
	CreatedAt      time.Time
}

func (a PaymentApplication) CustomerFullCode() string {
	return a.CustomerPrefix + a.CustomerCode
}

// OperatorDailyStats counts today's work for one operator.
type OperatorDailyStats struct {
	Products int64 `json:"products"`
	Loads    int64 `json:"loads"`
}

// CustomerStats is the bot profile summary card.
type CustomerStats struct {
	FullName       string          `json:"full_name"`
	CustomerID     string          `json:"customer_id"`
	Weight         float64         `json:"weight"`
	ProductsOnWay  int64           `json:"products_on_way"`
	ProductsLoaded int64           `json:"products_loaded"`
	Debt           decimal.Decimal `json:"debt"`
}
