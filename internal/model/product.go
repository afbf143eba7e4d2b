package model

import (
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	ProductNotLoaded ProductStatus = "NOT_LOADED"
	ProductDelivered ProductStatus = "DELIVERED"
	ProductLoaded    ProductStatus = "LOADED"
	ProductOnWay     ProductStatus = "ON_WAY"
	ProductDone      ProductStatus = "DONE"
)

// AllProductStatuses lists every state in lifecycle order. Display and
// transition tables are checked against it in tests.
var AllProductStatuses = []ProductStatus{
	ProductNotLoaded,
	ProductDelivered,
	ProductLoaded,
	ProductOnWay,
	ProductDone,
}

// productNext maps each state to its only allowed successor. The lifecycle
// is one-directional, no skipping: NOT_LOADED -> DELIVERED -> LOADED ->
// ON_WAY -> DONE.
var productNext = map[ProductStatus]ProductStatus{
	ProductNotLoaded: ProductDelivered,
	ProductDelivered: ProductLoaded,
	ProductLoaded:    ProductOnWay,
	ProductOnWay:     ProductDone,
}

func (s ProductStatus) Valid() bool {
	for _, known := range AllProductStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CanAdvanceTo reports whether target is the direct successor of s.
func (s ProductStatus) CanAdvanceTo(target ProductStatus) bool {
	next, ok := productNext[s]
	return ok && next == target
}

type StatusDisplay struct {
	Status ProductStatus `json:"status"`
	Label  string        `json:"label"`
}

var productLabels = map[ProductStatus]string{
	ProductNotLoaded: "Не загружен",
	ProductDelivered: "Принят в Ташкенте",
	ProductLoaded:    "Загружен",
	ProductOnWay:     "В пути",
	ProductDone:      "Доставлен",
}

// Display returns the operator-facing status variant.
func (s ProductStatus) Display() StatusDisplay {
	return StatusDisplay{Status: s, Label: productLabels[s]}
}

// customerDisplay maps each state to the variant customers see. The
// customer-visible vocabulary collapses "accepted but not yet in a load"
// into NOT_LOADED, so DELIVERED renders with the NOT_LOADED pair.
var customerDisplay = map[ProductStatus]StatusDisplay{
	ProductNotLoaded: {ProductNotLoaded, productLabels[ProductNotLoaded]},
	ProductDelivered: {ProductNotLoaded, productLabels[ProductNotLoaded]},
	ProductLoaded:    {ProductLoaded, productLabels[ProductLoaded]},
	ProductOnWay:     {ProductOnWay, productLabels[ProductOnWay]},
	ProductDone:      {ProductDone, productLabels[ProductDone]},
}

// CustomerDisplay returns the customer-facing status variant.
func (s ProductStatus) CustomerDisplay() StatusDisplay {
	return customerDisplay[s]
}

type Product struct {
	ID                   uuid.UUID
	Barcode              string
	CustomerID           *uuid.UUID // nil for homeless products
	LoadID               *uuid.UUID
	Status               ProductStatus
	IsHomeless           bool
	AcceptedByChinaID    *uuid.UUID
	AcceptedTimeChina    *time.Time
	AcceptedByTashkentID *uuid.UUID
	AcceptedTimeTashkent *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
