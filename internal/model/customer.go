package model

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserType string

const (
	UserTypeAuto UserType = "AUTO" // ground shipment
	UserTypeAvia UserType = "AVIA" // air shipment
)

func (t UserType) Valid() bool {
	return t == UserTypeAuto || t == UserTypeAvia
}

type Customer struct {
	ID           uuid.UUID
	Prefix       string
	Code         string
	Debt         decimal.Decimal
	PhoneNumber  *string
	TgID         *string
	Language     string
	UserType     UserType
	FullName     string
	AcceptedByID *uuid.UUID
	AcceptedTime *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullCode is the public customer identity, e.g. "GG0042".
func (c *Customer) FullCode() string {
	return c.Prefix + c.Code
}

// SplitCustomerCode separates a combined identity like "GG0042" into the
// letter prefix and the numeric code. The split is at the first digit
// rather than a fixed width, so it handles two and three letter prefixes
// alike; prefixes are alphabetic and codes start with a digit.
func SplitCustomerCode(combined string) (prefix, code string) {
	combined = strings.TrimSpace(combined)
	for i, r := range combined {
		if unicode.IsDigit(r) {
			return combined[:i], combined[i:]
		}
	}
	return combined, ""
}
