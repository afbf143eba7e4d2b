package model

import (
	"time"

	"github.com/google/uuid"
)

// File is an opaque reference to an uploaded object. The byte storage lives
// outside this service; rows here only point attachments at their owners.
type File struct {
	ID             uuid.UUID
	Name           *string
	Path           *string
	Size           *float64
	ContentType    *string
	ProductID      *uuid.UUID
	LoadID         *uuid.UUID
	PaymentID      *uuid.UUID
	RegistrationID *uuid.UUID
	CreatedAt      time.Time
}
