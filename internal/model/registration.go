package model

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationStatus string

const (
	RegistrationWaiting     RegistrationStatus = "WAITING"
	RegistrationAccepted    RegistrationStatus = "ACCEPTED"
	RegistrationNotAccepted RegistrationStatus = "NOT_ACCEPTED"
)

var registrationLabels = map[RegistrationStatus]string{
	RegistrationWaiting:     "В ожидании",
	RegistrationAccepted:    "Принят",
	RegistrationNotAccepted: "Отклонён",
}

func (s RegistrationStatus) Label() string {
	return registrationLabels[s]
}

// CustomerRegistration tracks bot onboarding. Transitions are single-shot:
// WAITING -> ACCEPTED or WAITING -> NOT_ACCEPTED, never reversed.
type CustomerRegistration struct {
	ID            uuid.UUID
	CustomerID    *uuid.UUID
	Status        RegistrationStatus
	RejectMessage *string
	Step          int
	Done          bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
