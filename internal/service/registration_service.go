package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/abd-Kabir/cargo-bot/internal/model"
	"github.com/abd-Kabir/cargo-bot/internal/repository"
)

// RegistrationService moderates customer onboarding applications. A finished
// application waits for exactly one accept or decline; the transition is
// single-shot and never reversed.
type RegistrationService struct {
	store *repository.Store
	log   zerolog.Logger
}

func NewRegistrationService(store *repository.Store, log zerolog.Logger) *RegistrationService {
	return &RegistrationService{store: store, log: log}
}

func (s *RegistrationService) List(ctx context.Context, principal model.Principal) ([]model.CustomerRegistration, error) {
	if !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}
	return s.store.ListRegistrations(ctx)
}

func (s *RegistrationService) Accept(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.CustomerRegistration, error) {
	if !principal.IsAdminOperator() {
		return nil, ErrPermissionDenied
	}

	var reg *model.CustomerRegistration
	err := s.store.InTransaction(ctx, func(tx *repository.Store) error {
		var err error
		reg, err = tx.RegistrationForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: registration %s", ErrNotFound, id)
			}
			return err
		}
		if reg.Status != model.RegistrationWaiting {
			return fmt.Errorf("%w: registration %s", ErrAlreadyProcessed, id)
		}

		if err := tx.ResolveRegistration(ctx, reg.ID, model.RegistrationAccepted, nil); err != nil {
			return err
		}
		if reg.CustomerID != nil {
			if err := tx.ActivateCustomer(ctx, *reg.CustomerID, principal.UserID, time.Now().UTC()); err != nil {
				return err
			}
		}
		reg.Status = model.RegistrationAccepted
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("registration_id", reg.ID.String()).Msg("registration accepted")
	return reg, nil
}

func (s *RegistrationService) Decline(ctx context.Context, id uuid.UUID, rejectMessage string, principal model.Principal) (*model.CustomerRegistration, error) {
	if !principal.IsAdminOperator() {
		return nil, ErrPermissionDenied
	}
	if rejectMessage == "" {
		return nil, fmt.Errorf("%w: reject message is required", ErrInvalidInput)
	}

	var reg *model.CustomerRegistration
	err := s.store.InTransaction(ctx, func(tx *repository.Store) error {
		var err error
		reg, err = tx.RegistrationForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: registration %s", ErrNotFound, id)
			}
			return err
		}
		if reg.Status != model.RegistrationWaiting {
			return fmt.Errorf("%w: registration %s", ErrAlreadyProcessed, id)
		}

		if err := tx.ResolveRegistration(ctx, reg.ID, model.RegistrationNotAccepted, &rejectMessage); err != nil {
			return err
		}
		if reg.CustomerID != nil {
			if err := tx.StampCustomerAccepted(ctx, *reg.CustomerID, principal.UserID, time.Now().UTC()); err != nil {
				return err
			}
		}
		reg.Status = model.RegistrationNotAccepted
		reg.RejectMessage = &rejectMessage
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("registration_id", reg.ID.String()).Msg("registration declined")
	return reg, nil
}
