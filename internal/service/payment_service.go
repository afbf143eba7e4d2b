package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/abd-Kabir/cargo-bot/internal/model"
	"github.com/abd-Kabir/cargo-bot/internal/repository"
)

// Notifier forwards settlement outcomes to the excluded bot layer. Calls
// must not block request handling; implementations swallow delivery errors.
type Notifier interface {
	PaymentResolved(customer *model.Customer, payment *model.Payment)
}

type PaymentService struct {
	store    *repository.Store
	notifier Notifier
	log      zerolog.Logger
}

func NewPaymentService(store *repository.Store, notifier Notifier, log zerolog.Logger) *PaymentService {
	return &PaymentService{store: store, notifier: notifier, log: log}
}

// deriveLoadStatus is the payment-status rule applied whenever debt changes.
// It is a pure function of (debt, cost): all-cleared is PAID, nothing paid
// is NOT_PAID, anything in between is PARTIALLY_PAID.
func deriveLoadStatus(debt, cost decimal.Decimal) model.LoadStatus {
	switch {
	case debt.IsZero():
		return model.LoadPaid
	case debt.Equal(cost):
		return model.LoadNotPaid
	default:
		return model.LoadPartiallyPaid
	}
}

// ensurePending guards moderation against double processing. A resolved
// claim is immutable history; retrying always fails, never re-applies.
func ensurePending(p *model.Payment) error {
	if !p.IsPending() {
		return fmt.Errorf("%w: payment %s", ErrAlreadyProcessed, p.ID)
	}
	return nil
}

type SettlementResult struct {
	Payment *model.Payment
	Load    *model.Load
}

// SettleFull records an operator-forced payment for the entire current debt
// of the load's customer and zeroes the debt.
func (s *PaymentService) SettleFull(ctx context.Context, loadID uuid.UUID, principal model.Principal) (*SettlementResult, error) {
	if !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	var result SettlementResult
	err := s.store.InTransaction(ctx, func(tx *repository.Store) error {
		load, err := tx.LoadByID(ctx, loadID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: load %s", ErrNotFound, loadID)
			}
			return err
		}

		customer, err := tx.CustomerForUpdate(ctx, load.CustomerID)
		if err != nil {
			return err
		}

		status := model.PaymentSuccessful
		payment := &model.Payment{
			LoadID:     load.ID,
			CustomerID: customer.ID,
			PaidAmount: customer.Debt,
			Status:     &status,
			IsOperator: true,
			OperatorID: &principal.UserID,
		}
		if err := tx.CreatePayment(ctx, payment); err != nil {
			return err
		}

		if err := tx.SaveCustomerDebt(ctx, customer.ID, decimal.Zero); err != nil {
			return err
		}

		load.Status = deriveLoadStatus(decimal.Zero, load.Cost)
		if err := tx.SaveLoad(ctx, load); err != nil {
			return err
		}

		result = SettlementResult{Payment: payment, Load: load}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("load_id", result.Load.ID.String()).
		Str("amount", result.Payment.PaidAmount.String()).
		Msg("debt settled by operator")
	return &result, nil
}

// SettleFullByCustomer resolves the customer's active load and settles it.
func (s *PaymentService) SettleFullByCustomer(ctx context.Context, customerCode string, principal model.Principal) (*SettlementResult, error) {
	prefix, code := model.SplitCustomerCode(customerCode)
	customer, err := s.store.CustomerByCode(ctx, prefix, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %s", ErrNotFound, customerCode)
		}
		return nil, err
	}
	load, err := s.store.ActiveLoad(ctx, customer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %s has no active load", ErrNotFound, customerCode)
		}
		return nil, err
	}
	return s.SettleFull(ctx, load.ID, principal)
}

type SubmitClaimInput struct {
	Amount    decimal.Decimal
	FileIDs   []uuid.UUID
	Principal model.Principal
}

// SubmitClaim creates a pending payment application against the customer's
// active load. Debt is untouched until moderation approves the claim.
func (s *PaymentService) SubmitClaim(ctx context.Context, input SubmitClaimInput) (*model.Payment, error) {
	if !input.Principal.IsCustomer() || input.Principal.CustomerID == nil {
		return nil, ErrPermissionDenied
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: paid amount must be positive", ErrInvalidInput)
	}

	load, err := s.store.ActiveLoad(ctx, *input.Principal.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no active load to pay for", ErrNotFound)
		}
		return nil, err
	}

	payment := &model.Payment{
		LoadID:     load.ID,
		CustomerID: load.CustomerID,
		PaidAmount: input.Amount,
		IsOperator: false,
	}
	err = s.store.InTransaction(ctx, func(tx *repository.Store) error {
		if err := tx.CreatePayment(ctx, payment); err != nil {
			return err
		}
		return tx.AttachFilesToPayment(ctx, input.FileIDs, payment.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("payment_id", payment.ID.String()).Msg("payment claim submitted")
	return payment, nil
}

// Approve applies a pending claim: the claimed amount is taken off the
// customer's debt (floored at zero) and the load status is recomputed.
func (s *PaymentService) Approve(ctx context.Context, paymentID uuid.UUID, principal model.Principal) (*model.Payment, error) {
	if !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}

	var resolved *model.Payment
	var customer *model.Customer
	err := s.store.InTransaction(ctx, func(tx *repository.Store) error {
		payment, err := tx.PaymentForUpdate(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
			}
			return err
		}
		if err := ensurePending(payment); err != nil {
			return err
		}

		customer, err = tx.CustomerForUpdate(ctx, payment.CustomerID)
		if err != nil {
			return err
		}
		load, err := tx.LoadByID(ctx, payment.LoadID)
		if err != nil {
			return err
		}

		debt := customer.Debt.Sub(payment.PaidAmount)
		if debt.IsNegative() {
			debt = decimal.Zero
		}

		if err := tx.ResolvePayment(ctx, payment.ID, model.PaymentSuccessful, nil, principal.UserID); err != nil {
			return err
		}
		if err := tx.SaveCustomerDebt(ctx, customer.ID, debt); err != nil {
			return err
		}
		load.Status = deriveLoadStatus(debt, load.Cost)
		if err := tx.SaveLoad(ctx, load); err != nil {
			return err
		}

		status := model.PaymentSuccessful
		payment.Status = &status
		payment.OperatorID = &principal.UserID
		customer.Debt = debt
		resolved = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go s.notifier.PaymentResolved(customer, resolved)
	}
	s.log.Info().Str("payment_id", resolved.ID.String()).Msg("payment claim approved")
	return resolved, nil
}

// Decline rejects a pending claim with a reason. Debt and load are not
// touched.
func (s *PaymentService) Decline(ctx context.Context, paymentID uuid.UUID, reason string, principal model.Principal) (*model.Payment, error) {
	if !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: decline reason is required", ErrInvalidInput)
	}

	var resolved *model.Payment
	var customer *model.Customer
	err := s.store.InTransaction(ctx, func(tx *repository.Store) error {
		payment, err := tx.PaymentForUpdate(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
			}
			return err
		}
		if err := ensurePending(payment); err != nil {
			return err
		}

		customer, err = tx.CustomerByID(ctx, payment.CustomerID)
		if err != nil {
			return err
		}

		if err := tx.ResolvePayment(ctx, payment.ID, model.PaymentDeclined, &reason, principal.UserID); err != nil {
			return err
		}

		status := model.PaymentDeclined
		payment.Status = &status
		payment.Comment = &reason
		payment.OperatorID = &principal.UserID
		resolved = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go s.notifier.PaymentResolved(customer, resolved)
	}
	s.log.Info().Str("payment_id", resolved.ID.String()).Msg("payment claim declined")
	return resolved, nil
}

func (s *PaymentService) PendingApplications(ctx context.Context, principal model.Principal) ([]model.PaymentApplication, error) {
	if !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}
	return s.store.PendingApplications(ctx)
}

func (s *PaymentService) ProcessedApplications(ctx context.Context, principal model.Principal) ([]model.PaymentApplication, error) {
	if !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}
	return s.store.ProcessedApplications(ctx)
}

func (s *PaymentService) Application(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.PaymentApplication, []model.File, error) {
	if !principal.IsOperator() {
		return nil, nil, ErrPermissionDenied
	}
	app, err := s.store.ApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: application %s", ErrNotFound, id)
		}
		return nil, nil, err
	}
	files, err := s.store.FilesByPayment(ctx, app.ID)
	if err != nil {
		return nil, nil, err
	}
	return app, files, nil
}

type Receipt struct {
	Payment  *model.Payment
	Customer *model.Customer
	Load     *model.Load
}

// ReceiptData gathers everything the PDF receipt needs for a resolved
// payment.
func (s *PaymentService) ReceiptData(ctx context.Context, paymentID uuid.UUID, principal model.Principal) (*Receipt, error) {
	if !principal.IsWebOperator() {
		return nil, ErrPermissionDenied
	}
	payment, err := s.store.PaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
		}
		return nil, err
	}
	if payment.IsPending() {
		return nil, fmt.Errorf("%w: payment is still on moderation", ErrInvalidInput)
	}
	customer, err := s.store.CustomerByID(ctx, payment.CustomerID)
	if err != nil {
		return nil, err
	}
	load, err := s.store.LoadByID(ctx, payment.LoadID)
	if err != nil {
		return nil, err
	}
	return &Receipt{Payment: payment, Customer: customer, Load: load}, nil
}
