package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

func TestResolvingRegistrationsRequiresAdmin(t *testing.T) {
	svc := NewRegistrationService(nil, zerolog.Nop())
	ctx := context.Background()
	id := uuid.New()

	webOperator := model.Principal{Role: model.RoleOperator, OperatorType: model.OperatorWeb}
	customer := model.Principal{Role: model.RoleCustomer}

	for _, principal := range []model.Principal{webOperator, customer} {
		_, err := svc.Accept(ctx, id, principal)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		_, err = svc.Decline(ctx, id, "incomplete application", principal)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	}
}

func TestIsAdminOperator(t *testing.T) {
	admin := model.Principal{Role: model.RoleOperator, OperatorType: model.OperatorWeb, IsAdmin: true}
	assert.True(t, admin.IsAdminOperator())

	assert.False(t, model.Principal{Role: model.RoleOperator, OperatorType: model.OperatorWeb}.IsAdminOperator())
	assert.False(t, model.Principal{Role: model.RoleCustomer, IsAdmin: true}.IsAdminOperator())
}
