package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseOperatorToken(t *testing.T) {
	userID := uuid.New()
	tokenString := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role:         string(model.RoleOperator),
		OperatorType: string(model.OperatorTelegram),
		Warehouse:    string(model.WarehouseTashkent),
		FullName:     "Operator One",
	}, testSecret)

	principal, err := NewParser(testSecret).Parse(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.True(t, principal.IsTashkentOperator())
	assert.False(t, principal.IsChinaOperator())
	assert.Nil(t, principal.CustomerID)
}

func TestParseCustomerToken(t *testing.T) {
	userID := uuid.New()
	customerID := uuid.New()
	tokenString := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role:       string(model.RoleCustomer),
		CustomerID: customerID.String(),
	}, testSecret)

	principal, err := NewParser(testSecret).Parse(tokenString)
	require.NoError(t, err)
	assert.True(t, principal.IsCustomer())
	require.NotNil(t, principal.CustomerID)
	assert.Equal(t, customerID, *principal.CustomerID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tokenString := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: string(model.RoleOperator),
	}, "other-secret")

	_, err := NewParser(testSecret).Parse(tokenString)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tokenString := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		Role: string(model.RoleOperator),
	}, testSecret)

	_, err := NewParser(testSecret).Parse(tokenString)
	assert.Error(t, err)
}
