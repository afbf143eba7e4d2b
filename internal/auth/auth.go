package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/abd-Kabir/cargo-bot/internal/model"
)

type Claims struct {
	jwt.RegisteredClaims
	Role         string `json:"role"`
	OperatorType string `json:"operator_type,omitempty"`
	Warehouse    string `json:"warehouse,omitempty"`
	IsAdmin      bool   `json:"is_admin,omitempty"`
	CustomerID   string `json:"customer_id,omitempty"`
	FullName     string `json:"full_name,omitempty"`
}

type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

// Parse validates an access token and decodes it into a Principal.
func (p *Parser) Parse(tokenString string) (model.Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return model.Principal{}, err
	}
	if !token.Valid {
		return model.Principal{}, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, fmt.Errorf("invalid subject: %w", err)
	}

	principal := model.Principal{
		UserID:       userID,
		Role:         model.Role(claims.Role),
		OperatorType: model.OperatorType(claims.OperatorType),
		Warehouse:    model.Warehouse(claims.Warehouse),
		IsAdmin:      claims.IsAdmin,
		FullName:     claims.FullName,
	}
	if claims.CustomerID != "" {
		customerID, err := uuid.Parse(claims.CustomerID)
		if err != nil {
			return model.Principal{}, fmt.Errorf("invalid customer_id: %w", err)
		}
		principal.CustomerID = &customerID
	}
	return principal, nil
}
