package model

import "github.com/google/uuid"

type Role string

const (
	RoleOperator Role = "OPERATOR"
	RoleCustomer Role = "CUSTOMER"
)

type OperatorType string

const (
	OperatorWeb      OperatorType = "WEB"
	OperatorTelegram OperatorType = "TELEGRAM"
)

type Warehouse string

const (
	WarehouseTashkent Warehouse = "TASHKENT"
	WarehouseChina    Warehouse = "CHINA"
)

// Principal is the authenticated caller decoded from the access token.
// CustomerID is set only for customer sessions.
type Principal struct {
	UserID       uuid.UUID
	Role         Role
	OperatorType OperatorType
	Warehouse    Warehouse
	IsAdmin      bool
	CustomerID   *uuid.UUID
	FullName     string
}

func (p Principal) IsOperator() bool {
	return p.Role == RoleOperator
}

func (p Principal) IsCustomer() bool {
	return p.Role == RoleCustomer
}

func (p Principal) IsWebOperator() bool {
	return p.IsOperator() && p.OperatorType == OperatorWeb
}

// IsAdminOperator gates the actions that change other users' standing, such
// as resolving registration applications.
func (p Principal) IsAdminOperator() bool {
	return p.IsOperator() && p.IsAdmin
}

func (p Principal) IsTashkentOperator() bool {
	return p.IsOperator() && p.OperatorType == OperatorTelegram && p.Warehouse == WarehouseTashkent
}

func (p Principal) IsChinaOperator() bool {
	return p.IsOperator() && p.OperatorType == OperatorTelegram && p.Warehouse == WarehouseChina
}
