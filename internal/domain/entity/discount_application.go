package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resultado de un intento de "Apply Discount Now".
const (
	DiscountOutcomeApplied    = "applied"
	DiscountOutcomeNoEligible = "no_eligible_items"
	DiscountOutcomeFailed     = "failed"
)

// DiscountApplication registro de auditoría de cada intento de aplicar descuento.
type DiscountApplication struct {
	ID           string
	CompanyID    string
	UserID       string
	DiscountType string
	Outcome      string
	Message      string
	Items        []DiscountApplicationItem
	CreatedAt    time.Time
}

// DiscountApplicationItem ítem afectado por una aplicación exitosa.
type DiscountApplicationItem struct {
	ItemID             string
	ItemName           string
	SoldCount          decimal.Decimal
	DiscountPercentage decimal.Decimal
}
