package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyDiscountRequest cuerpo de POST /api/dashboard/discount.
// Type se reenvía sin validar al backend ("hour", "item", ...).
type ApplyDiscountRequest struct {
	Type string `json:"type"`
}

// ApplyDiscountResultDTO resultado del intento; Message es el texto que ve el operador.
type ApplyDiscountResultDTO struct {
	Outcome       string            `json:"outcome"`
	Message       string            `json:"message"`
	AffectedItems []AffectedItemDTO `json:"affected_items"`
	Cooldown      CooldownStatusDTO `json:"cooldown"`
	Dashboard     *DashboardViewDTO `json:"dashboard,omitempty"`
}

// AffectedItemDTO ítem al que el backend aplicó descuento.
type AffectedItemDTO struct {
	ItemID             string          `json:"item_id"`
	ItemName           string          `json:"item_name"`
	SoldCount          decimal.Decimal `json:"sold_count"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// DiscountApplicationDTO entrada del historial.
type DiscountApplicationDTO struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	DiscountType  string            `json:"discount_type"`
	Outcome       string            `json:"outcome"`
	Message       string            `json:"message"`
	AffectedItems []AffectedItemDTO `json:"affected_items"`
	CreatedAt     time.Time         `json:"created_at"`
}
