package ports

import (
	"context"
	"time"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/dto"
)

// DiscountAppliedEvent se publica cuando el backend aplicó descuento a al menos un ítem.
type DiscountAppliedEvent struct {
	ApplicationID string                `json:"application_id"`
	CompanyID     string                `json:"company_id"`
	UserID        string                `json:"user_id"`
	DiscountType  string                `json:"discount_type"`
	AffectedItems []dto.AffectedItemDTO `json:"affected_items"`
	AppliedAt     time.Time             `json:"applied_at"`
}

// EventPublisher puerto de salida hacia el broker.
type EventPublisher interface {
	PublishDiscountApplied(ctx context.Context, event DiscountAppliedEvent) error
}
