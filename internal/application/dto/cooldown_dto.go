package dto

import "time"

// CooldownStatusDTO estado del botón "Apply Discount Now".
type CooldownStatusDTO struct {
	IsDisabled       bool       `json:"is_disabled"`
	ButtonLabel      string     `json:"button_label"`
	TriggeredAt      *time.Time `json:"triggered_at,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	RemainingSeconds int64      `json:"remaining_seconds"`
}
