package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrCooldownActive = errors.New("descuento en período de espera")
	ErrUpstream       = errors.New("backend de ventas no disponible")
)
