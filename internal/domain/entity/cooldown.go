package entity

import "time"

// DefaultCooldownWindow duración del bloqueo tras aplicar un descuento (3.600.000 ms).
const DefaultCooldownWindow = time.Hour

// CooldownState es el único estado persistente del dashboard: el instante en que
// se disparó el último descuento. La ausencia del estado (nil) significa "sin cooldown".
//
// No hay temporizadores: si el cooldown sigue activo se decide comparando el reloj
// con ExpiresAt en cada lectura.
type CooldownState struct {
	Key         string
	TriggeredAt time.Time
}

// NewCooldownState crea el estado para un disparo en el instante now.
// Se trunca a milisegundos porque es la resolución con la que se persiste.
func NewCooldownState(key string, now time.Time) *CooldownState {
	return &CooldownState{Key: key, TriggeredAt: now.Truncate(time.Millisecond)}
}

// TriggeredAtMillis instante del disparo en epoch milisegundos.
func (s *CooldownState) TriggeredAtMillis() int64 {
	return s.TriggeredAt.UnixMilli()
}

// Elapsed tiempo transcurrido desde el disparo. Puede ser negativo si el reloj
// que escribió el estado iba adelantado.
func (s *CooldownState) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.TriggeredAt)
}

// Active indica si el cooldown sigue vigente: elapsed < window.
func (s *CooldownState) Active(now time.Time, window time.Duration) bool {
	return s.Elapsed(now) < window
}

// Remaining tiempo que falta para que expire; 0 si ya expiró.
// Un disparo con fecha futura cuenta como recién disparado (nunca más de window).
func (s *CooldownState) Remaining(now time.Time, window time.Duration) time.Duration {
	elapsed := s.Elapsed(now)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= window {
		return 0
	}
	return window - elapsed
}

// ExpiresAt instante en que el botón vuelve a habilitarse.
func (s *CooldownState) ExpiresAt(now time.Time, window time.Duration) time.Time {
	return now.Add(s.Remaining(now, window))
}
