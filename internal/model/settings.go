package model

import "time"

// Settings é a linha única de preferências do usuário.
type Settings struct {
	ID                string    `json:"id"`
	UserID            int64     `json:"user_id"`
	ReservePercentage float64   `json:"reserve_percentage"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

// DefaultReservePercentage é aplicado enquanto não existe linha de settings.
const DefaultReservePercentage = 10

// Validate confere o percentual de reserva.
func (s *Settings) Validate() error {
	if s.ReservePercentage < 0 || s.ReservePercentage > 100 {
		return &ValidationError{Field: "reserve_percentage", Reason: "deve estar entre 0 e 100"}
	}
	return nil
}
