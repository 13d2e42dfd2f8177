package model

import "time"

// CreditCard guarda a configuração de ciclo do cartão. Não é um razão: o
// used_limit persistido é apenas projeção e é sempre rederivado do histórico
// de transações antes de qualquer uso.
type CreditCard struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Limit      float64   `json:"card_limit"`
	UsedLimit  float64   `json:"used_limit"`
	ClosingDay int       `json:"closing_day"`
	DueDay     int       `json:"due_day"`
	BestBuyDay int       `json:"best_buy_day"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// DefaultBestBuyDay é usado quando não há cartão configurado.
const DefaultBestBuyDay = 7

// Validate confere os dias de ciclo do cartão.
func (c *CreditCard) Validate() error {
	if c.Limit < 0 {
		return &ValidationError{Field: "card_limit", Reason: "não pode ser negativo"}
	}
	for field, day := range map[string]int{
		"closing_day":  c.ClosingDay,
		"due_day":      c.DueDay,
		"best_buy_day": c.BestBuyDay,
	} {
		if day < 1 || day > 31 {
			return &ValidationError{Field: field, Reason: "deve estar entre 1 e 31"}
		}
	}
	return nil
}
