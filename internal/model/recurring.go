package model

import (
	"strings"
	"time"
)

// RecurringExpense é um modelo de conta do mês (luz, aluguel, internet...).
// Não entra no orçamento por si só: serve para lançar uma Transaction
// equivalente a cada mês. O pareamento "já paga este mês" é feito por
// igualdade de nome sem diferenciar maiúsculas.
type RecurringExpense struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	BaseAmount float64   `json:"base_amount"`
	Category   Category  `json:"category"`
	IsVariable bool      `json:"is_variable"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// Validate confere o modelo de conta recorrente.
func (r *RecurringExpense) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" || len([]rune(name)) > 200 {
		return &ValidationError{Field: "name", Reason: "deve ter entre 1 e 200 caracteres"}
	}
	if r.BaseAmount < 0 || r.BaseAmount > MaxAmount {
		return &ValidationError{Field: "base_amount", Reason: "deve ser não negativo e no máximo 1e9"}
	}
	if !r.Category.ValidFor(TypeExpense) {
		return &ValidationError{Field: "category", Reason: "deve ser uma categoria de despesa"}
	}
	return nil
}

// MatchesPaid informa se o lançamento corresponde a esta conta recorrente.
func (r *RecurringExpense) MatchesPaid(t *Transaction) bool {
	return t.Type == TypeExpense && strings.EqualFold(strings.TrimSpace(t.Name), strings.TrimSpace(r.Name))
}
