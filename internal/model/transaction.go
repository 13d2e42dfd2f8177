package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transaction representa um lançamento financeiro. Uma vez persistido nunca é
// alterado; a única escrita multi-registro é a remoção de um grupo de parcelas.
type Transaction struct {
	ID                 string          `json:"id"`
	UserID             int64           `json:"user_id"`
	Name               string          `json:"name"`
	Amount             float64         `json:"amount"`
	Category           Category        `json:"category"`
	Type               TransactionType `json:"type"`
	PaymentType        PaymentType     `json:"payment_type,omitempty"`
	Date               string          `json:"date"` // YYYY-MM-DD
	Installments       int             `json:"installments,omitempty"`
	CurrentInstallment int             `json:"current_installment,omitempty"`
	ParentID           string          `json:"parent_id,omitempty"`
	Reason             string          `json:"reason,omitempty"`
	DestinationType    DestinationType `json:"destination_type,omitempty"`
	CreatedAt          time.Time       `json:"created_at,omitempty"`
}

// GenerateID gera um novo UUID para a transação, se ainda não definido
func (t *Transaction) GenerateID() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
}

// Month retorna o mês de ocorrência do lançamento no formato YYYY-MM.
func (t *Transaction) Month() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// MaxAmount é o teto aceito para o valor de um lançamento.
const MaxAmount = 1e9

// ValidationError indica que a entrada viola o contrato do modelo. A operação
// é abortada antes de qualquer escrita.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validação: campo %s %s", e.Field, e.Reason)
}

// ParseDate interpreta uma data YYYY-MM-DD pelos componentes de calendário,
// sem fuso horário. Construtores sensíveis a fuso causavam deslocamento de um
// dia perto da virada do mês.
func ParseDate(date string) (year, month, day int, err error) {
	if len(date) != 10 {
		return 0, 0, 0, &ValidationError{Field: "date", Reason: "fora do formato YYYY-MM-DD"}
	}
	if _, err := fmt.Sscanf(date, "%4d-%2d-%2d", &year, &month, &day); err != nil {
		return 0, 0, 0, &ValidationError{Field: "date", Reason: "fora do formato YYYY-MM-DD"}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, &ValidationError{Field: "date", Reason: "fora do formato YYYY-MM-DD"}
	}
	return year, month, day, nil
}

// Validate confere o lançamento contra o contrato do modelo: nome 1..200,
// valor positivo até o teto, categoria coerente com o tipo, data dentro de uma
// janela de ±10 anos e campos de cofre/parcelamento consistentes.
func (t *Transaction) Validate(now time.Time) error {
	name := strings.TrimSpace(t.Name)
	if name == "" || len([]rune(name)) > 200 {
		return &ValidationError{Field: "name", Reason: "deve ter entre 1 e 200 caracteres"}
	}
	if t.Amount <= 0 || t.Amount > MaxAmount {
		return &ValidationError{Field: "amount", Reason: "deve ser positivo e no máximo 1e9"}
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return &ValidationError{Field: "type", Reason: "deve ser income ou expense"}
	}
	if !t.Category.ValidFor(t.Type) {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("%q não vale para o tipo %q", t.Category, t.Type)}
	}
	if t.PaymentType != "" {
		if t.Type != TypeExpense {
			return &ValidationError{Field: "payment_type", Reason: "só vale para despesas"}
		}
		if !paymentTypes[t.PaymentType] {
			return &ValidationError{Field: "payment_type", Reason: fmt.Sprintf("%q desconhecido", t.PaymentType)}
		}
	}

	year, _, _, err := ParseDate(t.Date)
	if err != nil {
		return err
	}
	if year < now.Year()-10 || year > now.Year()+10 {
		return &ValidationError{Field: "date", Reason: "fora da janela de ±10 anos"}
	}

	if t.Category == CategoryVaultWithdrawal {
		if strings.TrimSpace(t.Reason) == "" {
			return &ValidationError{Field: "reason", Reason: "obrigatório em retiradas do cofre"}
		}
		if t.DestinationType != DestinationIncomeTransfer && t.DestinationType != DestinationDirectUse {
			return &ValidationError{Field: "destination_type", Reason: "deve ser INCOME_TRANSFER ou DIRECT_USE"}
		}
	} else if t.DestinationType != "" {
		return &ValidationError{Field: "destination_type", Reason: "só vale em retiradas do cofre"}
	}

	if t.Installments > 0 && t.PaymentType != PaymentCredit {
		return &ValidationError{Field: "installments", Reason: "parcelamento só vale no crédito"}
	}
	if t.CurrentInstallment > t.Installments {
		return &ValidationError{Field: "current_installment", Reason: "maior que o total de parcelas"}
	}

	return nil
}
