package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SirArucard/pocket-hug-finance/internal/budget"
	"github.com/SirArucard/pocket-hug-finance/internal/model"
	"github.com/SirArucard/pocket-hug-finance/internal/service"
)

// formatCurrency formata em R$ com vírgula decimal e ponto de milhar.
func formatCurrency(value float64) string {
	s := strconv.FormatFloat(value, 'f', 2, 64)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteRune('.')
		}
		sb.WriteRune(r)
	}

	prefix := "R$ "
	if negative {
		prefix = "-R$ "
	}
	return prefix + sb.String() + "," + decPart
}

// parseAmount aceita "89,90" ou "89.90".
func parseAmount(text string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// parseAmountLine quebra "valor descrição [xN]" em partes.
func parseAmountLine(text string) (amount float64, name string, installments int, ok bool) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) < 2 {
		return 0, "", 0, false
	}

	amount, ok = parseAmount(fields[0])
	if !ok {
		return 0, "", 0, false
	}

	last := fields[len(fields)-1]
	if len(last) > 1 && (last[0] == 'x' || last[0] == 'X') {
		if n, err := strconv.Atoi(last[1:]); err == nil && n > 1 {
			installments = n
			fields = fields[:len(fields)-1]
		}
	}

	name = strings.Join(fields[1:], " ")
	if name == "" {
		return 0, "", 0, false
	}
	return amount, name, installments, true
}

func formatOverview(overview *service.Overview) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 %s\n\n", budget.MonthName(overview.Month)))
	sb.WriteString(fmt.Sprintf("💰 Entradas: %s\n", formatCurrency(overview.Totals.Income)))
	sb.WriteString(fmt.Sprintf("💸 Saídas: %s\n", formatCurrency(overview.Totals.Expenses)))
	sb.WriteString(fmt.Sprintf("📌 Gastos fixos: %s\n", formatCurrency(overview.Totals.FixedExpenses)))
	sb.WriteString(fmt.Sprintf("📈 Saldo: %s\n\n", formatCurrency(overview.Balance)))

	sb.WriteString(fmt.Sprintf("🎯 Limite disponível: %s\n", formatCurrency(overview.Budget.AvailableLimit)))
	sb.WriteString(fmt.Sprintf("🛡 Reserva (%.0f%%): %s\n\n", overview.Budget.ReservePercentage, formatCurrency(overview.Budget.Reserve)))

	if overview.Card != nil {
		sb.WriteString(fmt.Sprintf("💳 Fatura: %s (limite usado %s)\n", formatCurrency(overview.Totals.InvoiceTotal), formatCurrency(overview.Card.UsedLimit)))
	}
	sb.WriteString(fmt.Sprintf("🔒 Cofre: %s\n", formatCurrency(overview.VaultBalance)))
	sb.WriteString(fmt.Sprintf("🍴 Ticket Alimentação: %s\n", formatCurrency(overview.Vouchers.Food)))
	sb.WriteString(fmt.Sprintf("🚌 Ticket Mobilidade: %s", formatCurrency(overview.Vouchers.Transport)))

	return sb.String()
}

// describeError traduz o erro para uma mensagem que dá para mostrar ao
// usuário.
func describeError(err error) string {
	var validation *model.ValidationError
	if errors.As(err, &validation) {
		return "Entrada inválida: " + validation.Reason
	}

	switch {
	case errors.Is(err, service.ErrTransactionNotFound):
		return "Esse lançamento não existe mais."
	case errors.Is(err, service.ErrInsufficientVault):
		return "O cofre não tem saldo suficiente."
	case errors.Is(err, service.ErrNoCreditCard):
		return "Nenhum cartão configurado. Use /start."
	case errors.Is(err, service.ErrRecurringNotFound):
		return "Conta recorrente não encontrada."
	case errors.Is(err, service.ErrRecurringPaid):
		return "Essa conta já foi lançada neste mês."
	case errors.Is(err, service.ErrAmountRequired):
		return "Essa conta é variável: informe o valor."
	default:
		return "Algo deu errado. Tente novamente."
	}
}
