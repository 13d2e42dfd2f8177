package budget

import "github.com/SirArucard/pocket-hug-finance/internal/model"

// Budget é o resultado da derivação mensal: reserva sugerida e limite
// disponível para gastar.
type Budget struct {
	Month             string
	ReservePercentage float64
	Reserve           float64
	VariableExpenses  float64
	AvailableLimit    float64
}

// Derive combina os agregados do mês com o percentual de reserva. O limite
// disponível é travado em zero: um mês já estourado reporta zero, nunca um
// número negativo — o chamador não pode ler aqui o tamanho do estouro.
func Derive(totals MonthlyTotals, reservePercentage float64) Budget {
	reserve := totals.SalaryIncome * (reservePercentage / 100)
	variable := totals.Expenses - totals.FixedExpenses

	available := totals.SalaryIncome - totals.FixedExpenses - variable - reserve
	if available < 0 {
		available = 0
	}

	return Budget{
		Month:             totals.Month,
		ReservePercentage: reservePercentage,
		Reserve:           reserve,
		VariableExpenses:  variable,
		AvailableLimit:    available,
	}
}

// UsedLimit deriva o limite usado do cartão a partir do histórico completo:
// soma toda despesa no crédito cuja fatura cai no mês de referência ou em
// qualquer mês futuro (a comparação lexicográfica de YYYY-MM é cronológica).
// Acumula fatura atual e parcelas futuras, não só a fatura corrente ("soma
// tudo"); é o que o limite de um cartão de verdade reflete com compras
// parceladas. O campo nunca é confiado do banco, sempre rederivado daqui.
func UsedLimit(transactions []model.Transaction, bestBuyDay int, referenceMonth string) float64 {
	if bestBuyDay < 1 {
		bestBuyDay = model.DefaultBestBuyDay
	}

	var used float64
	for i := range transactions {
		t := &transactions[i]
		if t.Type != model.TypeExpense || t.PaymentType != model.PaymentCredit {
			continue
		}
		invoiceMonth, err := InvoiceMonthOf(t.Date, bestBuyDay)
		if err != nil {
			continue
		}
		if invoiceMonth >= referenceMonth {
			used += t.Amount
		}
	}
	return used
}
