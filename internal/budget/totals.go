package budget

import "github.com/SirArucard/pocket-hug-finance/internal/model"

// MonthlyTotals reúne todos os agregados derivados de um mês. Entradas e
// saídas principais excluem de propósito os depósitos no cofre, as retiradas
// DIRECT_USE e as movimentações de ticket: esses valores vivem em sub-saldos
// próprios e não podem contaminar o orçamento baseado no salário. Uma retirada
// do cofre só volta a contar como entrada quando o destino é INCOME_TRANSFER.
type MonthlyTotals struct {
	Month string

	SalaryIncome      float64
	ExtraValuesIncome float64
	VaultToIncome     float64
	Income            float64

	FoodVoucherIncome        float64
	TransportVoucherIncome   float64
	FoodVoucherExpenses      float64
	TransportVoucherExpenses float64

	VaultDeposits    float64
	VaultWithdrawals float64

	DebitExpenses float64
	InvoiceTotal  float64
	Expenses      float64
	FixedExpenses float64
}

// ComputeMonthlyTotals calcula os agregados do mês alvo (YYYY-MM) sobre a
// lista completa de lançamentos. A fatura do cartão é a exceção do filtro por
// mês de ocorrência: uma compra no crédito pode pertencer à fatura de outro
// mês, então a varredura usa InvoiceMonthOf sobre todos os lançamentos.
// Com card nulo vale o dia de melhor compra padrão.
func ComputeMonthlyTotals(transactions []model.Transaction, month string, card *model.CreditCard) MonthlyTotals {
	bestBuyDay := model.DefaultBestBuyDay
	if card != nil && card.BestBuyDay >= 1 {
		bestBuyDay = card.BestBuyDay
	}

	totals := MonthlyTotals{Month: month}

	for i := range transactions {
		t := &transactions[i]

		// Fatura: mês de fatura, não mês de ocorrência.
		if t.Type == model.TypeExpense && t.PaymentType == model.PaymentCredit {
			if invoiceMonth, err := InvoiceMonthOf(t.Date, bestBuyDay); err == nil && invoiceMonth == month {
				totals.InvoiceTotal += t.Amount
			}
		}

		if t.Month() != month {
			continue
		}

		switch t.Type {
		case model.TypeIncome:
			switch t.Category {
			case model.CategorySalary:
				totals.SalaryIncome += t.Amount
			case model.CategoryExtraValues:
				totals.ExtraValuesIncome += t.Amount
			case model.CategoryExtra:
				totals.VaultDeposits += t.Amount
			case model.CategoryFoodVoucher:
				totals.FoodVoucherIncome += t.Amount
			case model.CategoryTransportVoucher:
				totals.TransportVoucherIncome += t.Amount
			}

		case model.TypeExpense:
			if t.Category == model.CategoryVaultWithdrawal {
				totals.VaultWithdrawals += t.Amount
				if t.DestinationType == model.DestinationIncomeTransfer {
					totals.VaultToIncome += t.Amount
				}
				continue
			}

			switch t.PaymentType {
			case model.PaymentDebit:
				totals.DebitExpenses += t.Amount
			case model.PaymentFoodVoucher:
				totals.FoodVoucherExpenses += t.Amount
			case model.PaymentTransportVoucher:
				totals.TransportVoucherExpenses += t.Amount
			}

			if t.Category == model.CategoryFixedBills {
				totals.FixedExpenses += t.Amount
			}
		}
	}

	totals.Income = totals.SalaryIncome + totals.ExtraValuesIncome + totals.VaultToIncome
	totals.Expenses = totals.DebitExpenses + totals.InvoiceTotal

	return totals
}
