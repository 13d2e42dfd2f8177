package budget

import "github.com/SirArucard/pocket-hug-finance/internal/model"

// VaultBalance calcula o saldo corrente do cofre sobre o histórico inteiro:
// entradas "extra" depositam, toda retirada reduz, independente do destino.
// É uma redução pura recalculada a cada leitura; não existe saldo em cache
// para sair do ar.
func VaultBalance(transactions []model.Transaction) float64 {
	var balance float64
	for i := range transactions {
		t := &transactions[i]
		switch {
		case t.Type == model.TypeIncome && t.Category == model.CategoryExtra:
			balance += t.Amount
		case t.Type == model.TypeExpense && t.Category == model.CategoryVaultWithdrawal:
			balance -= t.Amount
		}
	}
	return balance
}

// VoucherBalances são os saldos correntes dos dois tickets de benefício.
type VoucherBalances struct {
	Food      float64
	Transport float64
}

// ComputeVoucherBalances reduz o histórico inteiro aos saldos de ticket:
// receitas da categoria do ticket creditam, despesas pagas com o ticket
// debitam. Cada ticket é um sub-saldo isolado do orçamento principal.
func ComputeVoucherBalances(transactions []model.Transaction) VoucherBalances {
	var balances VoucherBalances
	for i := range transactions {
		t := &transactions[i]
		switch {
		case t.Type == model.TypeIncome && t.Category == model.CategoryFoodVoucher:
			balances.Food += t.Amount
		case t.Type == model.TypeIncome && t.Category == model.CategoryTransportVoucher:
			balances.Transport += t.Amount
		case t.Type == model.TypeExpense && t.PaymentType == model.PaymentFoodVoucher:
			balances.Food -= t.Amount
		case t.Type == model.TypeExpense && t.PaymentType == model.PaymentTransportVoucher:
			balances.Transport -= t.Amount
		}
	}
	return balances
}
