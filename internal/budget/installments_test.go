package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SirArucard/pocket-hug-finance/internal/model"
)

func creditPurchase(amount float64, date string) model.Transaction {
	return model.Transaction{
		UserID:      42,
		Name:        "Fone de ouvido",
		Amount:      amount,
		Category:    model.CategoryLifestyle,
		Type:        model.TypeExpense,
		PaymentType: model.PaymentCredit,
		Date:        date,
	}
}

func TestGenerateInstallments(t *testing.T) {
	legs, err := GenerateInstallments(creditPurchase(120, "2026-03-10"), 3)
	require.NoError(t, err)
	require.Len(t, legs, 3)

	assert.Equal(t, []string{"2026-03-10", "2026-04-10", "2026-05-10"},
		[]string{legs[0].Date, legs[1].Date, legs[2].Date})

	var sum float64
	for i, leg := range legs {
		sum += leg.Amount
		assert.Equal(t, 40.0, leg.Amount)
		assert.Equal(t, 3, leg.Installments)
		assert.Equal(t, i+1, leg.CurrentInstallment)
		assert.Equal(t, int64(42), leg.UserID)
	}
	assert.Equal(t, 120.0, sum)

	assert.Equal(t, "Fone de ouvido (1/3)", legs[0].Name)
	assert.Equal(t, "Fone de ouvido (2/3)", legs[1].Name)
	assert.Equal(t, "Fone de ouvido (3/3)", legs[2].Name)

	// A primeira parcela é a âncora do grupo; as demais apontam para ela.
	assert.Empty(t, legs[0].ParentID)
	assert.Equal(t, legs[0].ID, legs[1].ParentID)
	assert.Equal(t, legs[0].ID, legs[2].ParentID)
	assert.NotEqual(t, legs[0].ID, legs[1].ID)
	assert.NotEqual(t, legs[1].ID, legs[2].ID)
}

func TestGenerateInstallmentsRounding(t *testing.T) {
	// 100 / 3 não fecha em centavos: a última parcela absorve o resíduo.
	legs, err := GenerateInstallments(creditPurchase(100, "2026-01-05"), 3)
	require.NoError(t, err)

	assert.Equal(t, 33.33, legs[0].Amount)
	assert.Equal(t, 33.33, legs[1].Amount)
	assert.Equal(t, 33.34, legs[2].Amount)
	assert.InDelta(t, 100.0, legs[0].Amount+legs[1].Amount+legs[2].Amount, 1e-9)
}

func TestGenerateInstallmentsDayClamping(t *testing.T) {
	// 31/01 + 1 mês cai no último dia de fevereiro, sem derivar para março.
	legs, err := GenerateInstallments(creditPurchase(300, "2026-01-31"), 4)
	require.NoError(t, err)

	assert.Equal(t, "2026-01-31", legs[0].Date)
	assert.Equal(t, "2026-02-28", legs[1].Date)
	assert.Equal(t, "2026-03-31", legs[2].Date)
	assert.Equal(t, "2026-04-30", legs[3].Date)
}

func TestGenerateInstallmentsLeapYear(t *testing.T) {
	legs, err := GenerateInstallments(creditPurchase(200, "2027-12-31"), 3)
	require.NoError(t, err)

	assert.Equal(t, "2027-12-31", legs[0].Date)
	assert.Equal(t, "2028-01-31", legs[1].Date)
	// 2028 é bissexto.
	assert.Equal(t, "2028-02-29", legs[2].Date)
}

func TestGenerateInstallmentsYearRollover(t *testing.T) {
	legs, err := GenerateInstallments(creditPurchase(90, "2026-11-15"), 3)
	require.NoError(t, err)

	assert.Equal(t, "2026-11-15", legs[0].Date)
	assert.Equal(t, "2026-12-15", legs[1].Date)
	assert.Equal(t, "2027-01-15", legs[2].Date)
}

func TestGenerateInstallmentsRejectsBadInput(t *testing.T) {
	_, err := GenerateInstallments(creditPurchase(100, "2026-01-05"), 1)
	assert.Error(t, err)

	debit := creditPurchase(100, "2026-01-05")
	debit.PaymentType = model.PaymentDebit
	_, err = GenerateInstallments(debit, 3)
	assert.Error(t, err)

	badDate := creditPurchase(100, "05/01/2026")
	_, err = GenerateInstallments(badDate, 3)
	assert.Error(t, err)
}
