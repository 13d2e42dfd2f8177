package budget

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/SirArucard/pocket-hug-finance/internal/model"
)

// GenerateInstallments quebra uma compra no crédito em n parcelas mensais.
// A parcela 0 é a âncora do grupo (id próprio); as demais carregam parent_id
// apontando para ela, o que permite remover o grupo inteiro de uma vez.
// Cada parcela é arredondada ao centavo e a última absorve o resíduo, então a
// soma das parcelas bate exatamente com o valor original. As datas avançam
// mês a mês por aritmética de componentes ancorada na data da compra, com o
// dia travado no tamanho do mês alvo (31/01 + 1 mês = 28/02).
func GenerateInstallments(purchase model.Transaction, n int) ([]model.Transaction, error) {
	if n < 2 {
		return nil, &model.ValidationError{Field: "installments", Reason: "deve ser pelo menos 2"}
	}
	if purchase.PaymentType != model.PaymentCredit {
		return nil, &model.ValidationError{Field: "installments", Reason: "parcelamento só vale no crédito"}
	}
	year, month, day, err := model.ParseDate(purchase.Date)
	if err != nil {
		return nil, err
	}

	perLeg := roundCents(purchase.Amount / float64(n))
	lastLeg := roundCents(purchase.Amount - perLeg*float64(n-1))

	anchorID := uuid.New().String()
	legs := make([]model.Transaction, 0, n)

	for i := 0; i < n; i++ {
		leg := purchase
		leg.Installments = n
		leg.CurrentInstallment = i + 1
		leg.Name = fmt.Sprintf("%s (%d/%d)", purchase.Name, i+1, n)
		leg.Date = addMonths(year, month, day, i)

		if i == 0 {
			leg.ID = anchorID
		} else {
			leg.ID = uuid.New().String()
			leg.ParentID = anchorID
		}

		leg.Amount = perLeg
		if i == n-1 {
			leg.Amount = lastLeg
		}

		legs = append(legs, leg)
	}

	return legs, nil
}

// addMonths soma n meses a uma data por componentes, sempre partindo da data
// original (nunca da parcela anterior, para o dia não derivar ao cruzar
// meses curtos). O dia é travado no último dia do mês alvo.
func addMonths(year, month, day, n int) string {
	month += n
	year += (month - 1) / 12
	month = (month-1)%12 + 1

	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func daysInMonth(year, month int) int {
	// O dia zero do mês seguinte é o último dia deste mês.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
