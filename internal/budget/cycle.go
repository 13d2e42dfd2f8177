// Package budget concentra o motor de cálculo do orçamento: funções puras que
// derivam os agregados mensais (entradas, saídas, fatura, cofre, tickets) a
// partir da lista completa de lançamentos e da configuração de ciclo do
// cartão. Nada aqui faz I/O nem guarda estado.
package budget

import (
	"fmt"
	"time"

	"github.com/SirArucard/pocket-hug-finance/internal/model"
)

// InvoiceMonthOf mapeia a data de um lançamento (YYYY-MM-DD) ao mês de fatura
// (YYYY-MM) a que ele pertence, dado o dia de melhor compra do cartão. Compras
// no dia de melhor compra ou depois caem na fatura do mês seguinte, como no
// ciclo real de um cartão. A data é lida pelos componentes de calendário; usar
// time.Parse com fuso aqui já deslocou lançamentos em um dia na virada do mês.
func InvoiceMonthOf(date string, bestBuyDay int) (string, error) {
	year, month, day, err := model.ParseDate(date)
	if err != nil {
		return "", err
	}
	if day >= bestBuyDay {
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return MonthKey(year, month), nil
}

// MonthKey monta a chave YYYY-MM com zero à esquerda, de modo que comparação
// lexicográfica de chaves equivale a comparação cronológica.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// CurrentMonth retorna a chave YYYY-MM do instante dado.
func CurrentMonth(now time.Time) string {
	return MonthKey(now.Year(), int(now.Month()))
}

var monthNames = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName devolve o nome de exibição de uma chave YYYY-MM ("Março 2026").
func MonthName(month string) string {
	var year, m int
	if _, err := fmt.Sscanf(month, "%4d-%2d", &year, &m); err != nil || m < 1 || m > 12 {
		return month
	}
	return fmt.Sprintf("%s %d", monthNames[m-1], year)
}
