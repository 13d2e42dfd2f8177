package charts

import (
	"bytes"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/SirArucard/pocket-hug-finance/internal/budget"
	"github.com/SirArucard/pocket-hug-finance/internal/model"
	"github.com/SirArucard/pocket-hug-finance/internal/service"
)

// Generator desenha os gráficos que acompanham os resumos do bot
type Generator struct{}

// NewGenerator cria um novo gerador de gráficos
func NewGenerator() *Generator {
	return &Generator{}
}

var (
	incomeColor  = drawing.Color{R: 46, G: 160, B: 67, A: 255}
	expenseColor = drawing.Color{R: 218, G: 54, B: 51, A: 255}
	neutralColor = drawing.Color{R: 88, G: 166, B: 255, A: 255}
	reserveColor = drawing.Color{R: 210, G: 153, B: 34, A: 255}
)

func barStyle(color drawing.Color) chart.Style {
	return chart.Style{
		FillColor:   color,
		StrokeColor: color,
		StrokeWidth: 0,
	}
}

// GenerateOverviewChart monta o gráfico de barras do retrato do mês.
// Retorna nil quando não há movimento para desenhar.
func (g *Generator) GenerateOverviewChart(overview *service.Overview) ([]byte, error) {
	totals := overview.Totals
	if totals.Income == 0 && totals.Expenses == 0 {
		return nil, nil
	}

	graph := chart.BarChart{
		Title:    budget.MonthName(overview.Month),
		Width:    900,
		Height:   450,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Bars: []chart.Value{
			{Label: "Entradas", Value: totals.Income, Style: barStyle(incomeColor)},
			{Label: "Saídas", Value: totals.Expenses, Style: barStyle(expenseColor)},
			{Label: "Fixos", Value: totals.FixedExpenses, Style: barStyle(neutralColor)},
			{Label: "Fatura", Value: totals.InvoiceTotal, Style: barStyle(expenseColor)},
			{Label: "Reserva", Value: overview.Budget.Reserve, Style: barStyle(reserveColor)},
			{Label: "Disponível", Value: overview.Budget.AvailableLimit, Style: barStyle(incomeColor)},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateDailySpendChart desenha o acumulado de saídas do mês dia a dia,
// considerando só os lançamentos datados dentro do mês do retrato.
func (g *Generator) GenerateDailySpendChart(overview *service.Overview) ([]byte, error) {
	daily := make(map[string]float64)
	for i := range overview.MonthTransactions {
		t := &overview.MonthTransactions[i]
		if t.Type == model.TypeExpense && t.Category != model.CategoryVaultWithdrawal {
			daily[t.Date] += t.Amount
		}
	}
	if len(daily) == 0 {
		return nil, nil
	}

	dates := make([]string, 0, len(daily))
	for date := range daily {
		dates = append(dates, date)
	}
	// Chaves YYYY-MM-DD ordenam cronologicamente como texto.
	sort.Strings(dates)

	xValues := make([]float64, len(dates))
	yValues := make([]float64, len(dates))
	running := 0.0
	for i, date := range dates {
		running += daily[date]
		xValues[i] = float64(i + 1)
		yValues[i] = running
	}

	graph := chart.Chart{
		Title:  "Saídas acumuladas — " + budget.MonthName(overview.Month),
		Width:  900,
		Height: 450,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: expenseColor,
					FillColor:   expenseColor.WithAlpha(60),
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
