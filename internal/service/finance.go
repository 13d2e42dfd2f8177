package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/SirArucard/pocket-hug-finance/internal/budget"
	"github.com/SirArucard/pocket-hug-finance/internal/model"
)

// FinanceTracker orquestra leituras e escritas por cima do motor de cálculo.
// Toda escrita só atualiza figuras derivadas depois que a persistência
// confirma; uma falha deixa tudo como estava.
type FinanceTracker struct {
	repo Repository
	now  func() time.Time
}

// Repository define o que o serviço precisa do armazenamento.
type Repository interface {
	GetTransactions(ctx context.Context, userID int64) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	CreateTransactions(ctx context.Context, transactions []model.Transaction) error
	DeleteTransactions(ctx context.Context, ids []string, userID int64) error

	GetCreditCard(ctx context.Context, userID int64) (*model.CreditCard, error)
	CreateCreditCard(ctx context.Context, card *model.CreditCard) error
	UpdateCreditCard(ctx context.Context, card *model.CreditCard) error

	GetSettings(ctx context.Context, userID int64) (*model.Settings, error)
	CreateSettings(ctx context.Context, settings *model.Settings) error
	UpdateSettings(ctx context.Context, settings *model.Settings) error

	GetRecurringExpenses(ctx context.Context, userID int64) ([]model.RecurringExpense, error)
	CreateRecurringExpense(ctx context.Context, expense *model.RecurringExpense) error
	UpdateRecurringExpense(ctx context.Context, expense *model.RecurringExpense) error
}

// NewFinanceTracker cria uma nova instância de FinanceTracker
func NewFinanceTracker(repo Repository) *FinanceTracker {
	return &FinanceTracker{
		repo: repo,
		now:  time.Now,
	}
}

func (s *FinanceTracker) today() string {
	return s.now().Format("2006-01-02")
}

// Overview é o retrato completo de um mês para a camada de apresentação.
type Overview struct {
	Month             string
	Totals            budget.MonthlyTotals
	Budget            budget.Budget
	Balance           float64
	VaultBalance      float64
	Vouchers          budget.VoucherBalances
	Card              *model.CreditCard
	MonthTransactions []model.Transaction
}

// GetOverview monta o retrato do mês: agregados, orçamento derivado, saldos de
// cofre e tickets e o cartão com o limite usado rederivado do histórico. Com
// month vazio vale o mês corrente.
func (s *FinanceTracker) GetOverview(ctx context.Context, userID int64, month string) (*Overview, error) {
	if month == "" {
		month = budget.CurrentMonth(s.now())
	}

	transactions, err := s.repo.GetTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	card, err := s.repo.GetCreditCard(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get credit card: %w", err)
	}

	reservePercentage, err := s.reservePercentage(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := budget.ComputeMonthlyTotals(transactions, month, card)
	derived := budget.Derive(totals, reservePercentage)

	if card != nil {
		// O used_limit do banco é só cache; o valor que vale sai daqui.
		card.UsedLimit = budget.UsedLimit(transactions, card.BestBuyDay, budget.CurrentMonth(s.now()))
	}

	var monthTransactions []model.Transaction
	for _, t := range transactions {
		if t.Month() == month {
			monthTransactions = append(monthTransactions, t)
		}
	}

	return &Overview{
		Month:             month,
		Totals:            totals,
		Budget:            derived,
		Balance:           totals.Income - totals.Expenses,
		VaultBalance:      budget.VaultBalance(transactions),
		Vouchers:          budget.ComputeVoucherBalances(transactions),
		Card:              card,
		MonthTransactions: monthTransactions,
	}, nil
}

func (s *FinanceTracker) reservePercentage(ctx context.Context, userID int64) (float64, error) {
	settings, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings == nil {
		return model.DefaultReservePercentage, nil
	}
	return settings.ReservePercentage, nil
}

// AddTransaction valida e grava um lançamento. Compra no crédito com
// installments > 1 vira um grupo de parcelas gravado em lote atômico; qualquer
// outra combinação vira um registro único. Depois da gravação o limite usado
// do cartão é rederivado do histórico completo.
func (s *FinanceTracker) AddTransaction(ctx context.Context, userID int64, input model.Transaction, installments int) ([]model.Transaction, error) {
	input.UserID = userID
	input.CreatedAt = s.now()

	if err := input.Validate(s.now()); err != nil {
		return nil, err
	}

	var created []model.Transaction

	if installments > 1 && input.PaymentType == model.PaymentCredit {
		legs, err := budget.GenerateInstallments(input, installments)
		if err != nil {
			return nil, err
		}
		if err := s.repo.CreateTransactions(ctx, legs); err != nil {
			return nil, err
		}
		created = legs
	} else {
		input.GenerateID()
		if err := s.repo.CreateTransaction(ctx, &input); err != nil {
			return nil, err
		}
		created = []model.Transaction{input}
	}

	if input.Type == model.TypeExpense && input.PaymentType == model.PaymentCredit {
		s.refreshUsedLimit(ctx, userID, nil)
	}

	return created, nil
}

// RemoveTransaction apaga um lançamento. Se ele pertence a um grupo de
// parcelas, o grupo inteiro cai junto (âncora e todas as pernas com parent_id
// apontando para ela), em uma única escrita. Remover um id inexistente é
// recusado, não ignorado.
func (s *FinanceTracker) RemoveTransaction(ctx context.Context, userID int64, id string) (int, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get transactions: %w", err)
	}

	var target *model.Transaction
	for i := range transactions {
		if transactions[i].ID == id {
			target = &transactions[i]
			break
		}
	}
	if target == nil {
		return 0, ErrTransactionNotFound
	}

	// A âncora é a identidade do grupo.
	anchorID := target.ID
	if target.ParentID != "" {
		anchorID = target.ParentID
	}

	var ids []string
	remaining := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.ID == anchorID || t.ParentID == anchorID {
			ids = append(ids, t.ID)
			continue
		}
		remaining = append(remaining, t)
	}

	if err := s.repo.DeleteTransactions(ctx, ids, userID); err != nil {
		return 0, err
	}

	if target.PaymentType == model.PaymentCredit {
		s.refreshUsedLimit(ctx, userID, remaining)
	}

	return len(ids), nil
}

// TransferToVault deposita no cofre: um lançamento de entrada "extra" datado
// de hoje.
func (s *FinanceTracker) TransferToVault(ctx context.Context, userID int64, amount float64) (*model.Transaction, error) {
	transaction := model.Transaction{
		Name:     "Transferência para Reserva (Cofre)",
		Amount:   amount,
		Category: model.CategoryExtra,
		Type:     model.TypeIncome,
		Date:     s.today(),
	}
	created, err := s.AddTransaction(ctx, userID, transaction, 0)
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// WithdrawFromVault retira do cofre. Retirar mais do que o saldo corrente é
// recusado antes de qualquer escrita, nunca truncado. O destino decide se o
// valor volta a contar como entrada do mês (INCOME_TRANSFER) ou não
// (DIRECT_USE).
func (s *FinanceTracker) WithdrawFromVault(ctx context.Context, userID int64, amount float64, reason string, destination model.DestinationType) (*model.Transaction, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	if budget.VaultBalance(transactions) < amount {
		return nil, ErrInsufficientVault
	}

	transaction := model.Transaction{
		Name:            "Retirada do Cofre",
		Amount:          amount,
		Category:        model.CategoryVaultWithdrawal,
		Type:            model.TypeExpense,
		Date:            s.today(),
		Reason:          reason,
		DestinationType: destination,
	}
	created, err := s.AddTransaction(ctx, userID, transaction, 0)
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// InvoiceSource indica de onde sai o dinheiro do pagamento da fatura.
type InvoiceSource string

const (
	InvoiceFromSalary InvoiceSource = "salary"
	InvoiceFromVault  InvoiceSource = "vault"
)

// PayInvoice registra o pagamento da fatura do cartão: uma despesa no débito,
// como conta fixa quando sai do salário ou como retirada DIRECT_USE quando sai
// do cofre (com a checagem de saldo do cofre).
func (s *FinanceTracker) PayInvoice(ctx context.Context, userID int64, amount float64, source InvoiceSource) (*model.Transaction, error) {
	card, err := s.repo.GetCreditCard(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get credit card: %w", err)
	}
	if card == nil {
		return nil, ErrNoCreditCard
	}

	name := fmt.Sprintf("Pagamento Fatura - %s", card.Name)

	if source == InvoiceFromVault {
		return s.WithdrawFromVault(ctx, userID, amount, name, model.DestinationDirectUse)
	}

	transaction := model.Transaction{
		Name:        name,
		Amount:      amount,
		Category:    model.CategoryFixedBills,
		Type:        model.TypeExpense,
		PaymentType: model.PaymentDebit,
		Date:        s.today(),
	}
	created, err := s.AddTransaction(ctx, userID, transaction, 0)
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// SetReservePercentage grava o percentual de reserva, criando a linha de
// settings na primeira vez.
func (s *FinanceTracker) SetReservePercentage(ctx context.Context, userID int64, percentage float64) error {
	candidate := model.Settings{UserID: userID, ReservePercentage: percentage}
	if err := candidate.Validate(); err != nil {
		return err
	}

	settings, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings == nil {
		return s.repo.CreateSettings(ctx, &candidate)
	}

	settings.ReservePercentage = percentage
	return s.repo.UpdateSettings(ctx, settings)
}

// ConfigureCreditCard cria ou atualiza a configuração de ciclo do cartão.
// O used_limit gravado é só projeção e sai rederivado do histórico.
func (s *FinanceTracker) ConfigureCreditCard(ctx context.Context, userID int64, card model.CreditCard) (*model.CreditCard, error) {
	card.UserID = userID
	if err := card.Validate(); err != nil {
		return nil, err
	}

	transactions, err := s.repo.GetTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	card.UsedLimit = budget.UsedLimit(transactions, card.BestBuyDay, budget.CurrentMonth(s.now()))

	existing, err := s.repo.GetCreditCard(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get credit card: %w", err)
	}
	if existing == nil {
		if err := s.repo.CreateCreditCard(ctx, &card); err != nil {
			return nil, err
		}
		return &card, nil
	}

	card.ID = existing.ID
	if err := s.repo.UpdateCreditCard(ctx, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// EnsureDefaultCard cria o cartão padrão no primeiro uso, se ainda não existe.
func (s *FinanceTracker) EnsureDefaultCard(ctx context.Context, userID int64) error {
	existing, err := s.repo.GetCreditCard(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get credit card: %w", err)
	}
	if existing != nil {
		return nil
	}

	card := model.CreditCard{
		UserID:     userID,
		Name:       "Cartão Principal",
		Limit:      5000,
		ClosingDay: 15,
		DueDay:     25,
		BestBuyDay: model.DefaultBestBuyDay,
	}
	return s.repo.CreateCreditCard(ctx, &card)
}

// refreshUsedLimit rederiva o limite usado do cartão e persiste a projeção.
// Quando transactions é nil o histórico é relido do repositório. Falha aqui
// não derruba a operação que acabou de gravar: o valor persistido é cache e a
// próxima leitura rederiva de qualquer jeito.
func (s *FinanceTracker) refreshUsedLimit(ctx context.Context, userID int64, transactions []model.Transaction) {
	card, err := s.repo.GetCreditCard(ctx, userID)
	if err != nil || card == nil {
		return
	}

	if transactions == nil {
		transactions, err = s.repo.GetTransactions(ctx, userID)
		if err != nil {
			log.Printf("refreshUsedLimit: failed to get transactions: %v", err)
			return
		}
	}

	used := budget.UsedLimit(transactions, card.BestBuyDay, budget.CurrentMonth(s.now()))
	if used == card.UsedLimit {
		return
	}

	card.UsedLimit = used
	if err := s.repo.UpdateCreditCard(ctx, card); err != nil {
		log.Printf("refreshUsedLimit: failed to update credit card: %v", err)
	}
}

// RecurringStatus é uma conta recorrente com o estado dela no mês.
type RecurringStatus struct {
	Expense model.RecurringExpense
	Paid    bool
}

// GetRecurringStatus lista as contas recorrentes ativas com o estado
// pago/pendente no mês dado. Pendentes vêm primeiro.
func (s *FinanceTracker) GetRecurringStatus(ctx context.Context, userID int64, month string) ([]RecurringStatus, error) {
	if month == "" {
		month = budget.CurrentMonth(s.now())
	}

	expenses, err := s.repo.GetRecurringExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring expenses: %w", err)
	}

	transactions, err := s.repo.GetTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	var monthExpenses []model.Transaction
	for _, t := range transactions {
		if t.Month() == month && t.Type == model.TypeExpense {
			monthExpenses = append(monthExpenses, t)
		}
	}

	var statuses []RecurringStatus
	for _, expense := range expenses {
		if !expense.Active {
			continue
		}
		paid := false
		for i := range monthExpenses {
			if expense.MatchesPaid(&monthExpenses[i]) {
				paid = true
				break
			}
		}
		statuses = append(statuses, RecurringStatus{Expense: expense, Paid: paid})
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		return !statuses[i].Paid && statuses[j].Paid
	})

	return statuses, nil
}

// PayRecurring lança a transação do mês para uma conta recorrente. Conta
// variável exige o valor; conta fixa com valor zero usa o valor base. Lançar
// duas vezes no mesmo mês é recusado.
func (s *FinanceTracker) PayRecurring(ctx context.Context, userID int64, recurringID string, amount float64) (*model.Transaction, error) {
	statuses, err := s.GetRecurringStatus(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	var target *RecurringStatus
	for i := range statuses {
		if statuses[i].Expense.ID == recurringID {
			target = &statuses[i]
			break
		}
	}
	if target == nil {
		return nil, ErrRecurringNotFound
	}
	if target.Paid {
		return nil, ErrRecurringPaid
	}

	if amount == 0 {
		if target.Expense.IsVariable {
			return nil, ErrAmountRequired
		}
		amount = target.Expense.BaseAmount
	}

	transaction := model.Transaction{
		Name:        target.Expense.Name,
		Amount:      amount,
		Category:    target.Expense.Category,
		Type:        model.TypeExpense,
		PaymentType: model.PaymentDebit,
		Date:        s.today(),
	}
	created, err := s.AddTransaction(ctx, userID, transaction, 0)
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// AddRecurringExpense cadastra um novo modelo de conta do mês.
func (s *FinanceTracker) AddRecurringExpense(ctx context.Context, userID int64, expense model.RecurringExpense) (*model.RecurringExpense, error) {
	expense.UserID = userID
	expense.Active = true
	if err := expense.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateRecurringExpense(ctx, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeactivateRecurringExpense tira a conta da lista do mês sem apagar o
// histórico de lançamentos dela.
func (s *FinanceTracker) DeactivateRecurringExpense(ctx context.Context, userID int64, recurringID string) error {
	expenses, err := s.repo.GetRecurringExpenses(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get recurring expenses: %w", err)
	}
	for i := range expenses {
		if expenses[i].ID == recurringID {
			expenses[i].Active = false
			return s.repo.UpdateRecurringExpense(ctx, &expenses[i])
		}
	}
	return ErrRecurringNotFound
}

// GetRecentTransactions lista os lançamentos mais recentes.
func (s *FinanceTracker) GetRecentTransactions(ctx context.Context, userID int64, limit int) ([]model.Transaction, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date > transactions[j].Date
	})
	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}
