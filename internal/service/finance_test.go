package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SirArucard/pocket-hug-finance/internal/model"
)

const testUser int64 = 42

var errStorage = errors.New("storage down")

// fakeRepo guarda tudo em memória e simula falhas de persistência.
type fakeRepo struct {
	transactions []model.Transaction
	card         *model.CreditCard
	settings     *model.Settings
	recurring    []model.RecurringExpense

	failCreate bool
	failBatch  bool
	failDelete bool

	cardUpdates int
}

func (r *fakeRepo) GetTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	out := make([]model.Transaction, len(r.transactions))
	copy(out, r.transactions)
	return out, nil
}

func (r *fakeRepo) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	if r.failCreate {
		return errStorage
	}
	r.transactions = append(r.transactions, *transaction)
	return nil
}

func (r *fakeRepo) CreateTransactions(ctx context.Context, transactions []model.Transaction) error {
	if r.failBatch {
		return errStorage
	}
	r.transactions = append(r.transactions, transactions...)
	return nil
}

func (r *fakeRepo) DeleteTransactions(ctx context.Context, ids []string, userID int64) error {
	if r.failDelete {
		return errStorage
	}
	toRemove := make(map[string]bool, len(ids))
	for _, id := range ids {
		toRemove[id] = true
	}
	var kept []model.Transaction
	for _, t := range r.transactions {
		if !toRemove[t.ID] {
			kept = append(kept, t)
		}
	}
	r.transactions = kept
	return nil
}

func (r *fakeRepo) GetCreditCard(ctx context.Context, userID int64) (*model.CreditCard, error) {
	if r.card == nil {
		return nil, nil
	}
	card := *r.card
	return &card, nil
}

func (r *fakeRepo) CreateCreditCard(ctx context.Context, card *model.CreditCard) error {
	r.card = card
	return nil
}

func (r *fakeRepo) UpdateCreditCard(ctx context.Context, card *model.CreditCard) error {
	r.card = card
	r.cardUpdates++
	return nil
}

func (r *fakeRepo) GetSettings(ctx context.Context, userID int64) (*model.Settings, error) {
	if r.settings == nil {
		return nil, nil
	}
	settings := *r.settings
	return &settings, nil
}

func (r *fakeRepo) CreateSettings(ctx context.Context, settings *model.Settings) error {
	r.settings = settings
	return nil
}

func (r *fakeRepo) UpdateSettings(ctx context.Context, settings *model.Settings) error {
	r.settings = settings
	return nil
}

func (r *fakeRepo) GetRecurringExpenses(ctx context.Context, userID int64) ([]model.RecurringExpense, error) {
	out := make([]model.RecurringExpense, len(r.recurring))
	copy(out, r.recurring)
	return out, nil
}

func (r *fakeRepo) CreateRecurringExpense(ctx context.Context, expense *model.RecurringExpense) error {
	r.recurring = append(r.recurring, *expense)
	return nil
}

func (r *fakeRepo) UpdateRecurringExpense(ctx context.Context, expense *model.RecurringExpense) error {
	for i := range r.recurring {
		if r.recurring[i].ID == expense.ID {
			r.recurring[i] = *expense
			return nil
		}
	}
	return errStorage
}

func newTestTracker(repo *fakeRepo) *FinanceTracker {
	tracker := NewFinanceTracker(repo)
	tracker.now = func() time.Time {
		return time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)
	}
	return tracker
}

func TestAddTransactionSingle(t *testing.T) {
	repo := &fakeRepo{}
	tracker := newTestTracker(repo)

	created, err := tracker.AddTransaction(context.Background(), testUser, model.Transaction{
		Name:        "Mercado",
		Amount:      89.9,
		Category:    model.CategoryFood,
		Type:        model.TypeExpense,
		PaymentType: model.PaymentDebit,
		Date:        "2026-03-10",
	}, 0)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.NotEmpty(t, created[0].ID)
	assert.Equal(t, testUser, created[0].UserID)
	assert.Len(t, repo.transactions, 1)
}

func TestAddTransactionRejectsInvalidInput(t *testing.T) {
	repo := &fakeRepo{}
	tracker := newTestTracker(repo)

	_, err := tracker.AddTransaction(context.Background(), testUser, model.Transaction{
		Name:     "",
		Amount:   10,
		Category: model.CategoryFood,
		Type:     model.TypeExpense,
		Date:     "2026-03-10",
	}, 0)

	var validation *model.ValidationError
	require.ErrorAs(t, err, &validation)
	// Nada foi escrito.
	assert.Empty(t, repo.transactions)
}

func TestAddTransactionInstallments(t *testing.T) {
	repo := &fakeRepo{card: &model.CreditCard{ID: "card-1", UserID: testUser, Name: "Principal", Limit: 5000, BestBuyDay: 7, ClosingDay: 15, DueDay: 25}}
	tracker := newTestTracker(repo)

	created, err := tracker.AddTransaction(context.Background(), testUser, model.Transaction{
		Name:        "Notebook",
		Amount:      3000,
		Category:    model.CategoryLifestyle,
		Type:        model.TypeExpense,
		PaymentType: model.PaymentCredit,
		Date:        "2026-03-10",
	}, 3)
	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Len(t, repo.transactions, 3)
	assert.Equal(t, created[0].ID, created[1].ParentID)

	// O limite usado foi rederivado e persistido: as três faturas (abril,
	// maio e junho) estão no futuro do mês corrente (março).
	assert.Equal(t, 3000.0, repo.card.UsedLimit)
	assert.Equal(t, 1, repo.cardUpdates)
}

func TestAddTransactionInstallmentsAtomic(t *testing.T) {
	repo := &fakeRepo{failBatch: true}
	tracker := newTestTracker(repo)

	_, err := tracker.AddTransaction(context.Background(), testUser, model.Transaction{
		Name:        "Notebook",
		Amount:      3000,
		Category:    model.CategoryLifestyle,
		Type:        model.TypeExpense,
		PaymentType: model.PaymentCredit,
		Date:        "2026-03-10",
	}, 3)
	require.Error(t, err)
	// Lote rejeitado por inteiro: nenhuma parcela órfã.
	assert.Empty(t, repo.transactions)
}

func TestAddTransactionNonCreditIgnoresInstallments(t *testing.T) {
	repo := &fakeRepo{}
	tracker := newTestTracker(repo)

	created, err := tracker.AddTransaction(context.Background(), testUser, model.Transaction{
		Name:        "Mercado",
		Amount:      300,
		Category:    model.CategoryFood,
		Type:        model.TypeExpense,
		PaymentType: model.PaymentDebit,
		Date:        "2026-03-10",
	}, 3)
	require.NoError(t, err)
	// Fora do crédito não existe parcelamento: vira registro único.
	assert.Len(t, created, 1)
	assert.Zero(t, created[0].Installments)
}

func TestRemoveTransactionGroup(t *testing.T) {
	repo := &fakeRepo{card: &model.CreditCard{ID: "card-1", UserID: testUser, BestBuyDay: 7, ClosingDay: 15, DueDay: 25, UsedLimit: 3000}}
	tracker := newTestTracker(repo)

	created, err := tracker.AddTransaction(context.Background(), testUser, model.Transaction{
		Name:        "Notebook",
		Amount:      3000,
		Category:    model.CategoryLifestyle,
		Type:        model.TypeExpense,
		PaymentType: model.PaymentCredit,
		Date:        "2026-03-10",
	}, 3)
	require.NoError(t, err)

	// Remover a âncora derruba o grupo inteiro.
	removed, err := tracker.RemoveTransaction(context.Background(), testUser, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.Empty(t, repo.transactions)
	assert.Equal(t, 0.0, repo.card.UsedLimit)
}

func TestRemoveTransactionByLegRemovesGroup(t *testing.T) {
	repo := &fakeRepo{}
	tracker := newTestTracker(repo)

	created, err := tracker.AddTransaction(context.Background(), testUser, model.Transaction{
		Name:        "Notebook",
		Amount:      900,
		Category:    model.CategoryLifestyle,
		Type:        model.TypeExpense,
		PaymentType: model.PaymentCredit,
		Date:        "2026-03-10",
	}, 3)
	require.NoError(t, err)

	// Remover uma parcela do meio também derruba o grupo, âncora incluída.
	removed, err := tracker.RemoveTransaction(context.Background(), testUser, created[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.Empty(t, repo.transactions)
}

func TestRemoveTransactionNotFound(t *testing.T) {
	repo := &fakeRepo{}
	tracker := newTestTracker(repo)

	_, err := tracker.RemoveTransaction(context.Background(), testUser, "não-existe")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestVaultFlow(t *testing.T) {
	repo := &fakeRepo{}
	tracker := newTestTracker(repo)
	ctx := context.Background()

	_, err := tracker.TransferToVault(ctx, testUser, 500)
	require.NoError(t, err)

	// Retirar mais do que o saldo é recusado antes de qualquer escrita.
	_, err = tracker.WithdrawFromVault(ctx, testUser, 600, "emergência", model.DestinationDirectUse)
	assert.ErrorIs(t, err, ErrInsufficientVault)
	assert.Len(t, repo.transactions, 1)

	withdrawal, err := tracker.WithdrawFromVault(ctx, testUser, 200, "emergência", model.DestinationDirectUse)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryVaultWithdrawal, withdrawal.Category)

	overview, err := tracker.GetOverview(ctx, testUser, "")
	require.NoError(t, err)
	assert.Equal(t, 300.0, overview.VaultBalance)
	// DIRECT_USE não vira renda do mês.
	assert.Equal(t, 0.0, overview.Totals.Income)
}

func TestVaultWithdrawalAsIncome(t *testing.T) {
	repo := &fakeRepo{}
	tracker := newTestTracker(repo)
	ctx := context.Background()

	_, err := tracker.TransferToVault(ctx, testUser, 500)
	require.NoError(t, err)

	_, err = tracker.WithdrawFromVault(ctx, testUser, 200, "reforço", model.DestinationIncomeTransfer)
	require.NoError(t, err)

	overview, err := tracker.GetOverview(ctx, testUser, "")
	require.NoError(t, err)
	// INCOME_TRANSFER soma exatamente o valor retirado à renda.
	assert.Equal(t, 200.0, overview.Totals.Income)
	assert.Equal(t, 300.0, overview.VaultBalance)
}

func TestGetOverview(t *testing.T) {
	repo := &fakeRepo{
		transactions: []model.Transaction{
			{ID: "salary", UserID: testUser, Name: "Salário", Amount: 5000, Category: model.CategorySalary, Type: model.TypeIncome, Date: "2026-03-05"},
			{ID: "rent", UserID: testUser, Name: "Aluguel", Amount: 1200, Category: model.CategoryFixedBills, Type: model.TypeExpense, PaymentType: model.PaymentDebit, Date: "2026-03-04"},
			{ID: "credit", UserID: testUser, Name: "Cinema", Amount: 60, Category: model.CategoryLifestyle, Type: model.TypeExpense, PaymentType: model.PaymentCredit, Date: "2026-03-02"},
			{ID: "old", UserID: testUser, Name: "Salário", Amount: 4000, Category: model.CategorySalary, Type: model.TypeIncome, Date: "2026-02-05"},
		},
		// used_limit gravado está podre de propósito: tem que ser rederivado.
		card: &model.CreditCard{ID: "card-1", UserID: testUser, Name: "Principal", Limit: 5000, UsedLimit: 9999, BestBuyDay: 7, ClosingDay: 15, DueDay: 25},
	}
	tracker := newTestTracker(repo)

	overview, err := tracker.GetOverview(context.Background(), testUser, "")
	require.NoError(t, err)

	assert.Equal(t, "2026-03", overview.Month)
	assert.Equal(t, 5000.0, overview.Totals.Income)
	assert.Equal(t, 60.0, overview.Totals.InvoiceTotal)
	assert.Equal(t, 1260.0, overview.Totals.Expenses)
	assert.Equal(t, 3740.0, overview.Balance)

	// Sem settings vale a reserva padrão de 10%.
	assert.Equal(t, 500.0, overview.Budget.Reserve)
	assert.Equal(t, 3240.0, overview.Budget.AvailableLimit)

	// Fatura de março (compra dia 2 < 7) no mês de referência março.
	assert.Equal(t, 60.0, overview.Card.UsedLimit)

	assert.Len(t, overview.MonthTransactions, 3)
}

func TestGetOverviewUsesStoredReservePercentage(t *testing.T) {
	repo := &fakeRepo{
		transactions: []model.Transaction{
			{ID: "salary", UserID: testUser, Name: "Salário", Amount: 5000, Category: model.CategorySalary, Type: model.TypeIncome, Date: "2026-03-05"},
		},
		settings: &model.Settings{ID: "settings-1", UserID: testUser, ReservePercentage: 20},
	}
	tracker := newTestTracker(repo)

	overview, err := tracker.GetOverview(context.Background(), testUser, "")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, overview.Budget.Reserve)
}

func TestSetReservePercentage(t *testing.T) {
	repo := &fakeRepo{}
	tracker := newTestTracker(repo)
	ctx := context.Background()

	require.NoError(t, tracker.SetReservePercentage(ctx, testUser, 15))
	require.NotNil(t, repo.settings)
	assert.Equal(t, 15.0, repo.settings.ReservePercentage)

	require.NoError(t, tracker.SetReservePercentage(ctx, testUser, 25))
	assert.Equal(t, 25.0, repo.settings.ReservePercentage)

	var validation *model.ValidationError
	err := tracker.SetReservePercentage(ctx, testUser, 180)
	require.ErrorAs(t, err, &validation)
}

func TestPayInvoice(t *testing.T) {
	repo := &fakeRepo{card: &model.CreditCard{ID: "card-1", UserID: testUser, Name: "Principal", BestBuyDay: 7, ClosingDay: 15, DueDay: 25, Limit: 5000}}
	tracker := newTestTracker(repo)
	ctx := context.Background()

	paid, err := tracker.PayInvoice(ctx, testUser, 850, InvoiceFromSalary)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFixedBills, paid.Category)
	assert.Equal(t, model.PaymentDebit, paid.PaymentType)
	assert.Equal(t, "Pagamento Fatura - Principal", paid.Name)

	// Pagar com o cofre exige saldo no cofre.
	_, err = tracker.PayInvoice(ctx, testUser, 850, InvoiceFromVault)
	assert.ErrorIs(t, err, ErrInsufficientVault)

	_, err = tracker.TransferToVault(ctx, testUser, 1000)
	require.NoError(t, err)
	fromVault, err := tracker.PayInvoice(ctx, testUser, 850, InvoiceFromVault)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryVaultWithdrawal, fromVault.Category)
	assert.Equal(t, model.DestinationDirectUse, fromVault.DestinationType)
}

func TestPayInvoiceWithoutCard(t *testing.T) {
	tracker := newTestTracker(&fakeRepo{})
	_, err := tracker.PayInvoice(context.Background(), testUser, 100, InvoiceFromSalary)
	assert.ErrorIs(t, err, ErrNoCreditCard)
}

func TestRecurringFlow(t *testing.T) {
	repo := &fakeRepo{
		recurring: []model.RecurringExpense{
			{ID: "rec-1", UserID: testUser, Name: "Internet", BaseAmount: 120, Category: model.CategoryFixedBills, Active: true},
			{ID: "rec-2", UserID: testUser, Name: "Luz", Category: model.CategoryFixedBills, IsVariable: true, Active: true},
			{ID: "rec-3", UserID: testUser, Name: "Antiga", BaseAmount: 10, Category: model.CategoryFixedBills, Active: false},
		},
	}
	tracker := newTestTracker(repo)
	ctx := context.Background()

	statuses, err := tracker.GetRecurringStatus(ctx, testUser, "")
	require.NoError(t, err)
	// Inativas ficam de fora.
	require.Len(t, statuses, 2)

	// Conta fixa usa o valor base.
	paid, err := tracker.PayRecurring(ctx, testUser, "rec-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 120.0, paid.Amount)
	assert.Equal(t, "Internet", paid.Name)

	// Lançar de novo no mesmo mês é recusado.
	_, err = tracker.PayRecurring(ctx, testUser, "rec-1", 0)
	assert.ErrorIs(t, err, ErrRecurringPaid)

	// Conta variável exige o valor.
	_, err = tracker.PayRecurring(ctx, testUser, "rec-2", 0)
	assert.ErrorIs(t, err, ErrAmountRequired)
	paid, err = tracker.PayRecurring(ctx, testUser, "rec-2", 187.35)
	require.NoError(t, err)
	assert.Equal(t, 187.35, paid.Amount)

	statuses, err = tracker.GetRecurringStatus(ctx, testUser, "")
	require.NoError(t, err)
	for _, status := range statuses {
		assert.True(t, status.Paid)
	}

	_, err = tracker.PayRecurring(ctx, testUser, "rec-999", 0)
	assert.ErrorIs(t, err, ErrRecurringNotFound)
}

func TestRecurringStatusPendingFirst(t *testing.T) {
	repo := &fakeRepo{
		recurring: []model.RecurringExpense{
			{ID: "rec-1", UserID: testUser, Name: "Internet", BaseAmount: 120, Category: model.CategoryFixedBills, Active: true},
			{ID: "rec-2", UserID: testUser, Name: "Aluguel", BaseAmount: 1200, Category: model.CategoryFixedBills, Active: true},
		},
		transactions: []model.Transaction{
			// "internet" minúsculo ainda conta como paga.
			{ID: "paid", UserID: testUser, Name: "internet", Amount: 120, Category: model.CategoryFixedBills, Type: model.TypeExpense, PaymentType: model.PaymentDebit, Date: "2026-03-08"},
		},
	}
	tracker := newTestTracker(repo)

	statuses, err := tracker.GetRecurringStatus(context.Background(), testUser, "")
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "Aluguel", statuses[0].Expense.Name)
	assert.False(t, statuses[0].Paid)
	assert.True(t, statuses[1].Paid)
}

func TestDeactivateRecurringExpense(t *testing.T) {
	repo := &fakeRepo{
		recurring: []model.RecurringExpense{
			{ID: "rec-1", UserID: testUser, Name: "Internet", BaseAmount: 120, Category: model.CategoryFixedBills, Active: true},
		},
	}
	tracker := newTestTracker(repo)
	ctx := context.Background()

	require.NoError(t, tracker.DeactivateRecurringExpense(ctx, testUser, "rec-1"))
	assert.False(t, repo.recurring[0].Active)

	err := tracker.DeactivateRecurringExpense(ctx, testUser, "rec-404")
	assert.ErrorIs(t, err, ErrRecurringNotFound)
}

func TestEnsureDefaultCard(t *testing.T) {
	repo := &fakeRepo{}
	tracker := newTestTracker(repo)
	ctx := context.Background()

	require.NoError(t, tracker.EnsureDefaultCard(ctx, testUser))
	require.NotNil(t, repo.card)
	assert.Equal(t, model.DefaultBestBuyDay, repo.card.BestBuyDay)

	repo.card.Name = "Meu Cartão"
	require.NoError(t, tracker.EnsureDefaultCard(ctx, testUser))
	// Já existia: nada é sobrescrito.
	assert.Equal(t, "Meu Cartão", repo.card.Name)
}

func TestConfigureCreditCard(t *testing.T) {
	repo := &fakeRepo{
		transactions: []model.Transaction{
			{ID: "credit", UserID: testUser, Name: "Cinema", Amount: 60, Category: model.CategoryLifestyle, Type: model.TypeExpense, PaymentType: model.PaymentCredit, Date: "2026-03-02"},
		},
	}
	tracker := newTestTracker(repo)
	ctx := context.Background()

	card, err := tracker.ConfigureCreditCard(ctx, testUser, model.CreditCard{
		Name:       "Novo Cartão",
		Limit:      8000,
		UsedLimit:  12345, // ignorado: projeção é rederivada
		ClosingDay: 10,
		DueDay:     20,
		BestBuyDay: 3,
	})
	require.NoError(t, err)
	// Compra dia 2 < 3: fatura de março, dentro do mês de referência.
	assert.Equal(t, 60.0, card.UsedLimit)

	_, err = tracker.ConfigureCreditCard(ctx, testUser, model.CreditCard{Name: "Quebrado", ClosingDay: 40, DueDay: 20, BestBuyDay: 3})
	var validation *model.ValidationError
	assert.ErrorAs(t, err, &validation)
}
