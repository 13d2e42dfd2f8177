package repository

import (
	"context"

	"github.com/SirArucard/pocket-hug-finance/internal/model"
)

// Repository define o contrato com o armazenamento remoto. A identidade do
// usuário entra explícita em toda chamada; não há usuário ambiente.
type Repository interface {
	// Lançamentos
	GetTransactions(ctx context.Context, userID int64) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	// CreateTransactions grava o lote inteiro em uma única escrita: ou todas
	// as parcelas entram, ou nenhuma.
	CreateTransactions(ctx context.Context, transactions []model.Transaction) error
	DeleteTransactions(ctx context.Context, ids []string, userID int64) error

	// Cartão (linha única de configuração de ciclo)
	GetCreditCard(ctx context.Context, userID int64) (*model.CreditCard, error)
	CreateCreditCard(ctx context.Context, card *model.CreditCard) error
	UpdateCreditCard(ctx context.Context, card *model.CreditCard) error

	// Preferências
	GetSettings(ctx context.Context, userID int64) (*model.Settings, error)
	CreateSettings(ctx context.Context, settings *model.Settings) error
	UpdateSettings(ctx context.Context, settings *model.Settings) error

	// Contas recorrentes
	GetRecurringExpenses(ctx context.Context, userID int64) ([]model.RecurringExpense, error)
	CreateRecurringExpense(ctx context.Context, expense *model.RecurringExpense) error
	UpdateRecurringExpense(ctx context.Context, expense *model.RecurringExpense) error
}
