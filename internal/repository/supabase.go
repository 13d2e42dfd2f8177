package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/supabase-community/supabase-go"

	"github.com/SirArucard/pocket-hug-finance/internal/model"
)

// SupabaseRepository persiste tudo em tabelas do Supabase (PostgREST).
type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) GetTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	data, count, err := r.client.From("transactions").
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Order("date.desc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	_ = count

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to parse transactions: %w", err)
	}
	return transactions, nil
}

func (r *SupabaseRepository) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	data, count, err := r.client.From("transactions").Insert(transaction, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	fmt.Printf("Transaction created. Response data: %s, count: %d\n", string(data), count)

	var created []model.Transaction
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created transaction: %w", err)
	}
	if len(created) > 0 {
		transaction.ID = created[0].ID
		transaction.CreatedAt = created[0].CreatedAt
	}
	return nil
}

// CreateTransactions insere o lote em uma única chamada; o PostgREST grava o
// array inteiro na mesma transação do Postgres, então não há grupo parcial.
func (r *SupabaseRepository) CreateTransactions(ctx context.Context, transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	_, count, err := r.client.From("transactions").Insert(transactions, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create transaction batch: %w", err)
	}
	fmt.Printf("Transaction batch created, %d rows (count: %d)\n", len(transactions), count)
	return nil
}

func (r *SupabaseRepository) DeleteTransactions(ctx context.Context, ids []string, userID int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, count, err := r.client.From("transactions").
		Delete("", "").
		In("id", ids).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	_ = count
	return nil
}

func (r *SupabaseRepository) GetCreditCard(ctx context.Context, userID int64) (*model.CreditCard, error) {
	data, count, err := r.client.From("credit_cards").
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get credit card: %w", err)
	}
	_ = count

	var cards []model.CreditCard
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse credit card: %w", err)
	}
	if len(cards) == 0 {
		return nil, nil
	}
	return &cards[0], nil
}

func (r *SupabaseRepository) CreateCreditCard(ctx context.Context, card *model.CreditCard) error {
	data, count, err := r.client.From("credit_cards").Insert(card, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create credit card: %w", err)
	}
	_ = count

	var created []model.CreditCard
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created credit card: %w", err)
	}
	if len(created) > 0 {
		card.ID = created[0].ID
		card.CreatedAt = created[0].CreatedAt
	}
	return nil
}

func (r *SupabaseRepository) UpdateCreditCard(ctx context.Context, card *model.CreditCard) error {
	_, count, err := r.client.From("credit_cards").
		Update(card, "", "").
		Eq("id", card.ID).
		Eq("user_id", strconv.FormatInt(card.UserID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update credit card: %w", err)
	}
	_ = count
	return nil
}

func (r *SupabaseRepository) GetSettings(ctx context.Context, userID int64) (*model.Settings, error) {
	data, count, err := r.client.From("settings").
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	_ = count

	var rows []model.Settings
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *SupabaseRepository) CreateSettings(ctx context.Context, settings *model.Settings) error {
	data, count, err := r.client.From("settings").Insert(settings, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}
	_ = count

	var created []model.Settings
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created settings: %w", err)
	}
	if len(created) > 0 {
		settings.ID = created[0].ID
	}
	return nil
}

func (r *SupabaseRepository) UpdateSettings(ctx context.Context, settings *model.Settings) error {
	_, count, err := r.client.From("settings").
		Update(settings, "", "").
		Eq("id", settings.ID).
		Eq("user_id", strconv.FormatInt(settings.UserID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	_ = count
	return nil
}

func (r *SupabaseRepository) GetRecurringExpenses(ctx context.Context, userID int64) ([]model.RecurringExpense, error) {
	data, count, err := r.client.From("recurring_expenses").
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring expenses: %w", err)
	}
	_ = count

	var expenses []model.RecurringExpense
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, fmt.Errorf("failed to parse recurring expenses: %w", err)
	}
	return expenses, nil
}

func (r *SupabaseRepository) CreateRecurringExpense(ctx context.Context, expense *model.RecurringExpense) error {
	data, count, err := r.client.From("recurring_expenses").Insert(expense, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create recurring expense: %w", err)
	}
	_ = count

	var created []model.RecurringExpense
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created recurring expense: %w", err)
	}
	if len(created) > 0 {
		expense.ID = created[0].ID
		expense.CreatedAt = created[0].CreatedAt
	}
	return nil
}

func (r *SupabaseRepository) UpdateRecurringExpense(ctx context.Context, expense *model.RecurringExpense) error {
	_, count, err := r.client.From("recurring_expenses").
		Update(expense, "", "").
		Eq("id", expense.ID).
		Eq("user_id", strconv.FormatInt(expense.UserID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update recurring expense: %w", err)
	}
	_ = count
	return nil
}
