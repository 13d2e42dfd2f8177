package bot

import (
	"encoding/json"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/SirArucard/pocket-hug-finance/internal/charts"
	"github.com/SirArucard/pocket-hug-finance/internal/model"
	"github.com/SirArucard/pocket-hug-finance/internal/service"
)

// UserState guarda onde o usuário parou no fluxo de lançamento.
type UserState struct {
	TransactionType  model.TransactionType
	SelectedCategory model.Category
	PaymentType      model.PaymentType
	AwaitingAction   string // "amount", "reserve", "withdraw" ou vazio
}

type Bot struct {
	api     *tgbotapi.BotAPI
	service *service.FinanceTracker
	charts  *charts.Generator

	mu     sync.Mutex
	states map[int64]*UserState // estados por usuário
}

func NewBot(token string, service *service.FinanceTracker) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		service: service,
		charts:  charts.NewGenerator(),
		states:  make(map[int64]*UserState),
	}, nil
}

// Start roda o bot em modo long polling
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			// Loga o erro mas segue atendendo
			fmt.Printf("Error handling update: %v\n", err)
		}
	}

	return nil
}

// HandleWebhook é o ponto de entrada para atualizações via webhook
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	if update.Message != nil {
		return b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) state(userID int64) *UserState {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.states[userID]
	if !ok {
		state = &UserState{}
		b.states[userID] = state
	}
	return state
}

func (b *Bot) resetState(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.states, userID)
}

func (b *Bot) send(chatID int64, text string) {
	b.api.Send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	b.api.Send(tgbotapi.NewMessage(chatID, "❌ "+text))
}
