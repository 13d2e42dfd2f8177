package main

import (
	"context"

	"github.com/SirArucard/pocket-hug-finance/internal/bot"
	"github.com/SirArucard/pocket-hug-finance/internal/config"
	"github.com/SirArucard/pocket-hug-finance/internal/repository"
	"github.com/SirArucard/pocket-hug-finance/internal/service"
)

// Request é o corpo que chega do API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response é a resposta devolvida ao API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return errorResponse(err)
	}

	tracker := service.NewFinanceTracker(repo)

	b, err := bot.NewBot(cfg.TelegramToken, tracker)
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Ponto de entrada para teste local
}
