package main

import (
	"log"

	"github.com/SirArucard/pocket-hug-finance/internal/bot"
	"github.com/SirArucard/pocket-hug-finance/internal/config"
	"github.com/SirArucard/pocket-hug-finance/internal/repository"
	"github.com/SirArucard/pocket-hug-finance/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		log.Fatal(err)
	}

	tracker := service.NewFinanceTracker(repo)

	b, err := bot.NewBot(cfg.TelegramToken, tracker)
	if err != nil {
		log.Fatal(err)
	}

	if err := b.Start(); err != nil {
		log.Fatal(err)
	}
}
