package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	SupabaseURL   string
	SupabaseKey   string
	TelegramToken string
}

func LoadConfig() (*Config, error) {
	// .env é opcional; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
	}

	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" || cfg.TelegramToken == "" {
		return nil, fmt.Errorf("SUPABASE_URL, SUPABASE_KEY e TELEGRAM_TOKEN são obrigatórios")
	}

	return cfg, nil
}
