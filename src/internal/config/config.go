package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/api-sage/fiat-ledger-core/src/internal/logger"
)

const defaultListenAddr = ":8080"
const defaultChannelID = "LedgerApp"
const defaultChannelKey = "LedgerChannelKey001"

type Config struct {
	ListenAddr string
	ChannelID  string
	ChannelKey string
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("config no .env file found, relying on environment variables", nil)
	}

	return Config{
		ListenAddr: envOrDefault("LISTEN_ADDR", defaultListenAddr),
		ChannelID:  envOrDefault("CHANNEL_ID", defaultChannelID),
		ChannelKey: envOrDefault("CHANNEL_KEY", defaultChannelKey),
	}, nil
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
