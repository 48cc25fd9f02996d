package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Server  ServerConfig
	Payment PaymentConfig
}

type AppConfig struct {
	Name        string
	Environment string
	// BaseURL is the public root used as the resource prefix in payment
	// requirements sent to the facilitator.
	BaseURL string
}

type ServerConfig struct {
	Port string
}

type PaymentConfig struct {
	FacilitatorURL string
	// Address is the payee wallet that receives every settled payment.
	Address           string
	Network           string
	SettleWaitSeconds int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	settleWait, err := strconv.Atoi(getEnv("SETTLE_WAIT_SECONDS", "60"))
	if err != nil || settleWait <= 0 {
		return nil, errors.New("invalid settle wait seconds")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "microMart"),
			Environment: getEnv("APP_ENV", "development"),
			BaseURL:     getEnv("BASE_URL", "http://localhost:4021"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "4021"),
		},
		Payment: PaymentConfig{
			FacilitatorURL:    getEnv("FACILITATOR_URL", ""),
			Address:           getEnv("ADDRESS", ""),
			Network:           getEnv("NETWORK", "base-sepolia"),
			SettleWaitSeconds: settleWait,
		},
	}

	if cfg.Payment.FacilitatorURL == "" {
		return nil, errors.New("missing facilitator url")
	}

	if cfg.Payment.Address == "" {
		return nil, errors.New("missing payee address")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
