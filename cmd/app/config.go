package main

import (
	"fmt"
	"strings"
	"time"

	"questledger/internal/repository"
	"questledger/internal/service"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`

	Auth     AuthConfig     `yaml:"auth"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Minter   MinterConfig   `yaml:"minter"`
	Notifier NotifierConfig `yaml:"notifier"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AuthConfig struct {
	JWTSecret      string `yaml:"jwtSecret"`
	OwnerAddress   string `yaml:"ownerAddress"`
	BackendAddress string `yaml:"backendAddress"`
}

type LedgerConfig struct {
	Cooldown         time.Duration `yaml:"cooldown"`
	DailyClaimAmount int64         `yaml:"dailyClaimAmount"`
}

type MinterConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type NotifierConfig struct {
	Enabled          bool   `yaml:"enabled"`
	TelegramBotToken string `yaml:"telegramBotToken"`
	ChatID           int64  `yaml:"chatId"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Ledger.Cooldown < service.MinCooldown {
		return nil, fmt.Errorf("ledger cooldown %s is below the minimum of %s", cfg.Ledger.Cooldown, service.MinCooldown)
	}
	if cfg.Ledger.DailyClaimAmount < 0 {
		return nil, fmt.Errorf("daily claim amount must not be negative")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth jwt secret is required")
	}

	return &cfg, nil
}
