package config

import "golang.org/x/crypto/bcrypt"

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	Security   SecurityConfig `mapstructure:"security"`
	Log        LogConfig      `mapstructure:"log"`
	Session    SessionConfig  `mapstructure:"session"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

type LedgerConfig struct {
	// AllowOverdraft lets a confirmation take the sender below zero.
	AllowOverdraft bool `mapstructure:"allow_overdraft"`
	ListLimit      int  `mapstructure:"list_limit"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// SessionConfig holds the user the CLI acts as after login.
type SessionConfig struct {
	Username string `mapstructure:"username"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite", Path: ""},
		Ledger:   LedgerConfig{AllowOverdraft: false, ListLimit: 50},
		Security: SecurityConfig{BcryptCost: bcrypt.DefaultCost},
		Log:      LogConfig{Level: "info", Format: "json", File: ""},
	}
}
