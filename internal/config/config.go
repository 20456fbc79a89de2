package config

import (
	"errors"
	"os"
	"sync"
)

type Config struct {
	Env            string
	LogLevel       string
	BotToken       string
	StorageBackend string
	SQLitePath     string
	PostgresDSN    string
	APIAddr        string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:            getEnv("APP_ENV", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			BotToken:       getEnv("BOT_TOKEN", ""),
			StorageBackend: getEnv("STORAGE_BACKEND", "sqlite"),
			SQLitePath:     getEnv("SQLITE_PATH", "data/carecloud.db"),
			PostgresDSN:    getEnv("POSTGRES_DSN", ""),
			APIAddr:        getEnv("API_ADDR", ":8090"),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.StorageBackend == "postgres" && c.PostgresDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.StorageBackend == "sqlite" && c.SQLitePath == "" {
		return errors.New("SQLite storage requires SQLITE_PATH to be set")
	}
	if c.StorageBackend != "sqlite" && c.StorageBackend != "postgres" {
		return errors.New("STORAGE_BACKEND must be one of: sqlite, postgres")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	raw, err := os.ReadFile(".env")
	if err != nil {
		return err
	}
	for _, line := range splitLines(string(raw)) {
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		kv := splitKV(line)
		if len(kv) == 2 {
			os.Setenv(kv[0], kv[1])
		}
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' || c == '\r' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitKV(s string) []string {
	for i, c := range s {
		if c == '=' {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}
