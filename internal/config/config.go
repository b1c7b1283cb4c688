// Package config loads application configuration from the environment and an
// optional config file.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/casamontes/mayordomo/internal/common"
)

// Provider holds credentials and model choice for one AI backend.
type Provider struct {
	APIKey string
	Model  string
}

// Config is the resolved application configuration.
type Config struct {
	TelegramToken   string
	DatabasePath    string
	DashboardPath   string
	PIDFilePath     string
	AllowedUserIDs  []int64
	Port            int
	ClassifyTimeout time.Duration

	OpenRouter Provider
	Groq       Provider
	Gemini     Provider
}

// Load resolves configuration from viper, which has already merged the config
// file, MAYORDOMO_* environment variables and the flat env names the bot has
// always used (TELEGRAM_TOKEN, OPENROUTER_API_KEY, ...). A missing .env file
// is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("database.path", "mayordomo.db")
	viper.SetDefault("dashboard.path", "dashboard.html")
	viper.SetDefault("pidfile", "bot.pid")
	viper.SetDefault("port", 8000)
	viper.SetDefault("classify.timeout", "45s")
	viper.SetDefault("providers.openrouter.model", "meta-llama/llama-3.1-8b-instruct:free")
	viper.SetDefault("providers.groq.model", "llama-3.3-70b-versatile")
	viper.SetDefault("providers.gemini.model", "gemini-2.0-flash")

	// Legacy flat env names take precedence over config file values so an
	// existing deployment keeps working unchanged.
	bindEnvOverride("telegram.token", "TELEGRAM_TOKEN")
	bindEnvOverride("providers.openrouter.api_key", "OPENROUTER_API_KEY")
	bindEnvOverride("providers.groq.api_key", "GROQ_API_KEY")
	bindEnvOverride("providers.gemini.api_key", "GEMINI_API_KEY")
	bindEnvOverride("allowed_user_ids", "ALLOWED_USER_IDS")
	bindEnvOverride("port", "PORT")

	cfg := &Config{
		TelegramToken:   viper.GetString("telegram.token"),
		DatabasePath:    viper.GetString("database.path"),
		DashboardPath:   viper.GetString("dashboard.path"),
		PIDFilePath:     viper.GetString("pidfile"),
		Port:            viper.GetInt("port"),
		ClassifyTimeout: viper.GetDuration("classify.timeout"),
		OpenRouter: Provider{
			APIKey: viper.GetString("providers.openrouter.api_key"),
			Model:  viper.GetString("providers.openrouter.model"),
		},
		Groq: Provider{
			APIKey: viper.GetString("providers.groq.api_key"),
			Model:  viper.GetString("providers.groq.model"),
		},
		Gemini: Provider{
			APIKey: viper.GetString("providers.gemini.api_key"),
			Model:  viper.GetString("providers.gemini.model"),
		},
	}

	ids, err := ParseUserIDs(viper.GetString("allowed_user_ids"))
	if err != nil {
		return nil, fmt.Errorf("%w: allowed_user_ids: %v", common.ErrInvalidConfig, err)
	}
	cfg.AllowedUserIDs = ids

	return cfg, nil
}

// Validate checks the minimum configuration needed to serve.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("%w: telegram token", common.ErrMissingConfig)
	}
	if len(c.AllowedUserIDs) == 0 {
		return fmt.Errorf("%w: allowed user ids", common.ErrMissingConfig)
	}
	return nil
}

// ParseUserIDs parses a comma-separated ID list, tolerating blanks.
func ParseUserIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func bindEnvOverride(key, env string) {
	_ = viper.BindEnv(key, env)
}
