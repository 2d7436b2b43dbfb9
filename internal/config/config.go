package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Prefix is prepended to every environment variable name.
const Prefix = "SEASONAL"

// Config is the application configuration.
type Config struct {
	DataPath           string        `envconfig:"DATA_PATH" default:"dados.csv" validate:"required"`
	DateColumn         string        `envconfig:"DATE_COLUMN" default:"date" validate:"required"`
	Port               int           `envconfig:"PORT" default:"9095" validate:"min=1,max=65535"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogPretty          bool          `envconfig:"LOG_PRETTY" default:"true"`
	Locale             string        `envconfig:"LOCALE" default:"pt" validate:"oneof=pt en"`
	IncludeCurrentYear bool          `envconfig:"INCLUDE_CURRENT_YEAR" default:"true"`
	AnnualLookback     int           `envconfig:"ANNUAL_LOOKBACK" default:"10" validate:"min=1"`
	ChartCacheTTL      time.Duration `envconfig:"CHART_CACHE_TTL" default:"60s" validate:"min=0"`
	ChartTheme         string        `envconfig:"CHART_THEME" default:"dark" validate:"oneof=dark light"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	Telegram TelegramConfig `envconfig:"TELEGRAM"`
	OpenAI   OpenAIConfig   `envconfig:"OPENAI"`
}

// TelegramConfig enables the bot when both values are set.
type TelegramConfig struct {
	Token            string `envconfig:"TOKEN"`
	WebhookPublicURL string `envconfig:"WEBHOOK_PUBLIC_URL" validate:"omitempty,url"`
}

// Enabled reports whether the bot should start.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.WebhookPublicURL != ""
}

// OpenAIConfig enables profile commentary when APIKey is set.
type OpenAIConfig struct {
	APIKey string  `envconfig:"API_KEY"`
	Model  string  `envconfig:"MODEL" default:"gpt-4" validate:"required"`
	RPS    float64 `envconfig:"RPS" default:"0.5" validate:"gt=0"`
}

// Enabled reports whether commentary is available.
func (o OpenAIConfig) Enabled() bool { return o.APIKey != "" }

// Addr returns the HTTP listen address.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Load reads .env, the optional YAML file named by SEASONAL_CONFIG_FILE and
// the environment, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	if path := os.Getenv(Prefix + "_CONFIG_FILE"); path != "" {
		if err := applyFile(path); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// applyFile exports the keys of a flat YAML file as environment variables
// that are not already set. Keys are lower case variable names without the
// prefix, with "telegram" and "openai" sections allowed one level deep.
func applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	for key, value := range flatten("", doc) {
		name := Prefix + "_" + strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, value); err != nil {
			return err
		}
	}
	return nil
}

func flatten(prefix string, doc map[string]interface{}) map[string]string {
	out := map[string]string{}
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "_" + k
		}
		switch val := v.(type) {
		case map[interface{}]interface{}:
			nested := make(map[string]interface{}, len(val))
			for nk, nv := range val {
				nested[fmt.Sprint(nk)] = nv
			}
			for fk, fv := range flatten(key, nested) {
				out[fk] = fv
			}
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
	return out
}
