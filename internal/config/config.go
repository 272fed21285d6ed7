package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Mode  string `yaml:"mode"`
		Level string `yaml:"level"`
	} `yaml:"log"`
	Telegram struct {
		Token         string `yaml:"token"`
		Mode          string `yaml:"mode"` // polling or webhook
		WebhookURL    string `yaml:"webhook_url"`
		WebhookSecret string `yaml:"webhook_secret"`
		PollTimeout   string `yaml:"poll_timeout"`
		APIURL        string `yaml:"api_url"`
	} `yaml:"telegram"`
	Contact struct {
		Email string `yaml:"email"`
		Phone string `yaml:"phone"`
	} `yaml:"contact"`
	Quiz struct {
		Source       string `yaml:"source"` // file or postgres
		CatalogPath  string `yaml:"catalog_path"`
		CatalogName  string `yaml:"catalog_name"`
		CacheTTL     string `yaml:"cache_ttl"`
		MinQuestions int    `yaml:"min_questions"`
		MaxQuestions int    `yaml:"max_questions"`
	} `yaml:"quiz"`
	Render struct {
		FontPath  string `yaml:"font_path"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"render"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
}

// Load reads a .env file when present, then the YAML config at path, then
// applies environment overrides and defaults. A missing YAML file is not an error.
func Load(path string) (Config, error) {
	cfg := Config{}
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	override(&c.Server.Port, "PORT")
	override(&c.Log.Mode, "LOG_MODE")
	override(&c.Log.Level, "LOG_LEVEL")
	override(&c.Telegram.Token, "BOT_TOKEN")
	override(&c.Telegram.Mode, "TELEGRAM_MODE")
	override(&c.Telegram.WebhookURL, "TELEGRAM_WEBHOOK_URL")
	override(&c.Telegram.WebhookSecret, "TELEGRAM_WEBHOOK_SECRET")
	override(&c.Contact.Email, "ZOO_CONTACT_EMAIL")
	override(&c.Contact.Phone, "ZOO_CONTACT_PHONE")
	override(&c.Quiz.Source, "CATALOG_SOURCE")
	override(&c.Quiz.CatalogPath, "CATALOG_PATH")
	override(&c.Render.FontPath, "RENDER_FONT_PATH")
	override(&c.Render.OutputDir, "RENDER_OUTPUT_DIR")
	override(&c.Redis.Addr, "REDIS_ADDR")
	override(&c.Postgres.URL, "POSTGRES_URL")
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if db, err := strconv.Atoi(raw); err == nil {
			c.Redis.DB = db
		}
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.Port, "8080")
	setDefault(&c.Log.Level, "info")
	setDefault(&c.Telegram.Mode, "polling")
	setDefault(&c.Telegram.PollTimeout, "30s")
	setDefault(&c.Telegram.APIURL, "https://api.telegram.org")
	setDefault(&c.Contact.Email, "contact@moscowzoo.ru")
	setDefault(&c.Contact.Phone, "+7(495)123-45-67")
	setDefault(&c.Quiz.Source, "file")
	setDefault(&c.Quiz.CatalogName, "default")
	setDefault(&c.Render.OutputDir, "generated_images")
	setDefault(&c.Redis.TTL, "24h")
	if c.Quiz.MinQuestions == 0 {
		c.Quiz.MinQuestions = 5
	}
	if c.Quiz.MaxQuestions == 0 {
		c.Quiz.MaxQuestions = 10
	}
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDefault(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
