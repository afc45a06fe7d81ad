package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"` // срок жизни access-токена
	} `yaml:"jwt"`

	Stripe struct {
		SecretKey  string `yaml:"secret_key"`
		BaseURL    string `yaml:"base_url"` // переопределяется в тестах
		SuccessURL string `yaml:"success_url"`
		CancelURL  string `yaml:"cancel_url"`

		// Stripe price ID на каждый оплачиваемый план
		PriceIDs map[string]string `yaml:"price_ids"`
	} `yaml:"stripe"`

	Seats struct {
		FounderTotal int `yaml:"founder_total"`
	} `yaml:"seats"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Sessions struct {
		// Через сколько дней после истечения чистить строки sessions.
		// 0 - не чистить вообще (ledger только растет).
		RetentionDays int `yaml:"retention_days"`
	} `yaml:"sessions"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию.
// Если задан DATABASE_URL - берем все из переменных окружения (режим теста/деплоя),
// иначе читаем config/config.yaml.
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	if ttl, err := strconv.Atoi(os.Getenv("JWT_TTL_HOURS")); err == nil && ttl > 0 {
		cfg.JWT.TTLHours = ttl
	}

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.BaseURL = os.Getenv("STRIPE_BASE_URL")
	cfg.Stripe.SuccessURL = os.Getenv("STRIPE_SUCCESS_URL")
	cfg.Stripe.CancelURL = os.Getenv("STRIPE_CANCEL_URL")
	cfg.Stripe.PriceIDs = map[string]string{
		"founder":         os.Getenv("STRIPE_FOUNDER_PRICE_ID"),
		"pioneer":         os.Getenv("STRIPE_PIONEER_PRICE_ID"),
		"monthly_creator": os.Getenv("STRIPE_MONTHLY_CREATOR_PRICE_ID"),
		"monthly_pro":     os.Getenv("STRIPE_MONTHLY_PRO_PRICE_ID"),
	}

	if seats, err := strconv.Atoi(os.Getenv("FOUNDER_TOTAL_SEATS")); err == nil {
		cfg.Seats.FounderTotal = seats
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = strings.Split(origins, ",")
	}

	if days, err := strconv.Atoi(os.Getenv("SESSION_RETENTION_DAYS")); err == nil {
		cfg.Sessions.RetentionDays = days
	}

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 30 * 24 // 30 дней
	}
	if cfg.Stripe.BaseURL == "" {
		cfg.Stripe.BaseURL = "https://api.stripe.com"
	}
	if cfg.Stripe.SuccessURL == "" {
		cfg.Stripe.SuccessURL = "https://rinawarptech.com/terminal-pro-success.html"
	}
	if cfg.Stripe.CancelURL == "" {
		cfg.Stripe.CancelURL = "https://rinawarptech.com/pricing.html"
	}
	if cfg.Seats.FounderTotal == 0 {
		cfg.Seats.FounderTotal = 500
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{
			"https://rinawarptech.com",
			"https://www.rinawarptech.com",
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
