package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	Database   Database   `yaml:"database"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Redis      Redis      `yaml:"redis"`
	Stripe     Stripe     `yaml:"stripe"`
	Booking    Booking    `yaml:"booking"`
	Payment    Payment    `yaml:"payment"`
	Cleanup    Cleanup    `yaml:"cleanup"`
	SEO        SEO        `yaml:"seo"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"provaa"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Stripe struct {
	SecretKey  string `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	Currency   string `yaml:"currency" env-default:"eur"`
	SuccessURL string `yaml:"success_url" env-default:"http://localhost:5173/payment/return"`
	CancelURL  string `yaml:"cancel_url" env-default:"http://localhost:5173/payment/cancelled"`
}

type Booking struct {
	ServiceFeePercent float64 `yaml:"service_fee_percent" env-default:"5"`
	MaxTickets        int     `yaml:"max_tickets" env-default:"20"`
}

type Payment struct {
	PollInterval time.Duration `yaml:"poll_interval" env-default:"1s"`
	MaxAttempts  int           `yaml:"max_attempts" env-default:"3"`
	SessionTTL   time.Duration `yaml:"session_ttl" env-default:"1h"`
}

type Cleanup struct {
	Threshold time.Duration `yaml:"threshold" env-default:"30m"`
	Interval  time.Duration `yaml:"interval" env-default:"1m"`
}

type SEO struct {
	CacheTTL time.Duration `yaml:"cache_ttl" env-default:"5m"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
