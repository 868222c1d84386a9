package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	DefaultTTL  time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	SettingsTTL time.Duration `yaml:"settings_ttl" env:"CACHE_SETTINGS_TTL" env-default:"30s"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"no-reply@example.com"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Storefront"`
	Host      string `yaml:"HOST" env:"SENDGRID_HOST" env-default:"https://api.sendgrid.com"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type OtelConfig struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"storefront-checkout"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"http://localhost:4318/v1/traces"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

// GatewayConfig holds the transport settings shared by every payment gateway.
// Merchant credentials live in the store settings document, not here.
type GatewayConfig struct {
	Timeout         time.Duration `yaml:"timeout" env:"GATEWAY_TIMEOUT" env-default:"15s"`
	CallbackBaseURL string        `yaml:"callback_base_url" env:"GATEWAY_CALLBACK_BASE_URL" env-default:"http://localhost:8080"`
	SuccessPageURL  string        `yaml:"success_page_url" env:"GATEWAY_SUCCESS_PAGE_URL" env-default:"http://localhost:3000/checkout/success"`
	FailurePageURL  string        `yaml:"failure_page_url" env:"GATEWAY_FAILURE_PAGE_URL" env-default:"http://localhost:3000/checkout/failure"`
}

type CartConfig struct {
	SweepInterval time.Duration `yaml:"sweep_interval" env:"CART_SWEEP_INTERVAL" env-default:"5m"`
	SweepBatch    int           `yaml:"sweep_batch" env:"CART_SWEEP_BATCH" env-default:"200"`
	SweepLockTTL  time.Duration `yaml:"sweep_lock_ttl" env:"CART_SWEEP_LOCK_TTL" env-default:"2m"`
}

type ShippingConfig struct {
	FlatRate       float64 `yaml:"flat_rate" env:"SHIPPING_FLAT_RATE" env-default:"0"`
	FreeOverAmount float64 `yaml:"free_over_amount" env:"SHIPPING_FREE_OVER_AMOUNT" env-default:"0"`
}

type PaymentConfig struct {
	VerifyWait time.Duration `yaml:"verify_wait" env:"PAYMENT_VERIFY_WAIT" env-default:"5s"`
	PendingTTL time.Duration `yaml:"pending_ttl" env:"PAYMENT_PENDING_TTL" env-default:"30m"`
}

// RateConfig bounds checkout attempts per owner inside a sliding window.
type RateConfig struct {
	WindowSize  time.Duration `yaml:"window_size" env:"CHECKOUT_RATE_WINDOW" env-default:"1m"`
	MaxAttempts int64         `yaml:"max_attempts" env:"CHECKOUT_RATE_MAX_ATTEMPTS" env-default:"5"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database       `yaml:"database"`
	RedisConnect RedisConnect   `yaml:"redis"`
	Cache        CacheConfig    `yaml:"cache"`
	SendGrid     SendGrid       `yaml:"sendgrid"`
	Security     Security       `yaml:"security"`
	Otel         OtelConfig     `yaml:"otel"`
	Gateway      GatewayConfig  `yaml:"gateway"`
	Cart         CartConfig     `yaml:"cart"`
	Shipping     ShippingConfig `yaml:"shipping"`
	Payment      PaymentConfig  `yaml:"payment"`
	RateConfig   RateConfig     `yaml:"checkout_rate"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the yaml config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	if r.Username == "" && r.Password == "" {
		return fmt.Sprintf("redis://%s:%s/%d", r.Host, r.Port, r.DB)
	}

	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}
