package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается, если значения конфигурации противоречивы
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Sweeper   SweeperConfig   `toml:"sweeper"`
	Gateway   GatewayConfig   `toml:"gateway"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Broker    BrokerConfig    `toml:"broker"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level   string `toml:"level"`
	File    string `toml:"file"`
	Console bool   `toml:"console"` // человекочитаемый вывод для dev окружения
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig правила бронирования
type BookingConfig struct {
	HoldMinutes int    `toml:"hold_minutes"`
	MaxNights   int    `toml:"max_nights"`
	Timezone    string `toml:"timezone"`
}

// HoldDuration время жизни временной брони
func (c BookingConfig) HoldDuration() time.Duration {
	return time.Duration(c.HoldMinutes) * time.Minute
}

// Location часовой пояс, в котором считается "сегодня"
func (c BookingConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// SweeperConfig настройки фонового перевода статусов
type SweeperConfig struct {
	Enabled  bool `toml:"enabled"`
	Interval int  `toml:"interval"` // секунды
}

// GatewayConfig настройки платёжного шлюза
type GatewayConfig struct {
	URL       string `toml:"url"`
	KeyID     string `toml:"key_id"`
	KeySecret string `toml:"key_secret"`
	Timeout   int    `toml:"timeout"` // секунды
	RPS       int    `toml:"rps"`
	Currency  string `toml:"currency"` // валюта цен, ISO 4217
}

// RedisConfig подключение к Redis для общего счётчика запросов
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RateLimitConfig ограничение частоты запросов на создание брони и оплату
type RateLimitConfig struct {
	Enabled       bool `toml:"enabled"`
	HoldLimit     int  `toml:"hold_limit"`
	PaymentLimit  int  `toml:"payment_limit"`
	WindowSeconds int  `toml:"window_seconds"`
}

// Window окно счётчика
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// BrokerConfig публикация событий для админки в RabbitMQ
type BrokerConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
	Queue    string `toml:"queue"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "apartments",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "apartment-booking",
		},
		Booking: BookingConfig{
			HoldMinutes: 30,
			MaxNights:   90,
			Timezone:    "UTC",
		},
		Sweeper: SweeperConfig{
			Enabled:  false,
			Interval: 60,
		},
		Gateway: GatewayConfig{
			Timeout:  10,
			RPS:      10,
			Currency: "INR",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		RateLimit: RateLimitConfig{
			Enabled:       true,
			HoldLimit:     10,
			PaymentLimit:  20,
			WindowSeconds: 60,
		},
		Broker: BrokerConfig{
			Exchange: "booking",
			Queue:    "admin.notifications",
		},
	}
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Gateway.URL, "GATEWAY_URL")
	setString(&c.Gateway.KeyID, "GATEWAY_KEY_ID")
	setString(&c.Gateway.KeySecret, "GATEWAY_KEY_SECRET")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Broker.URL, "BROKER_URL")
	setString(&c.Logs.Level, "LOG_LEVEL")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Server.HTTPPort, "HTTP_PORT"); err != nil {
		return err
	}
	return nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Booking.HoldMinutes <= 0 {
		return fmt.Errorf("%w: booking.hold_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.MaxNights <= 0 {
		return fmt.Errorf("%w: booking.max_nights must be positive", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Sweeper.Enabled && c.Sweeper.Interval <= 0 {
		return fmt.Errorf("%w: sweeper.interval must be positive", ErrInvalidConfig)
	}
	if c.Gateway.URL == "" || c.Gateway.KeySecret == "" {
		return fmt.Errorf("%w: gateway.url and gateway.key_secret are required", ErrInvalidConfig)
	}
	if len(c.Gateway.Currency) != 3 {
		return fmt.Errorf("%w: gateway.currency must be a 3-letter ISO 4217 code", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.HoldLimit <= 0 || c.RateLimit.PaymentLimit <= 0 || c.RateLimit.WindowSeconds <= 0) {
		return fmt.Errorf("%w: ratelimit limits and window must be positive", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required", ErrInvalidConfig)
	}
	if c.Broker.Enabled && (c.Broker.URL == "" || c.Broker.Queue == "") {
		return fmt.Errorf("%w: broker.url and broker.queue are required", ErrInvalidConfig)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, err)
	}
	*dst = n
	return nil
}
