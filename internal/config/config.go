package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const minSessionSecretLen = 32

// ErrInvalidConfig возвращается, если конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Google   GoogleConfig   `toml:"google"`
	Uploads  UploadsConfig  `toml:"uploads"`
	CORS     CORSConfig     `toml:"cors"`
	Jobs     JobsConfig     `toml:"jobs"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"CARWASH_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
	// Адреса или CIDR прокси, которым разрешено передавать X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"CARWASH_DB_HOST"`
	Port            int    `toml:"port" env:"CARWASH_DB_PORT"`
	User            string `toml:"user" env:"CARWASH_DB_USER"`
	Password        string `toml:"password" env:"CARWASH_DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"CARWASH_DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"CARWASH_DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" env:"CARWASH_LOG_LEVEL"`
	File  string `toml:"file" env:"CARWASH_LOG_FILE"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки сессий и аутентификации
type AuthConfig struct {
	SessionSecret        string `toml:"session_secret" env:"CARWASH_SESSION_SECRET"`
	CookieName           string `toml:"cookie_name"`
	CookieSecure         bool   `toml:"cookie_secure" env:"CARWASH_COOKIE_SECURE"`
	SessionTTLHours      int    `toml:"session_ttl_hours"`
	TouchIntervalSeconds int    `toml:"touch_interval_seconds"`
	BcryptCost           int    `toml:"bcrypt_cost"`
	LoginRatePerMinute   int    `toml:"login_rate_per_minute"`
	LoginBurst           int    `toml:"login_burst"`
}

// GoogleConfig настройки входа через Google
type GoogleConfig struct {
	ClientID     string `toml:"client_id" env:"CARWASH_GOOGLE_CLIENT_ID"`
	TokenInfoURL string `toml:"token_info_url"`
	Timeout      int    `toml:"timeout"`
}

// UploadsConfig настройки хранения загруженных изображений
type UploadsConfig struct {
	Dir           string `toml:"dir" env:"CARWASH_UPLOADS_DIR"`
	PublicPrefix  string `toml:"public_prefix"`
	MaxImageBytes int64  `toml:"max_image_bytes"`
}

// CORSConfig разрешенные источники фронтенда
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// JobsConfig расписание фоновых задач (cron-выражения)
type JobsConfig struct {
	SessionPurgeSchedule  string `toml:"session_purge_schedule"`
	ActivityPruneSchedule string `toml:"activity_prune_schedule"`
	ActivityRetentionDays int    `toml:"activity_retention_days"`
}

// Load загружает конфигурацию из TOML файла и переопределяет значения из окружения.
// Файл .env (если есть) подгружается в окружение перед разбором.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "carwash_service",
		},
		Auth: AuthConfig{
			CookieName:           "carwash_session",
			SessionTTLHours:      24 * 7,
			TouchIntervalSeconds: 60,
			BcryptCost:           12,
			LoginRatePerMinute:   10,
			LoginBurst:           5,
		},
		Google: GoogleConfig{
			TokenInfoURL: "https://oauth2.googleapis.com/tokeninfo",
			Timeout:      5,
		},
		Uploads: UploadsConfig{
			Dir:           "uploads",
			PublicPrefix:  "/uploads",
			MaxImageBytes: 5 << 20,
		},
		Jobs: JobsConfig{
			SessionPurgeSchedule:  "@hourly",
			ActivityPruneSchedule: "@daily",
			ActivityRetentionDays: 90,
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0:
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	case c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: server timeouts must be positive", ErrInvalidConfig)
	case c.Database.Host == "":
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	case c.Database.DBName == "":
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	case c.Database.Port <= 0:
		return fmt.Errorf("%w: database.port must be positive", ErrInvalidConfig)
	case len(c.Auth.SessionSecret) < minSessionSecretLen:
		return fmt.Errorf("%w: auth.session_secret must be at least %d bytes", ErrInvalidConfig, minSessionSecretLen)
	case c.Auth.SessionTTLHours <= 0:
		return fmt.Errorf("%w: auth.session_ttl_hours must be positive", ErrInvalidConfig)
	case c.Google.Timeout <= 0:
		return fmt.Errorf("%w: google.timeout must be positive", ErrInvalidConfig)
	case c.Uploads.MaxImageBytes <= 0:
		return fmt.Errorf("%w: uploads.max_image_bytes must be positive", ErrInvalidConfig)
	case c.Jobs.ActivityRetentionDays < 0:
		return fmt.Errorf("%w: jobs.activity_retention_days must not be negative", ErrInvalidConfig)
	}

	for _, proxy := range c.Server.TrustedProxies {
		if !validProxy(proxy) {
			return fmt.Errorf("%w: server.trusted_proxies: invalid address %q", ErrInvalidConfig, proxy)
		}
	}
	return nil
}

// DSN строка подключения к PostgreSQL для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// MigrateURL строка подключения в формате URL для golang-migrate
func (d DatabaseConfig) MigrateURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// SessionTTL время жизни сессии
func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionTTLHours) * time.Hour
}

// TouchInterval минимальный интервал обновления last_active
func (a AuthConfig) TouchInterval() time.Duration {
	return time.Duration(a.TouchIntervalSeconds) * time.Second
}

func validProxy(raw string) bool {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "/") {
		_, err := netip.ParsePrefix(raw)
		return err == nil
	}
	_, err := netip.ParseAddr(raw)
	return err == nil
}
