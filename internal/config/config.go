package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Переменные окружения, перекрывающие значения из файла
const (
	EnvDatabaseHost     = "DATABASE_HOST"
	EnvDatabasePassword = "DATABASE_PASSWORD"
	EnvRedisAddr        = "REDIS_ADDR"
	EnvRedisPassword    = "REDIS_PASSWORD"
	EnvUserServiceURL   = "USER_SERVICE_URL"
)

const envFileName = ".env"

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Redis       RedisConfig       `toml:"redis"`
	UserService UserServiceConfig `toml:"user_service"`
	Booking     BookingConfig     `toml:"booking"`
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки Redis для блокировки очистки неявок
// Пустой Addr отключает распределенную блокировку
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// UserServiceConfig настройки клиента UserService
type UserServiceConfig struct {
	URL             string `toml:"url"`
	Timeout         int    `toml:"timeout"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"` // 0 отключает кэш ролей
}

// BookingConfig правила бронирования
type BookingConfig struct {
	ReleaseThresholdMinutes int    `toml:"release_threshold_minutes"`
	CheckInLeadMinutes      int    `toml:"check_in_lead_minutes"`
	MaxSeriesOccurrences    int    `toml:"max_series_occurrences"`
	Timezone                string `toml:"timezone"`
	SweepLockTTLSeconds     int    `toml:"sweep_lock_ttl_seconds"`
}

// Location часовой пояс, в котором заданы даты и время бронирований
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.Timezone)
}

// SweepLockTTL время жизни блокировки очистки
func (b BookingConfig) SweepLockTTL() time.Duration {
	return time.Duration(b.SweepLockTTLSeconds) * time.Second
}

// Load загружает конфигурацию из TOML файла и применяет значения по умолчанию
// Файл .env рядом с конфигом (если есть) дополняет окружение, окружение перекрывает файл
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := loadEnvFile(filepath.Join(filepath.Dir(path), envFileName)); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFile не перезаписывает уже выставленные переменные окружения
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		EnvDatabaseHost:     &c.Database.Host,
		EnvDatabasePassword: &c.Database.Password,
		EnvRedisAddr:        &c.Redis.Addr,
		EnvRedisPassword:    &c.Redis.Password,
		EnvUserServiceURL:   &c.UserService.URL,
	}

	for key, dst := range overrides {
		if value := os.Getenv(key); value != "" {
			*dst = value
		}
	}
}

// Default конфигурация по умолчанию
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
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "room_booking_service",
		},
		UserService: UserServiceConfig{
			Timeout:         5,
			CacheTTLSeconds: 30,
		},
		Booking: BookingConfig{
			ReleaseThresholdMinutes: domain.DefaultReleaseThresholdMinutes,
			CheckInLeadMinutes:      domain.DefaultCheckInLeadMinutes,
			MaxSeriesOccurrences:    domain.DefaultMaxSeriesOccurrences,
			Timezone:                "UTC",
			SweepLockTTLSeconds:     30,
		},
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}

	if c.Booking.ReleaseThresholdMinutes <= 0 {
		return fmt.Errorf("%w: booking.release_threshold_minutes must be positive", ErrInvalidConfig)
	}

	if c.Booking.CheckInLeadMinutes < 0 {
		return fmt.Errorf("%w: booking.check_in_lead_minutes must not be negative", ErrInvalidConfig)
	}

	if c.Booking.MaxSeriesOccurrences <= 0 {
		return fmt.Errorf("%w: booking.max_series_occurrences must be positive", ErrInvalidConfig)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	return nil
}
