package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers soportados para persistir el cooldown del descuento.
const (
	CooldownStorePostgres = "postgres"
	CooldownStoreRedis    = "redis"
	CooldownStoreSQLite   = "sqlite"
	CooldownStoreMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	SalesAPI SalesAPIConfig
	Cooldown CooldownConfig
	Redis    RedisConfig
	SQLite   SQLiteConfig
	RabbitMQ RabbitMQConfig
	Report   ReportConfig
	UI       UIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT. Los tokens los emite el backend de autenticación;
// aquí solo se validan.
type JWTConfig struct {
	Secret string
	Issuer string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SalesAPIConfig backend de ventas que calcula las métricas y aplica los descuentos.
type SalesAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CooldownConfig ventana de bloqueo del botón "Apply Discount Now".
type CooldownConfig struct {
	Store     string // postgres | redis | sqlite | memory
	Duration  time.Duration
	KeyPrefix string
}

// RedisConfig conexión a Redis (solo si Cooldown.Store == "redis").
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

// SQLiteConfig archivo local (solo si Cooldown.Store == "sqlite").
type SQLiteConfig struct {
	Path string
}

// RabbitMQConfig publicación de eventos discount.applied. URL vacía = deshabilitado.
type RabbitMQConfig struct {
	URL   string
	Queue string
}

// ReportConfig textos fijos del reporte PDF.
type ReportConfig struct {
	Title      string
	SignerName string
	SignerRole string
}

// UIConfig rutas de navegación que el frontend recibe en el dashboard.
type UIConfig struct {
	ProductsPath    string
	AIAssistantPath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, SALES_API_URL, COOLDOWN_STORE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "pos-discount-dashboard"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "pos_dashboard"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "pos-backend"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		SalesAPI: SalesAPIConfig{
			BaseURL: strings.TrimRight(getString(v, "SALES_API_URL", "http://localhost:3001"), "/"),
			Timeout: time.Duration(getInt(v, "SALES_API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Cooldown: CooldownConfig{
			Store:     strings.ToLower(getString(v, "COOLDOWN_STORE", CooldownStorePostgres)),
			Duration:  time.Duration(getInt(v, "COOLDOWN_DURATION_MINUTES", 60)) * time.Minute,
			KeyPrefix: getString(v, "COOLDOWN_KEY_PREFIX", "discountButtonDisabled"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			TLS:      getBool(v, "REDIS_TLS", false),
		},
		SQLite: SQLiteConfig{
			Path: getString(v, "SQLITE_PATH", "file:dashboard.db?_pragma=busy_timeout(5000)"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   getString(v, "RABBITMQ_URL", ""),
			Queue: getString(v, "RABBITMQ_QUEUE", "discount.applied"),
		},
		Report: ReportConfig{
			Title:      getString(v, "REPORT_TITLE", "Sales Report"),
			SignerName: getString(v, "REPORT_SIGNER_NAME", "Y.L.Jayasinghe"),
			SignerRole: getString(v, "REPORT_SIGNER_ROLE", "Signature of Sales Manager"),
		},
		UI: UIConfig{
			ProductsPath:    getString(v, "PRODUCTS_PATH", "/products"),
			AIAssistantPath: getString(v, "AI_ASSISTANT_PATH", "/aibot"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cooldown.Store {
	case CooldownStorePostgres, CooldownStoreRedis, CooldownStoreSQLite, CooldownStoreMemory:
	default:
		return fmt.Errorf("config: COOLDOWN_STORE desconocido %q", c.Cooldown.Store)
	}
	if c.Cooldown.Duration <= 0 {
		return fmt.Errorf("config: COOLDOWN_DURATION_MINUTES debe ser mayor que cero")
	}
	if c.SalesAPI.Timeout <= 0 {
		return fmt.Errorf("config: SALES_API_TIMEOUT_SECONDS debe ser mayor que cero")
	}
	if _, err := url.ParseRequestURI(c.SalesAPI.BaseURL); err != nil {
		return fmt.Errorf("config: SALES_API_URL inválida: %w", err)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
