package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Inventory InventoryAPIConfig
	Dashboard DashboardConfig
	Redis     RedisConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
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

// InventoryAPIConfig API de inventario que alimenta el dashboard.
type InventoryAPIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Timeout como time.Duration.
func (c InventoryAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DashboardConfig parámetros de las vistas.
type DashboardConfig struct {
	LogRefreshSchedule string // expresión robfig/cron, ej. "@every 1m"
	LogWindowDays      int
	AggregationMode    string // quantity | serial
	DisplayTimezone    string // IANA, para formatear eventos del log
	BreakdownCacheTTL  int    // segundos; 0 = sin expiración
}

// BreakdownTTL TTL del caché de desglose como time.Duration.
func (c DashboardConfig) BreakdownTTL() time.Duration {
	return time.Duration(c.BreakdownCacheTTL) * time.Second
}

// RedisConfig caché de desglose compartido. Addr vacío = caché en memoria.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled indica si se configuró Redis.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, INVENTORY_API_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventory-dashboard"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Inventory: InventoryAPIConfig{
			BaseURL:        getString(v, "INVENTORY_API_BASE_URL", "http://localhost:8000"),
			TimeoutSeconds: getInt(v, "INVENTORY_API_TIMEOUT_SECONDS", 15),
		},
		Dashboard: DashboardConfig{
			LogRefreshSchedule: getString(v, "LOG_REFRESH_SCHEDULE", "@every 1m"),
			LogWindowDays:      getInt(v, "LOG_WINDOW_DAYS", 7),
			AggregationMode:    getString(v, "AGGREGATION_MODE", "quantity"),
			DisplayTimezone:    getString(v, "DISPLAY_TIMEZONE", "America/Los_Angeles"),
			BreakdownCacheTTL:  getInt(v, "BREAKDOWN_CACHE_TTL_SECONDS", 0),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Inventory.BaseURL == "" {
		return fmt.Errorf("INVENTORY_API_BASE_URL es requerido")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT inválido: %d", c.HTTP.Port)
	}
	if c.Dashboard.LogWindowDays <= 0 {
		return fmt.Errorf("LOG_WINDOW_DAYS debe ser positivo: %d", c.Dashboard.LogWindowDays)
	}
	switch c.Dashboard.AggregationMode {
	case "quantity", "serial":
	default:
		return fmt.Errorf("AGGREGATION_MODE inválido: %q (quantity | serial)", c.Dashboard.AggregationMode)
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
