package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers soportados para el almacén de documentos y el servicio de identidad.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverSupabase = "supabase"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Store    StoreConfig
	Mongo    MongoConfig
	DB       DBConfig
	Identity IdentityConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	SwaggerFile string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	AllowOrigins string // lista separada por comas; "*" permite cualquier origen
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selecciona el backend del almacén de documentos.
type StoreConfig struct {
	Driver  string // mongo, postgres, memory
	Timeout time.Duration
}

// MongoConfig configuración de MongoDB.
type MongoConfig struct {
	URI      string
	Database string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
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

// IdentityConfig configuración del proveedor de identidad.
type IdentityConfig struct {
	Driver             string // supabase, memory
	SupabaseURL        string
	SupabaseServiceKey string // service_role key; nunca la anon key
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, DOCSTORE_DRIVER, MONGO_URI, etc.
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
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "gestor-pruebas-api"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 8080),
			AllowOrigins: getString(v, "CORS_ALLOW_ORIGINS", "*"),
		},
		Store: StoreConfig{
			Driver:  strings.ToLower(getString(v, "DOCSTORE_DRIVER", DriverMongo)),
			Timeout: time.Duration(getInt(v, "STORE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Mongo: MongoConfig{
			URI:      getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database: getString(v, "MONGO_DATABASE", "gestor_pruebas"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "gestor_pruebas"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Identity: IdentityConfig{
			Driver:             strings.ToLower(getString(v, "IDENTITY_DRIVER", DriverSupabase)),
			SupabaseURL:        getString(v, "SUPABASE_URL", ""),
			SupabaseServiceKey: getString(v, "SUPABASE_SERVICE_ROLE_KEY", ""),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("DOCSTORE_DRIVER no soportado: %q", c.Store.Driver)
	}
	switch c.Identity.Driver {
	case DriverSupabase:
		if c.Identity.SupabaseURL == "" || c.Identity.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_URL y SUPABASE_SERVICE_ROLE_KEY son obligatorios con IDENTITY_DRIVER=supabase")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("IDENTITY_DRIVER no soportado: %q", c.Identity.Driver)
	}
	if c.Store.Timeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT_SECONDS debe ser mayor que cero")
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
