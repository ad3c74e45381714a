package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryViper() *viper.Viper {
	v := viper.New()
	v.Set("DOCSTORE_DRIVER", "memory")
	v.Set("IDENTITY_DRIVER", "memory")
	return v
}

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(memoryViper())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "gestor-pruebas-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "*", cfg.HTTP.AllowOrigins)
	assert.Equal(t, 10*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "gestor_pruebas", cfg.Mongo.Database)
}

func TestFromViper_PuertoComoString(t *testing.T) {
	v := memoryViper()
	v.Set("HTTP_PORT", "9090")
	v.Set("STORE_TIMEOUT_SECONDS", "3")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := memoryViper()
	v.Set("DOCSTORE_DRIVER", "firestore")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_SupabaseRequiereCredenciales(t *testing.T) {
	v := memoryViper()
	v.Set("IDENTITY_DRIVER", "supabase")

	_, err := fromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL")

	v.Set("SUPABASE_URL", "https://demo.supabase.co")
	v.Set("SUPABASE_SERVICE_ROLE_KEY", "clave")
	_, err = fromViper(v)
	assert.NoError(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "qa", Password: "p@ss:word", DBName: "pruebas", SSLMode: "disable"}
	assert.Equal(t, "postgres://qa:p%40ss%3Aword@db:5432/pruebas?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
