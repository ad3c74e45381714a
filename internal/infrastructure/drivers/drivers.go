// Package drivers elige los adaptadores según la configuración.
package drivers

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/ports"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
	"github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/memory"
	"github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/mongo"
	"github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestor-pruebas-api/internal/infrastructure/supabase"
	"github.com/jhoicas/gestor-pruebas-api/pkg/config"
)

// OpenStore construye el almacén según DOCSTORE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.DocumentStore, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		return mongo.Connect(ctx, cfg.Mongo, cfg.Store.Timeout)
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(pool, cfg.Store.Timeout), nil
	case config.DriverMemory:
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("driver de almacén desconocido: %s", cfg.Store.Driver)
}

// OpenIdentity construye el servicio de identidad según IDENTITY_DRIVER.
func OpenIdentity(cfg *config.Config) (ports.IdentityService, error) {
	switch cfg.Identity.Driver {
	case config.DriverSupabase:
		return supabase.NewIdentity(cfg.Identity)
	case config.DriverMemory:
		return memory.NewIdentity(), nil
	}
	return nil, fmt.Errorf("driver de identidad desconocido: %s", cfg.Identity.Driver)
}
