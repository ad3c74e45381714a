package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/gestor-pruebas-api/internal/domain"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*Store)(nil)

const codeUniqueViolation = "23505"

// Store almacén de documentos sobre una tabla JSONB (coleccion, id, datos).
type Store struct {
	pool    *pgxpool.Pool
	tx      *TxRunner
	timeout time.Duration
}

// NewStore construye el almacén sobre un pool ya migrado (ver NewPool).
func NewStore(pool *pgxpool.Pool, timeout time.Duration) *Store {
	return &Store{pool: pool, tx: NewTxRunner(pool), timeout: timeout}
}

// Collection devuelve la vista de una colección lógica.
func (s *Store) Collection(name string) repository.Collection {
	return &collection{store: s, name: name}
}

// Ping verifica la conexión.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Close cierra el pool.
func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

// stampsExpr construye un objeto jsonb {campo: now()} con los nombres del
// parámetro text[] n. Vacío si no hay campos.
func stampsExpr(n int) string {
	return fmt.Sprintf(
		`COALESCE((SELECT jsonb_object_agg(k, to_jsonb(now())) FROM unnest($%d::text[]) AS k), '{}'::jsonb)`, n)
}

type collection struct {
	store *Store
	name  string
}

func (c *collection) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.store.timeout)
}

func (c *collection) Get(ctx context.Context, id string) (*repository.Document, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	var datos map[string]any
	err := c.store.pool.QueryRow(ctx,
		`SELECT datos FROM documentos WHERE coleccion = $1 AND id = $2`, c.name, id,
	).Scan(&datos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s/%s: %w", c.name, id, err)
	}
	return &repository.Document{ID: id, Data: nonNil(datos)}, nil
}

func (c *collection) GetAll(ctx context.Context) ([]repository.Document, error) {
	return c.list(ctx,
		`SELECT id, datos FROM documentos WHERE coleccion = $1 ORDER BY creado_en, id`, c.name)
}

// Query filtra por igualdad usando contención jsonb (@>), que aprovecha el índice GIN.
func (c *collection) Query(ctx context.Context, field string, value any) ([]repository.Document, error) {
	filter, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		return nil, fmt.Errorf("filtro %s: %w", field, err)
	}
	return c.list(ctx,
		`SELECT id, datos FROM documentos WHERE coleccion = $1 AND datos @> $2::jsonb ORDER BY creado_en, id`,
		c.name, filter)
}

func (c *collection) list(ctx context.Context, sql string, args ...any) ([]repository.Document, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	rows, err := c.store.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	defer rows.Close()
	var out []repository.Document
	for rows.Next() {
		var (
			id    string
			datos map[string]any
		)
		if err := rows.Scan(&id, &datos); err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.name, err)
		}
		out = append(out, repository.Document{ID: id, Data: nonNil(datos)})
	}
	return out, rows.Err()
}

func (c *collection) Add(ctx context.Context, data map[string]any) (string, error) {
	id := uuid.NewString()
	payload, stamps, err := encode(data)
	if err != nil {
		return "", err
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	_, err = c.store.pool.Exec(ctx,
		`INSERT INTO documentos (coleccion, id, datos) VALUES ($1, $2, $3::jsonb || `+stampsExpr(4)+`)`,
		c.name, id, payload, stamps)
	if err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return "", fmt.Errorf("insert %s/%s: id duplicado: %w", c.name, id, err)
		}
		return "", fmt.Errorf("insert %s: %w", c.name, err)
	}
	return id, nil
}

func (c *collection) Set(ctx context.Context, id string, data map[string]any) error {
	payload, stamps, err := encode(data)
	if err != nil {
		return err
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	_, err = c.store.pool.Exec(ctx,
		`INSERT INTO documentos (coleccion, id, datos) VALUES ($1, $2, $3::jsonb || `+stampsExpr(4)+`)
		 ON CONFLICT (coleccion, id) DO UPDATE SET datos = EXCLUDED.datos`,
		c.name, id, payload, stamps)
	if err != nil {
		return fmt.Errorf("upsert %s/%s: %w", c.name, id, err)
	}
	return nil
}

// Update fusiona los campos de primer nivel con el operador ||.
func (c *collection) Update(ctx context.Context, id string, fields map[string]any) error {
	payload, stamps, err := encode(fields)
	if err != nil {
		return err
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	tag, err := c.store.pool.Exec(ctx,
		`UPDATE documentos SET datos = datos || $3::jsonb || `+stampsExpr(4)+`
		 WHERE coleccion = $1 AND id = $2`,
		c.name, id, payload, stamps)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", c.name, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	if _, err := c.store.pool.Exec(ctx,
		`DELETE FROM documentos WHERE coleccion = $1 AND id = $2`, c.name, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", c.name, id, err)
	}
	return nil
}

// ArrayAppend agrega element al final del arreglo en una sola sentencia UPDATE.
func (c *collection) ArrayAppend(ctx context.Context, id, field string, element any) error {
	elem, err := json.Marshal(element)
	if err != nil {
		return fmt.Errorf("serializar elemento: %w", err)
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	tag, err := c.store.pool.Exec(ctx,
		`UPDATE documentos
		 SET datos = jsonb_set(datos, ARRAY[$3::text], COALESCE(datos->$3::text, '[]'::jsonb) || jsonb_build_array($4::jsonb))
		 WHERE coleccion = $1 AND id = $2`,
		c.name, id, field, elem)
	if err != nil {
		return fmt.Errorf("append %s/%s.%s: %w", c.name, id, field, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendNested bloquea la fila con FOR UPDATE, modifica el arreglo anidado y
// lo escribe dentro de la misma transacción.
func (c *collection) AppendNested(ctx context.Context, id string, t repository.NestedTarget, element any) (bool, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	matched := false
	err := c.store.tx.Run(ctx, func(tx pgx.Tx) error {
		var datos map[string]any
		err := tx.QueryRow(ctx,
			`SELECT datos FROM documentos WHERE coleccion = $1 AND id = $2 FOR UPDATE`, c.name, id,
		).Scan(&datos)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock %s/%s: %w", c.name, id, err)
		}
		matched = appendNested(datos, t, element)
		if !matched {
			return nil
		}
		payload, err := json.Marshal(datos)
		if err != nil {
			return fmt.Errorf("serializar %s/%s: %w", c.name, id, err)
		}
		_, err = tx.Exec(ctx,
			`UPDATE documentos SET datos = $3::jsonb WHERE coleccion = $1 AND id = $2`, c.name, id, payload)
		if err != nil {
			return fmt.Errorf("update %s/%s: %w", c.name, id, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return matched, nil
}

// appendNested modifica datos en sitio; false si ningún elemento coincide.
func appendNested(datos map[string]any, t repository.NestedTarget, element any) bool {
	arr, _ := datos[t.ArrayField].([]any)
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok || m[t.MatchKey] != t.MatchValue {
			continue
		}
		nested, _ := m[t.NestedField].([]any)
		m[t.NestedField] = append(nested, element)
		return true
	}
	return false
}

// encode serializa data sin los centinelas y devuelve sus nombres aparte.
func encode(data map[string]any) (payload []byte, stamps []string, err error) {
	plain := make(map[string]any, len(data))
	stamps = []string{}
	for k, v := range data {
		if repository.IsServerTimestamp(v) {
			stamps = append(stamps, k)
			continue
		}
		plain[k] = v
	}
	payload, err = json.Marshal(plain)
	if err != nil {
		return nil, nil, fmt.Errorf("serializar documento: %w", err)
	}
	return payload, stamps, nil
}

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// pgErrorCode devuelve el SQLSTATE del error, o "" si no viene de PostgreSQL.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
