package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sozu-dev/backoffice-api/internal/application/ports"
	"github.com/sozu-dev/backoffice-api/pkg/logger"
)

// Asegura que PostgresStore implementa el puerto.
var _ ports.SessionStore = (*PostgresStore)(nil)

// PostgresStore guarda el estado de sesión en una tabla clave/valor con upsert
// last-write-wins. Pensado para despliegues con varias réplicas del servicio
// detrás de un balanceador.
//
// Esquema esperado:
//
//	CREATE TABLE IF NOT EXISTS estado_sesion (
//	    clave       TEXT PRIMARY KEY,
//	    valor       JSONB NOT NULL,
//	    actualizado TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//
// TODO: publicar cambios de otras réplicas vía LISTEN/NOTIFY; hoy solo se
// publican los cambios hechos por este proceso.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *logger.Logger
	hub  hub
}

// NewPostgresStore construye el almacén sobre un pool existente.
func NewPostgresStore(pool *pgxpool.Pool, log *logger.Logger) *PostgresStore {
	return &PostgresStore{pool: pool, log: log.Componente("store")}
}

// NewPool crea el pool de conexiones PostgreSQL para el almacén de sesión.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// EnsureSchema crea la tabla de estado si no existe. Idempotente.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS estado_sesion (
		    clave       TEXT PRIMARY KEY,
		    valor       JSONB NOT NULL,
		    actualizado TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("crear tabla estado_sesion: %w", err)
	}
	return nil
}

// Persist upsertea el valor bajo la clave y publica el cambio en el proceso.
func (s *PostgresStore) Persist(ctx context.Context, clave string, valor []byte) error {
	query := `
		INSERT INTO estado_sesion (clave, valor, actualizado)
		VALUES ($1, $2, now())
		ON CONFLICT (clave) DO UPDATE SET valor = EXCLUDED.valor, actualizado = now()`
	if _, err := s.pool.Exec(ctx, query, clave, valor); err != nil {
		return fmt.Errorf("upsert %s: %w", clave, err)
	}
	s.hub.publish(ports.CambioEstado{Clave: clave})
	return nil
}

// Read devuelve el último valor persistido; sin fila significa ausente. JSONB
// garantiza JSON válido en disco, pero se valida igual por si la columna
// cambia de tipo en una migración.
func (s *PostgresStore) Read(ctx context.Context, clave string) ([]byte, bool, error) {
	var valor []byte
	err := s.pool.QueryRow(ctx, `SELECT valor FROM estado_sesion WHERE clave = $1`, clave).Scan(&valor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leer %s: %w", clave, err)
	}
	if !json.Valid(valor) {
		s.log.Warn().Str("clave", clave).Msg("estado persistido corrupto, se limpia")
		if err := s.Clear(ctx, clave); err != nil {
			s.log.Warn().Err(err).Str("clave", clave).Msg("limpiar entrada corrupta")
		}
		return nil, false, nil
	}
	return valor, true, nil
}

// Clear elimina la clave. Idempotente.
func (s *PostgresStore) Clear(ctx context.Context, clave string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM estado_sesion WHERE clave = $1`, clave); err != nil {
		return fmt.Errorf("eliminar %s: %w", clave, err)
	}
	s.hub.publish(ports.CambioEstado{Clave: clave})
	return nil
}

// Subscribe entrega el canal de cambios de este almacén.
func (s *PostgresStore) Subscribe() <-chan ports.CambioEstado {
	return s.hub.subscribe()
}

// Close cierra los canales de suscripción. El pool lo cierra quien lo creó.
func (s *PostgresStore) Close() error {
	s.hub.close()
	return nil
}
