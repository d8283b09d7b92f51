// Package postgres implementa o Record Store sobre PostgreSQL. As coleções
// continuam sendo blobs JSON (uma linha JSONB por chave): o modelo de acesso
// do painel é carregar tudo na inicialização e regravar a coleção inteira a
// cada mutação, então não há ganho em normalizar o esquema.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/logmam/logmam-api/internal/domain/repository"
)

var _ repository.CollectionStore = (*Store)(nil)

// Store adaptador JSONB do Record Store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constrói o adaptador e garante a tabela de coleções.
func NewStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return nil, fmt.Errorf("criar tabela collections: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Load deserializa a coleção da chave em dest. Chave ausente deixa dest
// intocado e devolve nil.
func (s *Store) Load(ctx context.Context, key string, dest any) error {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM collections WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("ler coleção %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decodificar coleção %s: %w", key, err)
	}
	return nil
}

// Save serializa a coleção e faz upsert da linha da chave.
func (s *Store) Save(ctx context.Context, key string, src any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("codificar coleção %s: %w", key, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO collections (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		key, raw)
	if err != nil {
		return fmt.Errorf("gravar coleção %s: %w", key, err)
	}
	return nil
}
