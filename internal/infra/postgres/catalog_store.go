package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"totem-quiz-bot/internal/domain"
)

// CatalogStore keeps named quiz catalogs as JSONB in quiz_catalogs.
type CatalogStore struct {
	pool *pgxpool.Pool
	name string
}

func NewCatalogStore(pool *pgxpool.Pool, name string) *CatalogStore {
	return &CatalogStore{pool: pool, name: name}
}

// LoadCatalog reads and validates the configured catalog.
func (s *CatalogStore) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM quiz_catalogs WHERE name=$1`, s.name).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, s.name)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	var data domain.CatalogData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return domain.NewCatalog(data)
}

// SaveCatalog upserts the catalog under the configured name.
func (s *CatalogStore) SaveCatalog(ctx context.Context, catalog *domain.Catalog) error {
	raw, err := json.Marshal(catalog.Data())
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
INSERT INTO quiz_catalogs (name, data, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, s.name, raw)
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
