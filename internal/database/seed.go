package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/txwizard/internal/catalog"
	"github.com/jask/txwizard/internal/database/repository"
)

// SeedDefaults writes the default catalog into an empty database.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	empty, err := repository.NewCatalogRepo(db).Empty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}
	return ImportCatalog(ctx, db, catalog.Default())
}

// ImportCatalog validates c and replaces the stored catalog with it
// atomically.
func ImportCatalog(ctx context.Context, db *sql.DB, c catalog.Catalog) error {
	if err := catalog.Validate(c); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	repo := repository.NewCatalogRepo(db)
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		return repo.Replace(ctx, tx, c)
	})
}
