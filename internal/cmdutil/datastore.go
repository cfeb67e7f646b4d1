// Package cmdutil holds helpers shared by the olib commands.
package cmdutil

import (
	"fmt"
	"log/slog"

	"github.com/lepinkainen/openlibrary/internal/config"
	"github.com/lepinkainen/openlibrary/internal/datastore"
)

// DatabaseName is the Datasette database the rows are inserted into.
const DatabaseName = "olib"

func newStore(cfg config.Config) datastore.Store {
	if cfg.DatasetteURL != "" {
		return datastore.NewDatasetteClient(cfg.DatasetteURL, cfg.DatasetteToken)
	}
	return datastore.NewSQLiteStore(cfg.DatasetteDBFile)
}

// WriteToDatastore converts items with toMap and writes them to the
// configured store. It does nothing unless datasette.enabled is set.
func WriteToDatastore[T any](items []T, schema, table, description string, toMap func(T) map[string]any) error {
	cfg := config.Current()
	if !cfg.DatasetteOn {
		return nil
	}

	store := newStore(cfg)
	if err := store.Connect(); err != nil {
		return fmt.Errorf("failed to connect to datastore: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTable(schema); err != nil {
		return fmt.Errorf("failed to create %s table: %w", table, err)
	}

	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, toMap(item))
	}

	if err := store.BatchInsert(DatabaseName, table, rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", description, err)
	}

	slog.Info("Wrote rows to datastore", "table", table, "count", len(rows))
	return nil
}
