// Package datastore exports decoded Open Library documents to SQLite or a
// remote Datasette instance.
package datastore

// Store defines the interface for document export targets
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// BatchInsert inserts multiple rows into the specified table
	BatchInsert(database string, table string, rows []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}
