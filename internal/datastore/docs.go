package datastore

import (
	"encoding/json"
	"fmt"

	"github.com/lepinkainen/openlibrary/internal/openlibrary"
)

// DocsTable is the default export table.
const DocsTable = "openlibrary_docs"

// DocsSchema returns the CREATE TABLE statement for a docs table. The row
// key is the request URL plus the position of the doc in the response, so
// exporting the same response twice replaces instead of duplicating.
func DocsSchema(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	request_url TEXT NOT NULL,
	position INTEGER NOT NULL,
	kind TEXT NOT NULL,
	bibkey TEXT,
	key TEXT,
	title TEXT,
	name TEXT,
	doc TEXT NOT NULL,
	PRIMARY KEY (request_url, position)
)`, quoteIdent(table))
}

// DocRows flattens a decoded result into table rows. Flat results become a
// single row. The full record is stored as JSON in the doc column; key,
// title and name are copied out when present so they can be queried
// directly.
func DocRows(result *openlibrary.Result) ([]map[string]any, error) {
	var docs []openlibrary.Record
	var bibkeys []string
	if result.Envelope != nil {
		docs = result.Envelope.Docs
		bibkeys = result.Envelope.Keys
	} else if result.Record != nil {
		docs = []openlibrary.Record{result.Record}
	}

	rows := make([]map[string]any, 0, len(docs))
	for i, doc := range docs {
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding doc %d: %w", i, err)
		}
		row := map[string]any{
			"request_url": result.URL,
			"position":    i,
			"kind":        result.Kind.String(),
			"doc":         string(raw),
		}
		if i < len(bibkeys) {
			row["bibkey"] = bibkeys[i]
		}
		for _, col := range []string{"key", "title", "name"} {
			if s, ok := doc.StringValue(col); ok {
				row[col] = s
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
