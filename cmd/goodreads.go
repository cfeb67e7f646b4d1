package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/openlibrary/internal/cmdutil"
	"github.com/lepinkainen/openlibrary/internal/config"
	"github.com/lepinkainen/openlibrary/internal/goodreads"
	"github.com/lepinkainen/openlibrary/internal/ratelimit"
)

const goodreadsTable = "goodreads_books"

const goodreadsSchema = `CREATE TABLE IF NOT EXISTS goodreads_books (
	id INTEGER PRIMARY KEY,
	url TEXT NOT NULL
)`

// GoodreadsCmd searches Goodreads and prints the book IDs it finds
type GoodreadsCmd struct {
	Term  string `arg:"" help:"Search term"`
	Field string `help:"Field to search: all, title, author or genre" enum:"all,title,author,genre" default:"all"`
}

func (c *GoodreadsCmd) Run(ctx context.Context, g *Globals) error {
	field, err := goodreads.ParseSearchField(c.Field)
	if err != nil {
		return err
	}
	query := goodreads.Query{Term: c.Term, Field: field}

	cfg := config.Current()
	if g.DryRun {
		return printURL(query.URL(cfg.GoodreadsHost))
	}

	client := goodreads.NewClient(cfg.GoodreadsHost, nil, ratelimit.New("Goodreads", cfg.GoodreadsRate))
	books, err := client.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("goodreads search failed: %w", err)
	}

	if err := g.write(books); err != nil {
		return err
	}

	return cmdutil.WriteToDatastore(books, goodreadsSchema, goodreadsTable, "Goodreads books", func(b goodreads.Book) map[string]any {
		return map[string]any{"id": int64(b.ID), "url": b.URL}
	})
}
