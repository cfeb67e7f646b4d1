package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lepinkainen/openlibrary/internal/errors"
	"github.com/lepinkainen/openlibrary/internal/openlibrary"
	"github.com/lepinkainen/openlibrary/internal/tui"
)

var selectDoc = tui.Select

// SearchCmd queries /search.json and its scoped variants
type SearchCmd struct {
	Query       string   `arg:"" optional:"" help:"Free text query"`
	Scope       string   `help:"What to search: books, authors, subjects or lists" enum:"books,works,authors,subjects,lists" default:"books"`
	Title       string   `help:"Match on title"`
	Author      string   `help:"Match on author name"`
	Fields      []string `help:"Fields to return (default all)" sep:","`
	Page        uint     `help:"Result page, starting at 1" default:"1"`
	Limit       uint     `help:"Results per page" default:"10"`
	Interactive bool     `short:"i" help:"Pick a result and fetch its full record"`
}

func (c *SearchCmd) params() (openlibrary.Params, error) {
	scope, err := openlibrary.ParseScope(c.Scope)
	if err != nil {
		return openlibrary.Params{}, err
	}
	return openlibrary.NewSearchBuilder().
		Scope(scope).
		Query(c.Query).
		Title(c.Title).
		Author(c.Author).
		Fields(c.Fields...).
		Page(c.Page).
		Limit(c.Limit).
		Build()
}

func (c *SearchCmd) Run(ctx context.Context, g *Globals) error {
	p, err := c.params()
	if err != nil {
		return err
	}
	if !c.Interactive || g.DryRun {
		return g.dispatch(ctx, p)
	}

	envelope, err := g.client().List(ctx, p)
	if err != nil {
		return err
	}

	result, err := selectDoc(c.label(), envelope.Docs)
	if err != nil {
		return err
	}

	switch result.Action {
	case tui.ActionStopped:
		return errors.NewStopProcessingError("search stopped by user")
	case tui.ActionSelected:
		return g.open(ctx, result.Selection)
	}

	slog.Info("No result selected", "found", envelope.NumFound)
	return nil
}

// open fetches the full record behind a search doc. Docs without one,
// such as lists, are written as they are.
func (g *Globals) open(ctx context.Context, doc openlibrary.Record) error {
	key := tui.DocKey(doc)
	p, ok := paramsForKey(key)
	if !ok {
		slog.Debug("No record to follow, writing the search doc", "key", key)
		return g.write(doc)
	}
	return g.dispatch(ctx, p)
}

func (c *SearchCmd) label() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{c.Query, c.Title, c.Author} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " / ")
}

// paramsForKey maps a doc key like "/works/OL45804W" to the request for its
// full record.
func paramsForKey(key string) (openlibrary.Params, bool) {
	collection, id, found := strings.Cut(strings.TrimPrefix(key, "/"), "/")
	if !found && strings.HasPrefix(key, "OL") && strings.HasSuffix(key, "A") {
		// author search docs carry bare keys such as "OL23919A"
		collection, id = "authors", key
	}
	if id == "" {
		return openlibrary.Params{}, false
	}

	var (
		p   openlibrary.Params
		err error
	)
	switch collection {
	case "works":
		p, err = openlibrary.NewBookBuilder().Kind(openlibrary.KindWork).ID(id).Build()
	case "books":
		p, err = openlibrary.NewBookBuilder().Kind(openlibrary.KindEdition).ID(id).Build()
	case "authors":
		p, err = openlibrary.NewAuthorBuilder().ID(id).Build()
	case "subjects":
		p, err = openlibrary.NewSubjectBuilder().Subject(id).Build()
	default:
		return openlibrary.Params{}, false
	}
	return p, err == nil
}
