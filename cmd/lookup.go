package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/openlibrary/internal/config"
	"github.com/lepinkainen/openlibrary/internal/openlibrary"
	"github.com/lepinkainen/openlibrary/internal/ratelimit"
)

// WorkCmd fetches /works/<id>.json
type WorkCmd struct {
	ID string `arg:"" help:"Work ID, e.g. OL45804W"`
}

// EditionCmd fetches /books/<id>.json
type EditionCmd struct {
	ID string `arg:"" help:"Edition ID, e.g. OL7353617M"`
}

// ISBNCmd fetches /isbn/<isbn>.json
type ISBNCmd struct {
	ISBN string `arg:"" help:"ISBN-10 or ISBN-13"`
}

// BooksCmd queries the batch books API
type BooksCmd struct {
	Bibkeys []string `arg:"" help:"Bibkeys such as ISBN:0201558025 or LCCN:93005405"`
	Jscmd   string   `help:"Level of detail: viewapi, data or details" default:"viewapi"`
}

// AuthorCmd fetches /authors/<id>.json
type AuthorCmd struct {
	ID string `arg:"" help:"Author ID, e.g. OL23919A"`
}

// AuthorWorksCmd lists /authors/<id>/works.json
type AuthorWorksCmd struct {
	ID     string `arg:"" help:"Author ID, e.g. OL23919A"`
	Limit  uint   `help:"Maximum number of works" default:"10"`
	Offset uint   `help:"Number of works to skip"`
}

// SubjectCmd lists /subjects/<subject>.json
type SubjectCmd struct {
	Subject     string `arg:"" help:"Subject name, e.g. \"science fiction\""`
	Details     bool   `help:"Include related subjects, people, places and publishers"`
	Ebooks      bool   `help:"Only works that have an ebook"`
	PublishedIn string `help:"Year or year range, e.g. 1500-1600"`
	Limit       uint   `help:"Maximum number of works" default:"10"`
	Offset      uint   `help:"Number of works to skip"`
}

func (g *Globals) client() *openlibrary.Client {
	cfg := config.Current()
	return openlibrary.NewClient(
		openlibrary.WithBaseURL(cfg.Host),
		openlibrary.WithUserAgent(cfg.UserAgent),
		openlibrary.WithRateLimiter(ratelimit.New("Open Library", cfg.RateLimit)),
	)
}

// dispatch sends p and writes the decoded result, or only prints the
// request URL in dry-run mode.
func (g *Globals) dispatch(ctx context.Context, p openlibrary.Params) error {
	client := g.client()

	url, err := client.URL(p)
	if err != nil {
		return err
	}
	if g.DryRun {
		return printURL(url)
	}

	slog.Debug("Requesting", "kind", p.Kind(), "url", url)
	result, err := client.Do(ctx, p)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", p.Kind(), err)
	}
	return g.emit(result)
}

func (g *Globals) book(ctx context.Context, kind openlibrary.Kind, id string) error {
	p, err := openlibrary.NewBookBuilder().Kind(kind).ID(id).Build()
	if err != nil {
		return err
	}
	return g.dispatch(ctx, p)
}

func (c *WorkCmd) Run(ctx context.Context, g *Globals) error {
	return g.book(ctx, openlibrary.KindWork, c.ID)
}

func (c *EditionCmd) Run(ctx context.Context, g *Globals) error {
	return g.book(ctx, openlibrary.KindEdition, c.ID)
}

func (c *ISBNCmd) Run(ctx context.Context, g *Globals) error {
	return g.book(ctx, openlibrary.KindISBN, c.ISBN)
}

func (c *BooksCmd) Run(ctx context.Context, g *Globals) error {
	p, err := openlibrary.NewBatchBuilder().Bibkeys(c.Bibkeys...).Command(c.Jscmd).Build()
	if err != nil {
		return err
	}
	return g.dispatch(ctx, p)
}

func (c *AuthorCmd) Run(ctx context.Context, g *Globals) error {
	p, err := openlibrary.NewAuthorBuilder().ID(c.ID).Build()
	if err != nil {
		return err
	}
	return g.dispatch(ctx, p)
}

func (c *AuthorWorksCmd) Run(ctx context.Context, g *Globals) error {
	p, err := openlibrary.NewAuthorBuilder().
		ID(c.ID).
		Works(true).
		Limit(c.Limit).
		Offset(c.Offset).
		Build()
	if err != nil {
		return err
	}
	return g.dispatch(ctx, p)
}

func (c *SubjectCmd) Run(ctx context.Context, g *Globals) error {
	b := openlibrary.NewSubjectBuilder().
		Subject(c.Subject).
		PublishedIn(c.PublishedIn).
		Limit(c.Limit).
		Offset(c.Offset)
	// Flags left off are not sent at all
	if c.Details {
		b.Details(true)
	}
	if c.Ebooks {
		b.Ebooks(true)
	}

	p, err := b.Build()
	if err != nil {
		return err
	}
	return g.dispatch(ctx, p)
}
