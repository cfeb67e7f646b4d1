package openlibrary

import (
	"slices"
	"strings"

	"github.com/lepinkainen/openlibrary/internal/errors"
)

// paging holds the draft values shared by list-shaped requests. A nil
// pointer means the caller never set the field.
type paging struct {
	page   *uint
	limit  *uint
	offset *uint
}

func (d paging) apply(p *Params) error {
	p.page = DefaultPage
	if d.page != nil {
		if *d.page < 1 {
			return errors.NewInvalidFieldError("page", "must be at least 1")
		}
		p.page = *d.page
	}
	p.limit = DefaultLimit
	if d.limit != nil {
		p.limit = *d.limit
	}
	if d.offset != nil {
		p.offset = *d.offset
	}
	return nil
}

func requireID(field string, id *string) (string, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return "", errors.NewMissingRequiredFieldError(field)
	}
	return strings.TrimSpace(*id), nil
}

// BookBuilder accumulates a single-book lookup by work id, edition id or ISBN.
type BookBuilder struct {
	kind Kind
	id   *string
}

// NewBookBuilder starts a work lookup; use Kind to switch to editions or ISBN.
func NewBookBuilder() *BookBuilder {
	return &BookBuilder{kind: KindWork}
}

// Kind selects KindWork, KindEdition or KindISBN.
func (b *BookBuilder) Kind(kind Kind) *BookBuilder {
	b.kind = kind
	return b
}

// ID sets the identifier, e.g. "OL45883W" or an ISBN.
func (b *BookBuilder) ID(id string) *BookBuilder {
	b.id = &id
	return b
}

// Build returns the lookup Params.
func (b *BookBuilder) Build() (Params, error) {
	switch b.kind {
	case KindWork, KindEdition, KindISBN:
	default:
		return Params{}, errors.NewInvalidFieldError("kind", b.kind.String()+" is not a book kind")
	}
	id, err := requireID("id", b.id)
	if err != nil {
		return Params{}, err
	}
	return Params{kind: b.kind, id: id}, nil
}

// BatchBuilder accumulates an /api/books lookup of several bibkeys such as
// "ISBN:0201558025" or "LCCN:93005405".
type BatchBuilder struct {
	bibkeys []string
	command *string
}

// NewBatchBuilder starts a batch lookup.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{}
}

// Bibkeys replaces the bibkey list. Order is kept.
func (b *BatchBuilder) Bibkeys(keys ...string) *BatchBuilder {
	b.bibkeys = slices.Clone(keys)
	return b
}

// Command overrides the jscmd ("viewapi" or "data").
func (b *BatchBuilder) Command(cmd string) *BatchBuilder {
	b.command = &cmd
	return b
}

// Build returns the batch Params. Blank bibkeys are dropped; at least one
// must remain.
func (b *BatchBuilder) Build() (Params, error) {
	keys := make([]string, 0, len(b.bibkeys))
	for _, key := range b.bibkeys {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return Params{}, errors.NewMissingRequiredFieldError("bibkeys")
	}

	command := DefaultCommand
	if b.command != nil && strings.TrimSpace(*b.command) != "" {
		command = strings.TrimSpace(*b.command)
	}
	return Params{kind: KindBatch, bibkeys: keys, command: command}, nil
}

// AuthorBuilder accumulates an author profile or author works request.
type AuthorBuilder struct {
	kind Kind
	id   *string
	paging
}

// NewAuthorBuilder starts an author profile request.
func NewAuthorBuilder() *AuthorBuilder {
	return &AuthorBuilder{kind: KindAuthor}
}

// ID sets the author identifier, e.g. "OL23919A".
func (b *AuthorBuilder) ID(id string) *AuthorBuilder {
	b.id = &id
	return b
}

// Works switches between the profile (false) and the works listing (true).
func (b *AuthorBuilder) Works(works bool) *AuthorBuilder {
	b.kind = KindAuthor
	if works {
		b.kind = KindAuthorWorks
	}
	return b
}

// Limit sets the page size.
func (b *AuthorBuilder) Limit(limit uint) *AuthorBuilder {
	b.limit = &limit
	return b
}

// Offset sets how many works to skip.
func (b *AuthorBuilder) Offset(offset uint) *AuthorBuilder {
	b.offset = &offset
	return b
}

// Build returns the author Params.
func (b *AuthorBuilder) Build() (Params, error) {
	id, err := requireID("id", b.id)
	if err != nil {
		return Params{}, err
	}
	p := Params{kind: b.kind, id: id}
	if err := b.apply(&p); err != nil {
		return Params{}, err
	}
	return p, nil
}

// SubjectBuilder accumulates a subject request.
type SubjectBuilder struct {
	subject     *string
	details     *bool
	ebooks      *bool
	publishedIn *string
	paging
}

// NewSubjectBuilder starts a subject request.
func NewSubjectBuilder() *SubjectBuilder {
	return &SubjectBuilder{}
}

// Subject sets the subject name, e.g. "love" or "science fiction".
func (b *SubjectBuilder) Subject(subject string) *SubjectBuilder {
	b.subject = &subject
	return b
}

// Details asks for authors, publishers and related subjects as well.
func (b *SubjectBuilder) Details(details bool) *SubjectBuilder {
	b.details = &details
	return b
}

// Ebooks restricts the works to those with an ebook.
func (b *SubjectBuilder) Ebooks(ebooks bool) *SubjectBuilder {
	b.ebooks = &ebooks
	return b
}

// PublishedIn restricts works to a year or year range such as "1500-1600".
func (b *SubjectBuilder) PublishedIn(years string) *SubjectBuilder {
	b.publishedIn = &years
	return b
}

// Limit sets the page size.
func (b *SubjectBuilder) Limit(limit uint) *SubjectBuilder {
	b.limit = &limit
	return b
}

// Offset sets how many works to skip.
func (b *SubjectBuilder) Offset(offset uint) *SubjectBuilder {
	b.offset = &offset
	return b
}

// Build returns the subject Params.
func (b *SubjectBuilder) Build() (Params, error) {
	subject, err := requireID("subject", b.subject)
	if err != nil {
		return Params{}, err
	}
	p := Params{
		kind:    KindSubject,
		id:      subject,
		details: cloneBool(b.details),
		ebooks:  cloneBool(b.ebooks),
	}
	if b.publishedIn != nil {
		p.publishedIn = strings.TrimSpace(*b.publishedIn)
	}
	if err := b.apply(&p); err != nil {
		return Params{}, err
	}
	return p, nil
}

// SearchBuilder accumulates a search request. No field is required.
type SearchBuilder struct {
	scope  SearchScope
	query  *string
	title  *string
	author *string
	fields []string
	paging
}

// NewSearchBuilder starts a book search.
func NewSearchBuilder() *SearchBuilder {
	return &SearchBuilder{scope: ScopeBooks}
}

// Scope selects the index: books, authors, subjects or lists.
func (b *SearchBuilder) Scope(scope SearchScope) *SearchBuilder {
	b.scope = scope
	return b
}

// Query sets the free-text query (q).
func (b *SearchBuilder) Query(q string) *SearchBuilder {
	b.query = &q
	return b
}

// Title filters on title.
func (b *SearchBuilder) Title(title string) *SearchBuilder {
	b.title = &title
	return b
}

// Author filters on author name.
func (b *SearchBuilder) Author(author string) *SearchBuilder {
	b.author = &author
	return b
}

// Fields replaces the list of fields the service should return. Order is
// kept and duplicates are dropped.
func (b *SearchBuilder) Fields(fields ...string) *SearchBuilder {
	b.fields = slices.Clone(fields)
	return b
}

// Page sets the 1-based page.
func (b *SearchBuilder) Page(page uint) *SearchBuilder {
	b.page = &page
	return b
}

// Limit sets the page size.
func (b *SearchBuilder) Limit(limit uint) *SearchBuilder {
	b.limit = &limit
	return b
}

// Build returns the search Params.
func (b *SearchBuilder) Build() (Params, error) {
	switch b.scope {
	case ScopeBooks, ScopeAuthors, ScopeSubjects, ScopeLists:
	default:
		return Params{}, errors.NewInvalidFieldError("scope", string(b.scope))
	}

	p := Params{
		kind:   KindSearch,
		scope:  b.scope,
		query:  deref(b.query),
		title:  deref(b.title),
		author: deref(b.author),
		fields: uniqueFields(b.fields),
	}
	if err := b.apply(&p); err != nil {
		return Params{}, err
	}
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func uniqueFields(fields []string) []string {
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || slices.Contains(out, f) {
			continue
		}
		out = append(out, f)
	}
	return out
}
