package openlibrary

import "slices"

const (
	// DefaultPage is the first page of search results.
	DefaultPage uint = 1
	// DefaultLimit is the page size used when the caller sets none.
	DefaultLimit uint = 10
	// DefaultCommand is the jscmd used by batch lookups.
	DefaultCommand = "viewapi"
)

// Params is a validated, immutable request description produced by one of
// the builders. The zero value is not a valid request.
type Params struct {
	kind        Kind
	scope       SearchScope
	id          string
	bibkeys     []string
	command     string
	query       string
	title       string
	author      string
	fields      []string
	details     *bool
	ebooks      *bool
	publishedIn string
	page        uint
	limit       uint
	offset      uint
}

// Kind returns the resource kind.
func (p Params) Kind() Kind { return p.kind }

// Scope returns the search index for KindSearch.
func (p Params) Scope() SearchScope { return p.scope }

// ID returns the work, edition, ISBN, author or subject identifier.
func (p Params) ID() string { return p.id }

// Bibkeys returns a copy of the batch lookup keys in caller order.
func (p Params) Bibkeys() []string { return slices.Clone(p.bibkeys) }

// Command returns the jscmd of a batch lookup.
func (p Params) Command() string { return p.command }

// Query returns the free-text search query.
func (p Params) Query() string { return p.query }

// Title returns the title filter of a search.
func (p Params) Title() string { return p.title }

// Author returns the author filter of a search.
func (p Params) Author() string { return p.author }

// Fields returns a copy of the requested result fields. Empty means all.
func (p Params) Fields() []string { return slices.Clone(p.fields) }

// Details reports the subject details flag and whether it was set at all.
func (p Params) Details() (value, set bool) { return derefBool(p.details) }

// Ebooks reports the subject ebooks flag and whether it was set at all.
func (p Params) Ebooks() (value, set bool) { return derefBool(p.ebooks) }

// PublishedIn returns the subject year range, e.g. "1500-1600".
func (p Params) PublishedIn() string { return p.publishedIn }

// Page returns the 1-based search page.
func (p Params) Page() uint { return p.page }

// Limit returns the page size. Zero asks the service for its own default.
func (p Params) Limit() uint { return p.limit }

// Offset returns the number of entries to skip for author and subject lists.
func (p Params) Offset() uint { return p.offset }

func derefBool(b *bool) (value, set bool) {
	if b == nil {
		return false, false
	}
	return *b, true
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
