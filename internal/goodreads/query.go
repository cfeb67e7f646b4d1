// Package goodreads finds Goodreads book identifiers on a search results page.
package goodreads

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public Goodreads site.
const DefaultBaseURL = "https://www.goodreads.com"

// SearchField restricts which part of a book the search term matches.
type SearchField int

const (
	FieldAll SearchField = iota
	FieldTitle
	FieldAuthor
	FieldGenre
)

func (f SearchField) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldAuthor:
		return "author"
	case FieldGenre:
		return "genre"
	}
	return "all"
}

// ParseSearchField maps "all", "title", "author" or "genre" to a SearchField.
func ParseSearchField(name string) (SearchField, error) {
	for _, f := range []SearchField{FieldAll, FieldTitle, FieldAuthor, FieldGenre} {
		if strings.EqualFold(strings.TrimSpace(name), f.String()) {
			return f, nil
		}
	}
	if strings.TrimSpace(name) == "" {
		return FieldAll, nil
	}
	return FieldAll, fmt.Errorf("unknown search field %q", name)
}

// Query is one search on the Goodreads site.
type Query struct {
	Term  string
	Field SearchField
}

// URL returns the search page URL under base.
func (q Query) URL(base string) string {
	values := url.Values{}
	values.Set("q", q.Term)
	values.Set("search[field]", q.Field.String())
	return strings.TrimSuffix(base, "/") + "/search?" + values.Encode()
}
