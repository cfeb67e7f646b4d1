// Package openlibrary builds, dispatches and decodes requests against the
// Open Library web API (https://openlibrary.org/developers/api).
//
// A request starts in one of the builders (NewBookBuilder, NewBatchBuilder,
// NewAuthorBuilder, NewSubjectBuilder, NewSearchBuilder). Build validates the
// accumulated values and returns an immutable Params. Resolve turns Params into
// a path and an ordered query, Client.Execute performs the single GET and
// Decode turns the body into either a flat Record or an Envelope of Records.
package openlibrary

import (
	"fmt"
	"strings"
)

// Kind identifies an Open Library resource. The set is closed.
type Kind int

const (
	// KindWork is a work looked up by its OL...W identifier.
	KindWork Kind = iota
	// KindEdition is an edition looked up by its OL...M identifier.
	KindEdition
	// KindISBN is an edition looked up by ISBN-10 or ISBN-13.
	KindISBN
	// KindBatch is the /api/books lookup of several bibkeys at once.
	KindBatch
	// KindAuthor is an author profile.
	KindAuthor
	// KindAuthorWorks lists the works of an author.
	KindAuthorWorks
	// KindSubject is a subject with its works.
	KindSubject
	// KindSearch is the full-text search API.
	KindSearch
)

// Strategy selects how a response body is decoded.
type Strategy int

const (
	// StrategyFlat decodes the whole body into one Record.
	StrategyFlat Strategy = iota
	// StrategyEnvelope decodes a count plus a list of Records.
	StrategyEnvelope
)

func (s Strategy) String() string {
	if s == StrategyEnvelope {
		return "envelope"
	}
	return "flat"
}

// envelopeSchema names the top-level keys a list response uses. Empty
// strings mean the response has no such key.
type envelopeSchema struct {
	count string
	start string
	exact string
	query string
	docs  string
}

func (s envelopeSchema) reserved(key string) bool {
	if key == "" {
		return false
	}
	return key == s.count || key == s.start || key == s.exact || key == s.query || key == s.docs
}

type kindSpec struct {
	name     string
	path     string
	strategy Strategy
	envelope envelopeSchema
}

var kindSpecs = [...]kindSpec{
	KindWork:    {name: "work", path: "/works/%s.json"},
	KindEdition: {name: "edition", path: "/books/%s.json"},
	KindISBN:    {name: "isbn", path: "/isbn/%s.json"},
	KindBatch:   {name: "batch", path: "/api/books", strategy: StrategyEnvelope},
	KindAuthor:  {name: "author", path: "/authors/%s.json"},
	KindAuthorWorks: {
		name:     "author-works",
		path:     "/authors/%s/works.json",
		strategy: StrategyEnvelope,
		envelope: envelopeSchema{count: "size", docs: "entries"},
	},
	KindSubject: {
		name:     "subject",
		path:     "/subjects/%s.json",
		strategy: StrategyEnvelope,
		envelope: envelopeSchema{count: "work_count", docs: "works"},
	},
	KindSearch: {
		name:     "search",
		path:     "/search%s.json",
		strategy: StrategyEnvelope,
		envelope: envelopeSchema{
			count: "numFound",
			start: "start",
			exact: "numFoundExact",
			query: "q",
			docs:  "docs",
		},
	},
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindSpecs)
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindSpecs[k].name
}

// Strategy returns the decoding strategy for responses of this kind.
func (k Kind) Strategy() Strategy {
	if !k.Valid() {
		return StrategyFlat
	}
	return kindSpecs[k].strategy
}

// SearchScope selects which search index is queried.
type SearchScope string

const (
	ScopeBooks    SearchScope = ""
	ScopeAuthors  SearchScope = "/authors"
	ScopeSubjects SearchScope = "/subjects"
	ScopeLists    SearchScope = "/lists"
)

// ParseScope maps a user-facing scope name to a SearchScope.
func ParseScope(name string) (SearchScope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "books", "works":
		return ScopeBooks, nil
	case "authors":
		return ScopeAuthors, nil
	case "subjects":
		return ScopeSubjects, nil
	case "lists":
		return ScopeLists, nil
	}
	return ScopeBooks, fmt.Errorf("unknown search scope %q", name)
}

func (s SearchScope) String() string {
	if s == ScopeBooks {
		return "books"
	}
	return strings.TrimPrefix(string(s), "/")
}
