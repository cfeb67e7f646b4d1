package openlibrary

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryParam is a single key/value pair of a query string.
type QueryParam struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters. Unlike url.Values it keeps
// insertion order, so the encoded form is stable.
type Query []QueryParam

// Encode percent-encodes every key and value and joins them in order.
func (q Query) Encode() string {
	var sb strings.Builder
	for i, p := range q {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

// Get returns the first value for key.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Has reports whether key is present.
func (q Query) Has(key string) bool {
	_, ok := q.Get(key)
	return ok
}

func (q Query) add(key, value string) Query {
	return append(q, QueryParam{Key: key, Value: value})
}

// addString omits empty values so "no filter" never becomes an explicit
// empty filter upstream.
func (q Query) addString(key, value string) Query {
	if value == "" {
		return q
	}
	return q.add(key, value)
}

func (q Query) addList(key string, values []string) Query {
	if len(values) == 0 {
		return q
	}
	return q.add(key, strings.Join(values, ","))
}

func (q Query) addBool(key string, value, set bool) Query {
	if !set {
		return q
	}
	return q.add(key, strconv.FormatBool(value))
}

func (q Query) addUint(key string, value uint) Query {
	return q.add(key, strconv.FormatUint(uint64(value), 10))
}

// Resolve maps Params to a path relative to the service root and an ordered
// query. It is pure: equal Params always give equal results, and it never
// sees the host.
func Resolve(p Params) (string, Query) {
	var query Query

	switch p.kind {
	case KindWork, KindEdition, KindISBN:
		return resourcePath(p.kind, p.id), query

	case KindBatch:
		query = query.add("format", "json")
		query = query.addList("bibkeys", p.bibkeys)
		query = query.add("jscmd", p.command)
		return kindSpecs[KindBatch].path, query

	case KindAuthor, KindAuthorWorks:
		query = query.addUint("limit", p.limit)
		query = query.addUint("offset", p.offset)
		return resourcePath(p.kind, p.id), query

	case KindSubject:
		details, detailsSet := p.Details()
		ebooks, ebooksSet := p.Ebooks()
		query = query.addBool("details", details, detailsSet)
		query = query.addBool("ebooks", ebooks, ebooksSet)
		query = query.addString("published_in", p.publishedIn)
		query = query.addUint("limit", p.limit)
		query = query.addUint("offset", p.offset)
		return resourcePath(p.kind, SubjectKey(p.id)), query

	case KindSearch:
		query = query.addString("q", p.query)
		query = query.addString("title", p.title)
		query = query.addString("author", p.author)
		query = query.addList("fields", p.fields)
		query = query.addUint("page", p.page)
		query = query.addUint("limit", p.limit)
		return fmt.Sprintf(kindSpecs[KindSearch].path, string(p.scope)), query
	}

	return "", nil
}

func resourcePath(kind Kind, id string) string {
	return fmt.Sprintf(kindSpecs[kind].path, url.PathEscape(id))
}

// SubjectKey normalizes a subject name the way Open Library keys subjects:
// lower case with underscores instead of spaces.
func SubjectKey(subject string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(subject)), " ", "_")
}
