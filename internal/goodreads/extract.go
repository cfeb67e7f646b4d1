package goodreads

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var digitsRe = regexp.MustCompile(`\d+`)

// Book is one search hit.
type Book struct {
	ID  uint64 `json:"id" yaml:"id"`
	URL string `json:"url" yaml:"url"`
}

// ExtractIDs returns the numeric book identifiers of a search results page in
// document order. Each table row contributes the first run of digits in the
// href of its first anchor. Rows without an anchor, an href or digits are
// skipped.
func ExtractIDs(r io.Reader) ([]uint64, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing search page: %w", err)
	}

	var ids []uint64
	for _, row := range findAll(doc, atom.Tr) {
		anchor := findFirst(row, atom.A)
		if anchor == nil {
			continue
		}
		href, ok := attr(anchor, "href")
		if !ok {
			continue
		}
		digits := digitsRe.FindString(href)
		if digits == "" {
			continue
		}
		id, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			// Overflowing digit runs are not identifiers.
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ExtractBooks is ExtractIDs with each identifier turned into a book URL
// under base.
func ExtractBooks(r io.Reader, base string) ([]Book, error) {
	ids, err := ExtractIDs(r)
	if err != nil {
		return nil, err
	}
	books := make([]Book, 0, len(ids))
	for _, id := range ids {
		books = append(books, Book{ID: id, URL: BookURL(base, id)})
	}
	return books, nil
}

// BookURL returns the page of book id under base.
func BookURL(base string, id uint64) string {
	return fmt.Sprintf("%s/book/show/%d", strings.TrimSuffix(base, "/"), id)
}

// findAll returns every element with tag a below n, in document order.
func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
