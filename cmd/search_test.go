package cmd

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/lepinkainen/openlibrary/internal/errors"
	"github.com/lepinkainen/openlibrary/internal/openlibrary"
	"github.com/lepinkainen/openlibrary/internal/testutil"
	"github.com/lepinkainen/openlibrary/internal/tui"
)

func stubSelect(t *testing.T, result tui.SelectionResult) *[]openlibrary.Record {
	t.Helper()
	var seen []openlibrary.Record
	orig := selectDoc
	selectDoc = func(query string, docs []openlibrary.Record) (tui.SelectionResult, error) {
		seen = docs
		return result, nil
	}
	t.Cleanup(func() { selectDoc = orig })
	return &seen
}

const searchBody = `{
	"numFound": 2,
	"start": 0,
	"numFoundExact": true,
	"q": "dahl",
	"docs": [
		{"key": "/works/OL45804W", "title": "Fantastic Mr Fox"},
		{"key": "OL34184A", "name": "Roald Dahl"}
	]
}`

func TestParamsForKey(t *testing.T) {
	tests := []struct {
		key    string
		kind   openlibrary.Kind
		id     string
		follow bool
	}{
		{key: "/works/OL45804W", kind: openlibrary.KindWork, id: "OL45804W", follow: true},
		{key: "/books/OL7353617M", kind: openlibrary.KindEdition, id: "OL7353617M", follow: true},
		{key: "/authors/OL34184A", kind: openlibrary.KindAuthor, id: "OL34184A", follow: true},
		{key: "OL34184A", kind: openlibrary.KindAuthor, id: "OL34184A", follow: true},
		{key: "/subjects/science_fiction", kind: openlibrary.KindSubject, follow: true},
		{key: "/people/george08/lists/OL97L"},
		{key: ""},
		{key: "/works/"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			p, ok := paramsForKey(tt.key)
			assert.Equal(t, tt.follow, ok)
			if !tt.follow {
				return
			}
			assert.Equal(t, tt.kind, p.Kind())
			if tt.id != "" {
				assert.Equal(t, tt.id, p.ID())
			}
		})
	}
}

func TestSearchInteractive_FollowsSelection(t *testing.T) {
	server := testutil.NewMockServer(t, map[string]testutil.Fixture{
		"/search.json":         testutil.JSON(searchBody),
		"/works/OL45804W.json": testutil.JSON(`{"title":"Fantastic Mr Fox","subjects":["Foxes"]}`),
	})
	testutil.SetTestConfig(t, testutil.WithHost(server.URL))

	seen := stubSelect(t, tui.SelectionResult{
		Action:    tui.ActionSelected,
		Selection: openlibrary.Record{"key": "/works/OL45804W"},
	})

	out, err := runCLI(t, "search", "dahl", "-i")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(*seen))
	assert.Contains(t, out, `"subjects": [`)
	assert.Equal(t, []string{"/search.json?q=dahl&page=1&limit=10", "/works/OL45804W.json"}, server.Requests())
}

func TestSearchInteractive_Stop(t *testing.T) {
	server := testutil.NewMockServer(t, map[string]testutil.Fixture{
		"/search.json": testutil.JSON(searchBody),
	})
	testutil.SetTestConfig(t, testutil.WithHost(server.URL))
	stubSelect(t, tui.SelectionResult{Action: tui.ActionStopped})

	out, err := runCLI(t, "search", "dahl", "--interactive")
	assert.Error(t, err)
	assert.True(t, errors.IsStopProcessingError(err))
	assert.Equal(t, "", out)
}

func TestSearchInteractive_SkipWritesNothing(t *testing.T) {
	server := testutil.NewMockServer(t, map[string]testutil.Fixture{
		"/search.json": testutil.JSON(searchBody),
	})
	testutil.SetTestConfig(t, testutil.WithHost(server.URL))
	stubSelect(t, tui.SelectionResult{Action: tui.ActionSkipped})

	out, err := runCLI(t, "search", "dahl", "-i")
	assert.NoError(t, err)
	assert.Equal(t, "", out)
	assert.Equal(t, 1, len(server.Requests()))
}

func TestSearchDryRun_IgnoresInteractive(t *testing.T) {
	testutil.SetTestConfig(t, testutil.WithHost("http://books.test"))
	seen := stubSelect(t, tui.SelectionResult{})

	out, err := runCLI(t, "--dry-run", "search", "--title", "dune", "--fields", "key,title", "--scope", "works", "-i")
	assert.NoError(t, err)
	assert.Equal(t, "http://books.test/search.json?title=dune&fields=key%2Ctitle&page=1&limit=10\n", out)
	assert.Equal(t, 0, len(*seen))
}
