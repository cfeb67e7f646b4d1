package openlibrary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/openlibrary/internal/errors"
)

func TestDecodeSearchEnvelope(t *testing.T) {
	body := []byte(`{"numFound":1,"start":0,"numFoundExact":true,"docs":[{"key":"/works/43242","title":"test"}]}`)

	result, err := Decode(KindSearch, body)
	require.NoError(t, err)
	require.NotNil(t, result.Envelope)
	assert.Nil(t, result.Record)
	assert.Equal(t, StrategyEnvelope, result.Strategy)

	env := result.Envelope
	assert.Equal(t, int64(1), env.NumFound)
	assert.Equal(t, int64(0), env.Start)
	assert.True(t, env.NumFoundExact)
	require.Len(t, env.Docs, 1)
	assert.Equal(t, "test", env.Docs[0]["title"])
	assert.Nil(t, env.Extra)
}

func TestDecodeSearchKeepsSparsity(t *testing.T) {
	body := []byte(`{
		"numFound": 2, "start": 0, "numFoundExact": false, "q": "dune",
		"num_found": 2, "documentation_url": "https://openlibrary.org/dev/docs/api/search",
		"docs": [
			{"key": "/works/OL1W", "title": "Dune", "first_publish_year": 1965, "author_name": ["Frank Herbert"]},
			{"key": "/works/OL2W", "title": "Dune Messiah"}
		]
	}`)

	env, err := DecodeEnvelope(KindSearch, body)
	require.NoError(t, err)

	assert.Equal(t, "dune", env.Query)
	assert.False(t, env.NumFoundExact)
	require.Len(t, env.Docs, 2)

	year, ok := env.Docs[0].IntValue("first_publish_year")
	require.True(t, ok)
	assert.Equal(t, int64(1965), year)
	assert.Equal(t, []string{"Frank Herbert"}, env.Docs[0].StringList("author_name"))

	_, present := env.Docs[1]["first_publish_year"]
	assert.False(t, present, "missing fields stay absent")

	assert.Equal(t, json.Number("2"), env.Extra["num_found"])
	assert.Contains(t, env.Extra, "documentation_url")
}

func TestDecodeSubjectEnvelope(t *testing.T) {
	body := []byte(`{"key":"/subjects/love","name":"love","subject_type":"subject","work_count":62,
		"works":[{"key":"/works/OL66554W","title":"Pride and Prejudice"}]}`)

	env, err := DecodeEnvelope(KindSubject, body)
	require.NoError(t, err)

	assert.Equal(t, int64(62), env.NumFound)
	assert.True(t, env.NumFoundExact)
	require.Len(t, env.Docs, 1)
	assert.Equal(t, "/subjects/love", env.Extra["key"])
	assert.Equal(t, "love", env.Extra["name"])
}

func TestDecodeSubjectWithoutWorks(t *testing.T) {
	body := []byte(`{"key":"/subjects/love","name":"love","work_count":62}`)

	result, err := Decode(KindSubject, body)
	require.NoError(t, err)
	require.NotNil(t, result.Envelope)

	env := result.Envelope
	assert.Equal(t, int64(62), env.NumFound)
	assert.True(t, env.NumFoundExact)
	assert.NotNil(t, env.Docs)
	assert.Empty(t, env.Docs)
	assert.Equal(t, "/subjects/love", env.Extra["key"])
	assert.Equal(t, "love", env.Extra["name"])
}

func TestDecodeAuthorWorksWithoutEntries(t *testing.T) {
	env, err := DecodeEnvelope(KindAuthorWorks, []byte(`{"links":{}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(0), env.NumFound)
	assert.False(t, env.NumFoundExact)
	assert.Empty(t, env.Docs)
}

func TestDecodeEnvelopeUnknownKind(t *testing.T) {
	body := []byte(`{"docs":[]}`)

	env, err := DecodeEnvelope(Kind(42), body)
	require.Error(t, err)
	assert.Nil(t, env)

	var decodeErr *errors.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "kind(42)", decodeErr.Kind)
	assert.Equal(t, body, decodeErr.Body)
}

func TestDecodeAuthorWorksEnvelope(t *testing.T) {
	body := []byte(`{"links":{"self":"/authors/OL23919A/works.json"},"size":2,
		"entries":[{"title":"A"},{"title":"B"}]}`)

	env, err := DecodeEnvelope(KindAuthorWorks, body)
	require.NoError(t, err)

	assert.Equal(t, int64(2), env.NumFound)
	require.Len(t, env.Docs, 2)
	assert.Equal(t, "B", env.Docs[1]["title"])
	assert.Contains(t, env.Extra, "links")
}

func TestDecodeBatchKeepsResponseOrder(t *testing.T) {
	body := []byte(`{
		"LCCN:93005405": {"bib_key": "LCCN:93005405", "preview": "noview"},
		"ISBN:0201558025": {"bib_key": "ISBN:0201558025", "preview": "borrow"}
	}`)

	env, err := DecodeEnvelope(KindBatch, body)
	require.NoError(t, err)

	assert.Equal(t, int64(2), env.NumFound)
	assert.True(t, env.NumFoundExact)
	assert.Equal(t, []string{"LCCN:93005405", "ISBN:0201558025"}, env.Keys)
	assert.Equal(t, "borrow", env.Docs[1]["preview"])
}

func TestDecodeBatchEmptyObject(t *testing.T) {
	env, err := DecodeEnvelope(KindBatch, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, int64(0), env.NumFound)
	assert.Empty(t, env.Docs)
}

func TestDecodeFlatRecord(t *testing.T) {
	body := []byte(`{"title":"test","key":"/works/OL45883W","description":{"type":"/type/text","value":"A tale."},"covers":[1,2]}`)

	result, err := Decode(KindWork, body)
	require.NoError(t, err)
	assert.Nil(t, result.Envelope)

	record := result.Record
	assert.Equal(t, "test", record["title"])
	text, ok := record.Text("description")
	require.True(t, ok)
	assert.Equal(t, "A tale.", text)
	assert.Equal(t, []string{"covers", "description", "key", "title"}, record.Keys())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		body string
	}{
		{"malformed json", KindWork, `{"title":`},
		{"empty body", KindAuthor, ``},
		{"array at top level", KindEdition, `[{"title":"x"}]`},
		{"null body", KindISBN, `null`},
		{"trailing data", KindWork, `{"a":1}{"b":2}`},
		{"search without docs", KindSearch, `{"numFound":0}`},
		{"docs not a list", KindSearch, `{"numFound":1,"docs":{}}`},
		{"doc not an object", KindSearch, `{"numFound":1,"docs":["x"]}`},
		{"count not a number", KindSubject, `{"work_count":"many","works":[]}`},
		{"subject works not a list", KindSubject, `{"work_count":1,"works":{}}`},
		{"negative count", KindSearch, `{"numFound":-1,"docs":[]}`},
		{"exact not a bool", KindSearch, `{"numFound":1,"numFoundExact":"yes","docs":[]}`},
		{"batch value not an object", KindBatch, `{"ISBN:1":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Decode(tt.kind, []byte(tt.body))
			require.Error(t, err)
			assert.Nil(t, result)

			var decodeErr *errors.DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.body, string(decodeErr.Body))
			assert.Equal(t, tt.kind.String(), decodeErr.Kind)
		})
	}
}

func TestRecordAccessors(t *testing.T) {
	r := Record{
		"name":    "J.R.R. Tolkien",
		"count":   json.Number("3"),
		"ratio":   1.5,
		"whole":   float64(4),
		"flag":    true,
		"links":   []any{"a", 2, "b"},
		"bio":     "plain",
		"created": map[string]any{"type": "/type/datetime", "value": "2008-04-01"},
	}

	name, ok := r.StringValue("name")
	assert.True(t, ok)
	assert.Equal(t, "J.R.R. Tolkien", name)

	_, ok = r.StringValue("count")
	assert.False(t, ok)

	n, ok := r.IntValue("count")
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)

	_, ok = r.IntValue("ratio")
	assert.False(t, ok)

	n, ok = r.IntValue("whole")
	assert.True(t, ok)
	assert.Equal(t, int64(4), n)

	flag, ok := r.BoolValue("flag")
	assert.True(t, ok)
	assert.True(t, flag)

	assert.Equal(t, []string{"a", "b"}, r.StringList("links"))
	assert.Nil(t, r.StringList("missing"))

	bio, ok := r.Text("bio")
	assert.True(t, ok)
	assert.Equal(t, "plain", bio)

	nested, ok := r.Nested("created")
	require.True(t, ok)
	assert.Equal(t, "2008-04-01", nested["value"])
}
