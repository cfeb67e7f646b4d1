package openlibrary

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"

	"github.com/lepinkainen/openlibrary/internal/errors"
)

// Envelope is a list response. Only the count and paging fields are typed;
// each doc stays a loosely typed Record because the upstream schema is wide
// and sparse.
type Envelope struct {
	NumFound      int64    `json:"numFound" yaml:"numFound"`
	Start         int64    `json:"start" yaml:"start"`
	NumFoundExact bool     `json:"numFoundExact" yaml:"numFoundExact"`
	Query         string   `json:"q,omitempty" yaml:"q,omitempty"`
	Docs          []Record `json:"docs" yaml:"docs"`
	// Keys holds the bibkey of each doc for batch lookups.
	Keys []string `json:"keys,omitempty" yaml:"keys,omitempty"`
	// Extra holds top-level fields outside the envelope contract.
	Extra Record `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Decode decodes body with the strategy of kind.
func Decode(kind Kind, body []byte) (*Result, error) {
	result := &Result{Kind: kind, Strategy: kind.Strategy()}
	if result.Strategy == StrategyEnvelope {
		env, err := DecodeEnvelope(kind, body)
		if err != nil {
			return nil, err
		}
		result.Envelope = env
		return result, nil
	}

	record, err := DecodeRecord(kind, body)
	if err != nil {
		return nil, err
	}
	result.Record = record
	return result, nil
}

// DecodeRecord decodes the whole body as one Record.
func DecodeRecord(kind Kind, body []byte) (Record, error) {
	_, values, err := decodeObject(body)
	if err != nil {
		return nil, errors.NewDecodeError(kind.String(), body, err)
	}
	return values, nil
}

// DecodeEnvelope decodes a list response of kind. Batch lookups, which
// return an object keyed by bibkey, are turned into an envelope whose docs
// follow the response order.
func DecodeEnvelope(kind Kind, body []byte) (*Envelope, error) {
	if !kind.Valid() {
		return nil, errors.NewDecodeError(kind.String(), body, fmt.Errorf("unknown kind"))
	}
	keys, values, err := decodeObject(body)
	if err == nil {
		var env *Envelope
		if kind == KindBatch {
			env, err = batchEnvelope(keys, values)
		} else {
			env, err = listEnvelope(kindSpecs[kind].envelope, keys, values)
		}
		if err == nil {
			return env, nil
		}
	}
	return nil, errors.NewDecodeError(kind.String(), body, err)
}

func batchEnvelope(keys []string, values Record) (*Envelope, error) {
	env := &Envelope{NumFoundExact: true, Docs: []Record{}, Keys: []string{}}
	for _, key := range keys {
		doc, ok := values[key].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("bibkey %q: %s is not an object", key, jsonKind(values[key]))
		}
		env.Docs = append(env.Docs, doc)
		env.Keys = append(env.Keys, key)
	}
	env.NumFound = int64(len(env.Docs))
	return env, nil
}

func listEnvelope(schema envelopeSchema, keys []string, values Record) (*Envelope, error) {
	var err error

	// Subject and author works bodies may leave out their list entirely;
	// search always sends one.
	docs := []Record{}
	if raw, ok := values[schema.docs]; ok {
		if docs, err = toRecords(schema.docs, raw); err != nil {
			return nil, err
		}
	} else if schema.exact != "" {
		return nil, fmt.Errorf("missing %q list", schema.docs)
	}

	env := &Envelope{Docs: docs, NumFound: int64(len(docs))}
	if v, ok := values[schema.count]; ok {
		if env.NumFound, err = toCount(schema.count, v); err != nil {
			return nil, err
		}
		env.NumFoundExact = schema.exact == ""
	}
	if v, ok := values[schema.start]; ok && schema.start != "" {
		if env.Start, err = toCount(schema.start, v); err != nil {
			return nil, err
		}
	}
	if v, ok := values[schema.exact]; ok && schema.exact != "" {
		exact, isBool := v.(bool)
		if !isBool {
			return nil, fmt.Errorf("%q: %s is not a boolean", schema.exact, jsonKind(v))
		}
		env.NumFoundExact = exact
	}
	if v, ok := values[schema.query]; ok && schema.query != "" {
		if q, isString := v.(string); isString {
			env.Query = q
		}
	}

	for _, key := range keys {
		if schema.reserved(key) {
			continue
		}
		if env.Extra == nil {
			env.Extra = Record{}
		}
		env.Extra[key] = values[key]
	}
	return env, nil
}

// decodeObject decodes a single top-level JSON object and also returns its
// keys in document order.
func decodeObject(body []byte) ([]string, Record, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("top-level value is %s, want object", tokenKind(tok))
	}

	var keys []string
	values := Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	if _, err := dec.Token(); !stdErrors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("trailing data after top-level object")
	}
	return keys, values, nil
}

func toRecords(key string, v any) ([]Record, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%q: %s is not a list", key, jsonKind(v))
	}
	docs := make([]Record, 0, len(list))
	for i, item := range list {
		doc, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%q[%d]: %s is not an object", key, i, jsonKind(item))
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func toCount(key string, v any) (int64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%q: %s is not a number", key, jsonKind(v))
	}
	count, err := n.Int64()
	if err != nil || count < 0 {
		return 0, fmt.Errorf("%q: %s is not a count", key, n)
	}
	return count, nil
}

func tokenKind(tok json.Token) string {
	if delim, ok := tok.(json.Delim); ok && delim == '[' {
		return "array"
	}
	return jsonKind(tok)
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any, Record:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
