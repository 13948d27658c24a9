package docstore

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Codec turns values into document bodies and back, validating every body
// against the JSON Schema of its collection.
type Codec struct {
	schemas map[string]*jsonschema.Schema
}

func NewCodec() (*Codec, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	schemas := make(map[string]*jsonschema.Schema, len(collections))
	for _, c := range Collections() {
		url := schemaURL(c)
		raw, err := schemaFS.ReadFile("schemas/" + c + ".schema.json")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s schema: %w", c, err)
		}
		if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to add %s schema: %w", c, err)
		}
		schema, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", c, err)
		}
		schemas[c] = schema
	}

	return &Codec{schemas: schemas}, nil
}

func schemaURL(collection string) string {
	return "https://schemas.board-api.local/" + collection + ".schema.json"
}

// Encode marshals v and checks the result against the collection schema.
func (c *Codec) Encode(collection string, v any) (json.RawMessage, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Serialization(err, "failed to encode "+collection+" document")
	}
	if err := c.validate(collection, body); err != nil {
		return nil, err
	}
	return body, nil
}

// Decode checks body against the collection schema and unmarshals it into v.
func (c *Codec) Decode(collection string, body []byte, v any) error {
	if err := c.validate(collection, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.Serialization(err, "failed to decode "+collection+" document")
	}
	return nil
}

func (c *Codec) validate(collection string, body []byte) error {
	schema, ok := c.schemas[collection]
	if !ok {
		return errors.InvalidInput("unknown collection " + collection)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return errors.Serialization(err, "malformed "+collection+" document")
	}
	if err := schema.Validate(doc); err != nil {
		return errors.Serialization(err, "invalid "+collection+" document")
	}
	return nil
}
