package repository

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFS embed.FS

var (
	columnsSchema  = mustCompile("schema/columns.json")
	scheduleSchema = mustCompile("schema/schedule.json")
)

func mustCompile(name string) *jsonschema.Schema {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("repository: read %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	compiler.AssertFormat = true
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("repository: add %s: %v", name, err))
	}
	return compiler.MustCompile(name)
}

// decode checks data against schema and then unmarshals it into dest.
func decode(key string, data []byte, schema *jsonschema.Schema, dest any) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptDocument, key, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptDocument, key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptDocument, key, err)
	}
	return nil
}
