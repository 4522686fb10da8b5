package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed profile.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/dshills/touchgesture/profile.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON schema profiles are validated against.
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}

func profileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// validate checks a decoded document against the profile schema. The
// document is first normalized to the JSON data model.
func validate(path string, doc map[string]any) ([]byte, error) {
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, newParseError(path, err)
	}

	var instance any
	if err := json.Unmarshal(normalized, &instance); err != nil {
		return nil, newParseError(path, err)
	}

	schema, err := profileSchema()
	if err != nil {
		return nil, err
	}

	if err := schema.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return nil, &ValidationError{Path: path, Problems: problems(ve)}
		}
		return nil, err
	}
	return normalized, nil
}

// problems flattens a validation error tree into its leaves.
func problems(ve *jsonschema.ValidationError) []Problem {
	var out []Problem
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, Problem{Location: e.InstanceLocation, Message: e.Message})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Location < out[j].Location
	})
	return out
}
