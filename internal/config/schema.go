package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "taskboard-config.schema.json"

var configSchema = jsonschema.MustCompileString(schemaURL, schemaJSON)

// checkSchema validates the shape of a raw YAML config document: known
// keys only, each with the right type. Value rules live in Validate.
func checkSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: parsing config: %w", ErrInvalid, err)
	}
	if doc == nil {
		return nil
	}

	// Round-trip through JSON so the validator sees JSON value types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj any
	if err := dec.Decode(&obj); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := configSchema.Validate(obj); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, schemaMessage(err))
	}
	return nil
}

// schemaMessage reduces a validation error to its first leaf cause,
// formatted as "key.path: message".
func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	path := strings.ReplaceAll(strings.TrimPrefix(ve.InstanceLocation, "/"), "/", ".")
	if path == "" {
		return ve.Message
	}
	return path + ": " + ve.Message
}
