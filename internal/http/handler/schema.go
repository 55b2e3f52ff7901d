package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var errInvalidBody = errors.New("invalid request body")

const translateSchema = `{
  "type": "object",
  "properties": {
    "text": {"type": "string"},
    "language": {"type": "string"},
    "current_language": {"type": "string"}
  }
}`

const explainSchema = `{
  "type": "object",
  "properties": {
    "text": {"type": "string"}
  }
}`

const exportSchema = `{
  "type": "object",
  "properties": {
    "text": {"type": "string"},
    "filename": {"type": "string"},
    "is_translated": {"type": "boolean"}
  }
}`

const objectSchema = `{
  "type": "object",
  "required": ["key"],
  "properties": {
    "key": {"type": "string", "minLength": 1}
  }
}`

var (
	translateBody = mustCompile("translate.json", translateSchema)
	explainBody   = mustCompile("explain.json", explainSchema)
	exportBody    = mustCompile("export.json", exportSchema)
	objectBody    = mustCompile("object.json", objectSchema)
)

func mustCompile(name, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	return compiler.MustCompile(name)
}

// bindJSON validates the request body against schema before decoding it into dst.
func bindJSON(c *fiber.Ctx, schema *jsonschema.Schema, dst any) error {
	body := c.Body()
	if len(body) == 0 {
		return fmt.Errorf("%w: empty body", errInvalidBody)
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("%w: malformed json", errInvalidBody)
	}
	if err := schema.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			for len(ve.Causes) > 0 {
				ve = ve.Causes[0]
			}
			return fmt.Errorf("%w: %s %s", errInvalidBody, ve.InstanceLocation, ve.Message)
		}
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}
