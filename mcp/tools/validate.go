package tools

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateArguments checks call arguments against a tool's declared input
// schema and returns nil when the schema accepts them. Dispatch only consults
// this in strict mode; the default path lets handlers apply their own
// fallbacks.
func ValidateArguments(def Definition, args map[string]any) error {
	if def.InputSchema == nil {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}

	schemaLoader := gojsonschema.NewGoLoader(def.InputSchema)
	documentLoader := gojsonschema.NewGoLoader(args)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("invalid arguments for %s: %s", def.Name, strings.Join(errs, ", "))
}
