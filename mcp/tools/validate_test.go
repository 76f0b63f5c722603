// mcp/tools/validate_test.go
package tools

import (
	"strings"
	"testing"
)

func TestValidateArgumentsWeather(t *testing.T) {
	t.Parallel()

	def := CurrentWeatherDefinition()

	if err := ValidateArguments(def, map[string]any{"city": "Lisbon"}); err != nil {
		t.Fatalf("valid arguments rejected: %v", err)
	}

	err := ValidateArguments(def, map[string]any{})
	if err == nil || !strings.Contains(err.Error(), "city is required") {
		t.Fatalf("expected missing-city error, got: %v", err)
	}

	err = ValidateArguments(def, nil)
	if err == nil {
		t.Fatalf("nil arguments should fail a required schema")
	}

	err = ValidateArguments(def, map[string]any{"city": 42})
	if err == nil || !strings.Contains(err.Error(), "Invalid type") {
		t.Fatalf("expected type error, got: %v", err)
	}
}

func TestValidateArgumentsPosts(t *testing.T) {
	t.Parallel()

	def := PlaceholderPostsDefinition()

	if err := ValidateArguments(def, map[string]any{"limit": 5}); err != nil {
		t.Fatalf("valid limit rejected: %v", err)
	}
	if err := ValidateArguments(def, map[string]any{}); err != nil {
		t.Fatalf("optional limit should not be required: %v", err)
	}

	err := ValidateArguments(def, map[string]any{"limit": 0})
	if err == nil || !strings.Contains(err.Error(), "get_placeholder_posts") {
		t.Fatalf("expected minimum violation naming the tool, got: %v", err)
	}
	if err := ValidateArguments(def, map[string]any{"limit": 101}); err == nil {
		t.Fatalf("expected maximum violation")
	}
}

func TestValidateArgumentsNoSchema(t *testing.T) {
	t.Parallel()

	if err := ValidateArguments(Definition{Name: "bare"}, map[string]any{"x": 1}); err != nil {
		t.Fatalf("nil schema should accept anything: %v", err)
	}
}
