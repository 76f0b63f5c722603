// mcp/tools/args.go
package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// requiredStringArg extracts a mandatory string argument. The error text is
// surfaced to callers inside the tool's failure message.
func requiredStringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("'%s' argument is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("'%s' argument must be a string", key)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("'%s' argument cannot be empty", key)
	}
	return s, nil
}

// stringArg extracts an optional string argument. The fallback applies only
// when the key is absent; a present non-string value is stringified so the
// caller sees it verbatim.
func stringArg(args map[string]any, key, fallback string) string {
	if args == nil {
		return fallback
	}
	v, ok := args[key]
	if !ok {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// intArg extracts an optional integer argument, tolerating the numeric types
// JSON decoding and callers produce. Unparseable values fall back.
func intArg(args map[string]any, key string, fallback int) int {
	if args == nil {
		return fallback
	}
	v, ok := args[key]
	if !ok {
		return fallback
	}
	switch val := v.(type) {
	case int:
		return val
	case int32:
		return int(val)
	case int64:
		return int(val)
	case float64:
		return int(val)
	case float32:
		return int(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
