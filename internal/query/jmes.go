// Package query selects values out of decoded API responses with JMESPath expressions.
package query

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/jmespath/go-jmespath"
)

// Compile checks an expression once so callers can reject it before any API call.
func Compile(expression string) (*jmespath.JMESPath, error) {
	p, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("jmespath: %w", err)
	}
	return p, nil
}

// EvalAny returns the raw value selected by the JMESPath expression.
// It is safe to pass any decoded JSON (map[string]any, []any, etc.)
// It will return nil and no error if the expression does not match anything.
func EvalAny(expression string, payload any) (any, error) {
	v, err := jmespath.Search(expression, payload)
	if err != nil {
		return nil, fmt.Errorf("jmespath: %w", err)
	}
	return v, nil
}

// EvalString coerces the selection to string; non-strings are JSON-encoded.
func EvalString(expression string, payload any) (*string, error) {
	v, err := EvalAny(expression, payload)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		return &t, nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("jmespath: encode selection: %w", err)
		}
		bs := string(b)
		return &bs, nil
	}
}

// EvalInt returns the selection as an int. JSON numbers decode as float64 and numeric strings are accepted;
// anything else is an error.
func EvalInt(expression string, payload any) (*int, error) {
	v, err := EvalAny(expression, payload)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	var n int
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return nil, fmt.Errorf("jmespath: %q selects non-integer %v", expression, t)
		}
		n = int(t)
	case int:
		n = t
	case string:
		n, err = strconv.Atoi(t)
		if err != nil {
			return nil, fmt.Errorf("jmespath: %q selects non-numeric %q", expression, t)
		}
	default:
		return nil, fmt.Errorf("jmespath: %q selects %T, not a number", expression, v)
	}
	return &n, nil
}
