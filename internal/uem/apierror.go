package uem

import (
	"fmt"
	"math"
	"strconv"
)

const unknownAPIErrorMessage = "Unknown API error occurred"

// APIError is an error reported by the UEM API in a JSON body carrying an `errorCode`.
type APIError struct {
	Code    int
	Message string
	RawBody map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Error #%d: %s", e.Code, e.Message)
}

// NewAPIError builds an APIError from a decoded error body.
// A body without a usable integer errorCode yields code 0 and a generic message.
func NewAPIError(body map[string]any) *APIError {
	code, ok := errorCodeOf(body["errorCode"])
	if !ok {
		return &APIError{Code: 0, Message: unknownAPIErrorMessage, RawBody: body}
	}
	return &APIError{Code: code, Message: stringify(body["message"]), RawBody: body}
}

// errorCodeOf converts a decoded errorCode to an int. Numeric strings are accepted.
func errorCodeOf(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		return int(t), true
	case int:
		return t, true
	case int64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// truthy mirrors how the API's error bodies are meant to be read: null, false, 0, "" and empty
// collections all mean "no error".
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
