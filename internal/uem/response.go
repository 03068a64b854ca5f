package uem

import (
	"io"
	"net/http"
	"strings"
	"ws1uem/internal/types"

	"github.com/goccy/go-json"
)

// Result is a normalized API response. JSON responses carry the decoded document in JSON;
// for any other content type only StatusCode is meaningful.
type Result struct {
	StatusCode int
	JSON       any

	raw []byte
}

// IsJSON reports whether the response body was a JSON document.
func (r *Result) IsJSON() bool {
	return r != nil && r.raw != nil
}

// Decode unmarshals the JSON body into v.
func (r *Result) Decode(v any) error {
	if !r.IsJSON() {
		return types.Err(types.ErrInvalidResponse, nil, "response with status %d has no json body", r.StatusCode)
	}
	return json.Unmarshal(r.raw, v)
}

// Raw returns the undecoded JSON body, nil for non-JSON responses.
func (r *Result) Raw() []byte {
	if r == nil {
		return nil
	}
	return r.raw
}

var jsonContentTypes = []string{
	"application/json",
	"application/json; charset=utf-8",
}

func isJSONContentType(ct string) bool {
	ct = strings.TrimSpace(ct)
	for _, t := range jsonContentTypes {
		if strings.EqualFold(ct, t) {
			return true
		}
	}
	return false
}

// Normalize interprets a raw HTTP response.
// A JSON body with a truthy errorCode becomes an *APIError; any other JSON body is returned decoded.
// Non-JSON responses, and JSON responses with an empty body, return their status code without error,
// whatever the status is.
func Normalize(resp *http.Response) (*Result, error) {
	if !isJSONContentType(resp.Header.Get("Content-Type")) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &Result{StatusCode: resp.StatusCode}, nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.Err(types.ErrTransport, err, "read response body")
	}
	if len(raw) == 0 {
		return &Result{StatusCode: resp.StatusCode}, nil
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, types.Err(types.ErrInvalidResponse, err, "decode json body (status %d)", resp.StatusCode)
	}
	if body, ok := doc.(map[string]any); ok && truthy(body["errorCode"]) {
		return nil, NewAPIError(body)
	}
	return &Result{StatusCode: resp.StatusCode, JSON: doc, raw: raw}, nil
}
