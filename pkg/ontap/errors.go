package ontap

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidSize indicates a human-readable size string that does not match
// the <number>[B|KB|MB|GB|TB|PB] grammar.
var ErrInvalidSize = errors.New("invalid size")

// fallbackMessage is returned when no rule of the normalization chain matches.
const fallbackMessage = "An unknown error occurred while communicating with ONTAP"

// statusMessages maps HTTP status codes to fixed human-readable messages.
// Unlisted codes fall through to the vendor-code lookup.
var statusMessages = map[int]string{
	400: "Bad request - check the provided parameters",
	401: "Authentication failed - check username and password",
	403: "Access denied - the user lacks the required permissions",
	404: "Resource not found",
	409: "Conflict - the resource already exists or is in use",
	500: "ONTAP reported an internal server error",
	503: "ONTAP service unavailable - the cluster may be busy or rebooting",
}

// vendorMessages maps ONTAP numeric error codes to human-readable messages.
var vendorMessages = map[string]string{
	"917927":   "Volume not found",
	"918606":   "Aggregate not found",
	"2621462":  "SVM not found",
	"5374852":  "LUN not found",
	"1703954":  "Export policy not found",
	"1376258":  "Network interface not found",
	"1638407":  "Snapshot policy not found",
	"13434892": "Permission denied for the authenticated user",
}

// APIError is the single error type this layer raises. Message always comes
// out of the normalization chain, never a raw transport error.
type APIError struct {
	Message    string
	StatusCode int
	Code       string
}

func (e *APIError) Error() string {
	return e.Message
}

// fault bundles the observable parts of a failed call before normalization:
// the HTTP status (0 when the request never completed), the decoded error
// body (nil when absent or undecodable) and the transport error (nil when the
// server answered).
type fault struct {
	statusCode int
	body       map[string]any
	err        error
}

// newAPIError normalizes a fault into an APIError.
func newAPIError(f fault) *APIError {
	return &APIError{
		Message:    normalizeFault(f),
		StatusCode: f.statusCode,
		Code:       vendorCode(f.body),
	}
}

// normalizeFault maps any error shape onto a single human-readable message.
// First match wins: structured vendor error, vendor error list, HTTP status
// table, vendor code table, plain message, fixed fallback.
func normalizeFault(f fault) string {
	if apiErr, ok := f.body["error"].(map[string]any); ok {
		if message, ok := apiErr["message"].(string); ok && message != "" {
			if code := vendorCode(f.body); code != "" {
				return fmt.Sprintf("%s (Error code: %s)", message, code)
			}

			return message
		}
	}

	if list, ok := f.body["error"].([]any); ok && len(list) > 0 {
		joined := ""

		for i, entry := range list {
			message := "Unknown error"
			if m, ok := entry.(map[string]any); ok {
				if s, ok := m["message"].(string); ok && s != "" {
					message = s
				}
			}

			if i > 0 {
				joined += "; "
			}

			joined += message
		}

		return joined
	}

	if message, ok := statusMessages[f.statusCode]; ok {
		return message
	}

	if message, ok := vendorMessages[vendorCode(f.body)]; ok {
		return message
	}

	if message, ok := f.body["message"].(string); ok && message != "" {
		return message
	}

	if f.err != nil && f.err.Error() != "" {
		return f.err.Error()
	}

	return fallbackMessage
}

// vendorCode extracts the numeric ONTAP error code from a decoded error body.
// ONTAP reports it either nested under "error" or at the top level, as a
// string or a number.
func vendorCode(body map[string]any) string {
	if apiErr, ok := body["error"].(map[string]any); ok {
		if code := codeString(apiErr["code"]); code != "" {
			return code
		}
	}

	return codeString(body["code"])
}

func codeString(v any) string {
	switch code := v.(type) {
	case string:
		return code
	case float64:
		return strconv.FormatInt(int64(code), 10)
	default:
		return ""
	}
}
