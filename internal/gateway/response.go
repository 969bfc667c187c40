package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pagination"
)

// Page is the canonical shape of a list response.
type Page[T any] struct {
	Items      []T
	Pagination pagination.Info
}

// envelope covers every object-shaped body the API produces.
type envelope struct {
	Success *bool           `json:"success"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Items   json.RawMessage `json:"items"`
	pagination.Envelope
}

func firstByte(b []byte) byte {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// failureMessage returns the embedded failure message of a 2xx body, if any.
func (e *envelope) failureMessage() (string, bool) {
	errMsg, hasErr := errorText(e.Error)
	if e.Success != nil && !*e.Success {
		if errMsg == "" {
			errMsg = e.Message
		}
		return errMsg, true
	}
	if hasErr {
		if errMsg == "" {
			errMsg = e.Message
		}
		return errMsg, true
	}
	return "", false
}

// errorText reads the "error" field, which is either a string, an object with
// a message, or a boolean flag. The bool result reports a failure indicator.
func errorText(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	switch firstByte(raw) {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, strings.TrimSpace(s) != ""
		}
	case '{':
		var obj struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil {
			if obj.Message != "" {
				return obj.Message, true
			}
			return obj.Error, true
		}
	case 't':
		return "", true
	case 'f':
		return "", false
	}
	return "", true
}

// checkStatus turns non-2xx responses into errors.
func checkStatus(resp *response) error {
	if resp.status >= 200 && resp.status < 300 {
		return nil
	}

	msg := ""
	if firstByte(resp.body) == '{' {
		var env envelope
		if err := json.Unmarshal(resp.body, &env); err == nil {
			msg, _ = errorText(env.Error)
			if msg == "" {
				msg = env.Message
			}
		}
	}

	if resp.status == http.StatusUnauthorized {
		gwErr := unauthenticatedError(resp.status, nil)
		if msg != "" {
			gwErr.Msg = msg
		}
		return gwErr
	}
	return applicationError(resp.status, msg)
}

// decodeList normalizes a list body: an envelope with data/items, or a flat array.
func decodeList[T any](resp *response, requestedPage, perPage int) (Page[T], error) {
	if err := checkStatus(resp); err != nil {
		return Page[T]{}, err
	}

	var items []T
	var env envelope

	switch firstByte(resp.body) {
	case 0:
		// Empty body: nothing listed.
	case '[':
		if err := json.Unmarshal(resp.body, &items); err != nil {
			return Page[T]{}, applicationError(resp.status, "malformed list response")
		}
	case '{':
		if err := json.Unmarshal(resp.body, &env); err != nil {
			return Page[T]{}, applicationError(resp.status, "malformed list response")
		}
		if msg, failed := env.failureMessage(); failed {
			return Page[T]{}, applicationError(resp.status, msg)
		}
		raw := env.Data
		if isNull(raw) {
			raw = env.Items
		}
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &items); err != nil {
				return Page[T]{}, applicationError(resp.status, "malformed list response")
			}
		}
	default:
		return Page[T]{}, applicationError(resp.status, "unexpected list response")
	}

	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Pagination: pagination.Resolve(env.Envelope, len(items), requestedPage, perPage),
	}, nil
}

// decodeOne normalizes a single-record body: {data: T} or T itself.
func decodeOne[T any](resp *response) (T, error) {
	var zero T
	if err := checkStatus(resp); err != nil {
		return zero, err
	}
	if firstByte(resp.body) != '{' {
		return zero, applicationError(resp.status, "unexpected response")
	}

	var env envelope
	if err := json.Unmarshal(resp.body, &env); err != nil {
		return zero, applicationError(resp.status, "malformed response")
	}
	if msg, failed := env.failureMessage(); failed {
		return zero, applicationError(resp.status, msg)
	}

	raw := json.RawMessage(resp.body)
	if firstByte(env.Data) == '{' {
		raw = env.Data
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, applicationError(resp.status, "malformed response")
	}
	return out, nil
}

// decodeAck accepts an empty body or {success:true}.
func decodeAck(resp *response) error {
	if err := checkStatus(resp); err != nil {
		return err
	}
	if firstByte(resp.body) != '{' {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(resp.body, &env); err != nil {
		return nil
	}
	if msg, failed := env.failureMessage(); failed {
		return applicationError(resp.status, msg)
	}
	return nil
}
