package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	custom_error "warehouse-dashboard/pkg/errors"

	"github.com/tidwall/gjson"
)

// Envelope is the normalized form of every backend answer. The backend replies
// either with {"success": bool, "data": ..., "message": ...} or with a bare
// payload; both shapes end up here so callers never branch on shape.
type Envelope struct {
	Wrapped bool            `json:"-"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

const (
	outcomeSuccess      = "success"
	outcomeRejected     = "rejected"
	outcomeRequestError = "request_error"
)

func requestFailure(message string) *Envelope {
	return &Envelope{
		Success: false,
		Message: message,
		Error:   custom_error.CodeRequestError,
	}
}

// ParseEnvelope decides which of the two response shapes body has. Only a JSON
// object carrying a "success" key counts as wrapped.
func ParseEnvelope(body []byte) *Envelope {
	if len(bytes.TrimSpace(body)) == 0 {
		return &Envelope{Success: true}
	}

	if !gjson.ValidBytes(body) {
		return requestFailure("Backend returned a malformed response")
	}

	root := gjson.ParseBytes(body)
	success := root.Get("success")
	if !root.IsObject() || !success.Exists() {
		return &Envelope{Success: true, Data: json.RawMessage(root.Raw)}
	}

	env := &Envelope{
		Wrapped: true,
		Success: success.Bool(),
		Message: root.Get("message").String(),
		Error:   root.Get("error").String(),
	}
	if data := root.Get("data"); data.Exists() {
		env.Data = json.RawMessage(data.Raw)
	}

	return env
}

// Result turns the envelope into a Go error and, on success, decodes the payload
// into out. out may be nil when the caller only cares about the outcome.
func (e *Envelope) Result(out any) error {
	if !e.Success {
		if e.Error == custom_error.CodeRequestError {
			return custom_error.NewRequestError(e.Message, nil)
		}
		return custom_error.NewBackendError(e.Message)
	}

	if out == nil || len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(e.Data, out); err != nil {
		return custom_error.NewRequestError("Unable to decode backend response", fmt.Errorf("decode data: %w", err))
	}

	return nil
}

func (e *Envelope) outcome() string {
	switch {
	case e.Success:
		return outcomeSuccess
	case e.Error == custom_error.CodeRequestError:
		return outcomeRequestError
	default:
		return outcomeRejected
	}
}
