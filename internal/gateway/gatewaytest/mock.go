// Package gatewaytest provides a testify mock of gateway.Caller.
package gatewaytest

import (
	"context"
	"encoding/json"

	"warehouse-dashboard/internal/gateway"
	custom_error "warehouse-dashboard/pkg/errors"

	"github.com/stretchr/testify/mock"
)

// MockCaller records calls by (endpoint, action, params). Do goes through Call,
// so expectations only ever return envelopes.
type MockCaller struct {
	mock.Mock
}

func (m *MockCaller) Call(ctx context.Context, endpoint, action string, params map[string]any) *gateway.Envelope {
	args := m.Called(endpoint, action, params)
	return args.Get(0).(*gateway.Envelope)
}

func (m *MockCaller) Do(ctx context.Context, endpoint, action string, params map[string]any, out any) error {
	return m.Call(ctx, endpoint, action, params).Result(out)
}

// Success wraps data in a successful envelope.
func Success(data any) *gateway.Envelope {
	if data == nil {
		return &gateway.Envelope{Success: true}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return &gateway.Envelope{Wrapped: true, Success: true, Data: raw}
}

// Rejected is a well-formed failure answer from the backend.
func Rejected(message string) *gateway.Envelope {
	return &gateway.Envelope{Wrapped: true, Success: false, Message: message}
}

// Unreachable is the envelope a transport failure produces.
func Unreachable(message string) *gateway.Envelope {
	return &gateway.Envelope{Success: false, Message: message, Error: custom_error.CodeRequestError}
}
