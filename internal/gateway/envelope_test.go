package gateway

import (
	"testing"

	custom_error "warehouse-dashboard/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wrapped bool
		success bool
		data    string
		errCode string
	}{
		{"wrapped with data", `{"success":true,"data":{"id":1}}`, true, true, `{"id":1}`, ""},
		{"wrapped without data", `{"success":true,"message":"ok"}`, true, true, "", ""},
		{"wrapped failure", `{"success":false,"message":"nope"}`, true, false, "", ""},
		{"bare object without flag", `{"id":7,"name":"Shelf"}`, false, true, `{"id":7,"name":"Shelf"}`, ""},
		{"bare array", `[{"id":1}]`, false, true, `[{"id":1}]`, ""},
		{"bare array of objects with success keys", `[{"success":false}]`, false, true, `[{"success":false}]`, ""},
		{"empty body", "  ", false, true, "", ""},
		{"malformed", `{"success":`, false, false, "", custom_error.CodeRequestError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := ParseEnvelope([]byte(tt.body))
			assert.Equal(t, tt.wrapped, env.Wrapped)
			assert.Equal(t, tt.success, env.Success)
			assert.Equal(t, tt.data, string(env.Data))
			assert.Equal(t, tt.errCode, env.Error)
		})
	}
}

func TestEnvelopeResult(t *testing.T) {
	rejected := &Envelope{Wrapped: true, Success: false, Message: "Return already approved"}
	err := rejected.Result(nil)
	assert.True(t, custom_error.IsBackendRejection(err))
	assert.Equal(t, "Return already approved", custom_error.UserMessage(err))

	failed := requestFailure("Unable to reach backend")
	assert.True(t, custom_error.IsRequestError(failed.Result(nil)))

	var out []string
	bad := &Envelope{Success: true, Data: []byte(`{"not":"a list"}`)}
	assert.True(t, custom_error.IsRequestError(bad.Result(&out)))

	null := &Envelope{Success: true, Data: []byte(`null`)}
	assert.NoError(t, null.Result(&out))
	assert.Nil(t, out)
}
