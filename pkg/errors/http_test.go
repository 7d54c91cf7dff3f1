package custom_error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", NewValidationError("reason", "required"), http.StatusBadRequest},
		{"backend", NewBackendError("nope"), http.StatusUnprocessableEntity},
		{"request", NewRequestError("timeout", nil), http.StatusBadGateway},
		{"wrapped request", fmt.Errorf("sales/approve_return: %w", NewRequestError("timeout", nil)), http.StatusBadGateway},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.expected {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestResponseBody(t *testing.T) {
	body := ResponseBody(fmt.Errorf("inventory/restore_item: %w", NewBackendError("Item is locked")))

	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["error"] != CodeBackendRejected {
		t.Errorf("error = %v, want %s", body["error"], CodeBackendRejected)
	}
	if body["message"] != "Item is locked" {
		t.Errorf("message = %v, want backend message", body["message"])
	}
	if CodeOf(errors.New("boom")) != "INTERNAL_ERROR" {
		t.Errorf("CodeOf(plain) should be INTERNAL_ERROR")
	}
}
