package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	custom_error "warehouse-dashboard/pkg/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *prometheus.Registry) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	reg := prometheus.NewRegistry()
	client := NewClient(Options{
		Endpoints:  map[string]string{EndpointInventory: server.URL + "/inventory"},
		Token:      "service-token",
		Registerer: reg,
	})
	return client, reg
}

func TestCallSendsActionAndParams(t *testing.T) {
	var received map[string]any
	var headers http.Header

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/inventory", r.URL.Path)
		_, _ = w.Write([]byte(`{"success": true, "data": []}`))
	})

	env := client.Call(context.Background(), EndpointInventory, "get_archived_items", map[string]any{
		"limit": 10,
	})

	require.True(t, env.Success)
	assert.Equal(t, "get_archived_items", received["action"])
	assert.Equal(t, float64(10), received["limit"])
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "Bearer service-token", headers.Get("Authorization"))
	assert.NotEmpty(t, headers.Get("X-Request-ID"))
}

func TestCallRejectsReservedActionParam(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{"success": true}`))
	})

	env := client.Call(context.Background(), EndpointInventory, "get_archived_items", map[string]any{
		"action": "restore_item",
	})

	assert.False(t, env.Success)
	assert.Equal(t, custom_error.CodeRequestError, env.Error)
	assert.Zero(t, requests)
}

func TestCallNormalizesWrappedAndBareResponses(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wrapped  bool
		success  bool
		expected []int
	}{
		{"wrapped success", `{"success": true, "data": [1, 2]}`, true, true, []int{1, 2}},
		{"bare array", `[3, 4, 5]`, false, true, []int{3, 4, 5}},
		{"wrapped failure", `{"success": false, "message": "Not allowed"}`, true, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			env := client.Call(context.Background(), EndpointInventory, "list", nil)
			assert.Equal(t, tt.wrapped, env.Wrapped)
			assert.Equal(t, tt.success, env.Success)

			var out []int
			err := env.Result(&out)
			if tt.success {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, out)
			} else {
				assert.True(t, custom_error.IsBackendRejection(err))
				assert.Equal(t, "Not allowed", custom_error.UserMessage(err))
			}
		})
	}
}

func TestCallReportsNon2xxAsRequestError(t *testing.T) {
	client, reg := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success": false, "message": "database down"}`))
	})

	env := client.Call(context.Background(), EndpointInventory, "get_archived_items", nil)

	assert.False(t, env.Success)
	assert.Equal(t, custom_error.CodeRequestError, env.Error)
	assert.Contains(t, env.Message, "500")
	assert.Contains(t, env.Message, "database down")

	count, err := testutil.GatherAndCount(reg, "dashboard_gateway_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCallReportsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Options{Endpoints: map[string]string{EndpointSales: url}})
	env := client.Call(context.Background(), EndpointSales, "get_pending_returns", nil)

	assert.False(t, env.Success)
	assert.Equal(t, custom_error.CodeRequestError, env.Error)

	err := client.Do(context.Background(), EndpointSales, "get_pending_returns", nil, nil)
	assert.True(t, custom_error.IsRequestError(err))
}

func TestCallUnknownEndpoint(t *testing.T) {
	client := NewClient(Options{})
	env := client.Call(context.Background(), "reports", "anything", nil)

	assert.False(t, env.Success)
	assert.Equal(t, custom_error.CodeRequestError, env.Error)
}

func TestDoDecodesData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": {"name": "Aspirin"}}`))
	})

	var out struct {
		Name string `json:"name"`
	}
	err := client.Do(context.Background(), EndpointInventory, "get_item", nil, &out)

	require.NoError(t, err)
	assert.Equal(t, "Aspirin", out.Name)
}

func TestCallWithRateLimitHonoursCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Options{
		Endpoints:    map[string]string{EndpointInventory: server.URL},
		RateLimitRPS: 0.001,
	})

	// the first call consumes the only token
	require.True(t, client.Call(context.Background(), EndpointInventory, "a", nil).Success)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	env := client.Call(ctx, EndpointInventory, "b", nil)
	assert.False(t, env.Success)
	assert.Equal(t, custom_error.CodeRequestError, env.Error)
}
