package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Logical backend endpoints. Each maps to one URL that accepts action requests.
const (
	EndpointInventory = "inventory"
	EndpointSales     = "sales"
	EndpointSettings  = "settings"
)

const maxResponseSize = 10 << 20

// Caller is what the view services depend on.
type Caller interface {
	Call(ctx context.Context, endpoint, action string, params map[string]any) *Envelope
	Do(ctx context.Context, endpoint, action string, params map[string]any, out any) error
}

type Options struct {
	Endpoints    map[string]string
	Token        string
	Timeout      time.Duration
	RateLimitRPS float64
	HTTPClient   *http.Client
	Registerer   prometheus.Registerer
	Logger       *zap.Logger
}

type Client struct {
	httpClient *http.Client
	endpoints  map[string]string
	token      string
	limiter    *rate.Limiter
	metrics    *Metrics
	logger     *zap.Logger
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		burst := int(opts.RateLimitRPS)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}

	endpoints := make(map[string]string, len(opts.Endpoints))
	for name, url := range opts.Endpoints {
		endpoints[name] = url
	}

	return &Client{
		httpClient: httpClient,
		endpoints:  endpoints,
		token:      opts.Token,
		limiter:    limiter,
		metrics:    NewMetrics(opts.Registerer),
		logger:     logger.Named("gateway"),
	}
}

// Call sends {"action": action, ...params} to the endpoint and never returns an
// error: transport problems come back as a failure envelope with REQUEST_ERROR.
// params must not carry an "action" key; such a call fails without a request.
func (c *Client) Call(ctx context.Context, endpoint, action string, params map[string]any) *Envelope {
	requestID := uuid.NewString()
	start := time.Now()

	env := c.call(ctx, endpoint, action, params, requestID)
	c.metrics.observe(endpoint, action, env.outcome(), time.Since(start))

	if !env.Success {
		c.logger.Warn("Backend call failed",
			zap.String("endpoint", endpoint),
			zap.String("action", action),
			zap.String("request_id", requestID),
			zap.String("error", env.Error),
			zap.String("message", env.Message),
		)
	} else {
		c.logger.Debug("Backend call succeeded",
			zap.String("endpoint", endpoint),
			zap.String("action", action),
			zap.String("request_id", requestID),
			zap.Bool("wrapped", env.Wrapped),
		)
	}

	return env
}

// Do is Call followed by Envelope.Result.
func (c *Client) Do(ctx context.Context, endpoint, action string, params map[string]any, out any) error {
	if err := c.Call(ctx, endpoint, action, params).Result(out); err != nil {
		return fmt.Errorf("%s/%s: %w", endpoint, action, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, endpoint, action string, params map[string]any, requestID string) *Envelope {
	url, ok := c.endpoints[endpoint]
	if !ok {
		return requestFailure(fmt.Sprintf("Unknown backend endpoint %q", endpoint))
	}

	if _, clash := params["action"]; clash {
		return requestFailure(fmt.Sprintf("Parameter %q is reserved", "action"))
	}

	payload := make(map[string]any, len(params)+1)
	for key, value := range params {
		payload[key] = value
	}
	payload["action"] = action

	body, err := json.Marshal(payload)
	if err != nil {
		return requestFailure(fmt.Sprintf("Unable to encode request: %v", err))
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return requestFailure(fmt.Sprintf("Request cancelled: %v", err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return requestFailure(fmt.Sprintf("Unable to build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return requestFailure(fmt.Sprintf("Unable to reach backend: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return requestFailure(fmt.Sprintf("Unable to read backend response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fmt.Sprintf("Backend returned %s", resp.Status)
		if parsed := ParseEnvelope(raw); parsed.Wrapped && parsed.Message != "" {
			message = fmt.Sprintf("%s: %s", message, parsed.Message)
		}
		return requestFailure(message)
	}

	return ParseEnvelope(raw)
}
