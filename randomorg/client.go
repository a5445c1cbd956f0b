package randomorg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultEndpoint is the production invoke URL.
	DefaultEndpoint = "https://api.random.org/json-rpc/4/invoke"

	// BasicKey is the placeholder API key sent with basic (unsigned)
	// methods when no real key is configured.
	BasicKey = "00000000-0000-0000-0000-000000000000"

	// DefaultPreflightBits is the quota floor the pre-flight check
	// requires before a generator call is sent.
	DefaultPreflightBits = 500
)

const defaultTimeout = 30 * time.Second

// Options configure a Client. The zero value talks to the production
// endpoint without an API key.
type Options struct {
	// Endpoint overrides DefaultEndpoint.
	Endpoint string
	// APIKey authenticates signed methods and GetResult. Basic methods
	// fall back to BasicKey when it is empty.
	APIKey string
	// HTTPClient overrides the default HTTP client. Timeout and
	// cancellation policy beyond the per-call context belong to the
	// caller.
	HTTPClient *http.Client
	// SkipPreflight disables the getUsage quota check that otherwise
	// runs before each generator call.
	SkipPreflight bool
	// PreflightBits overrides DefaultPreflightBits.
	PreflightBits int64
}

// Client is an immutable handle on the remote service. It holds no state
// across calls and is safe for concurrent use.
type Client struct {
	endpoint      string
	apiKey        string
	httpClient    *http.Client
	skipPreflight bool
	preflightBits int64
}

func NewClient(opts Options) *Client {
	client := &Client{
		endpoint:      opts.Endpoint,
		apiKey:        opts.APIKey,
		httpClient:    opts.HTTPClient,
		skipPreflight: opts.SkipPreflight,
		preflightBits: opts.PreflightBits,
	}
	if client.endpoint == "" {
		client.endpoint = DefaultEndpoint
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if client.preflightBits == 0 {
		client.preflightBits = DefaultPreflightBits
	}
	return client
}

// basicKey is the key sent with unsigned methods.
func (c *Client) basicKey() string {
	if c.apiKey != "" {
		return c.apiKey
	}
	return BasicKey
}

// signedKey is the key sent with signed methods, which have no placeholder.
func (c *Client) signedKey() (string, error) {
	if c.apiKey == "" {
		return "", ErrAPIKeyRequired
	}
	return c.apiKey, nil
}

// invoke performs one JSON-RPC round trip and decodes the result member
// into result. A service-reported error comes back as *Error; transport
// failures come back as whatever the HTTP client reported.
func (c *Client) invoke(ctx context.Context, method string, params any, result any) error {
	body, err := json.Marshal(request{
		JSONRPC: jsonrpcVersion,
		ID:      requestID,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("randomorg: unexpected status %s", resp.Status)
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if envelope.Error != nil {
		return envelope.Error
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}

// preflight refuses a generator call when the remaining quota is below the
// configured floor.
func (c *Client) preflight(ctx context.Context) error {
	if c.skipPreflight {
		return nil
	}
	usage, err := c.GetUsage(ctx)
	if err != nil {
		return fmt.Errorf("quota pre-flight failed: %w", err)
	}
	if usage.BitsLeft < c.preflightBits {
		return &QuotaError{BitsLeft: usage.BitsLeft, Required: c.preflightBits}
	}
	return nil
}
