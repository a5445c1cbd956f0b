package cmd_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/USA-RedDragon/trng-client/cmd"
)

// newStubService serves canned JSON-RPC results keyed by method name.
func newStubService(t *testing.T, results map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     int    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		result, ok := results[req.Method]
		if !ok {
			t.Errorf("unexpected method: %s", req.Method)
		}
		resp := map[string]any{
			"jsonrpc": "2.0",
			"result":  result,
			"id":      req.ID,
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestUsageCommand(t *testing.T) {
	t.Parallel()
	server := newStubService(t, map[string]any{
		"getUsage": map[string]any{
			"status":        "running",
			"creationTime":  "2024-01-01 00:00:00Z",
			"bitsLeft":      250000,
			"requestsLeft":  1000,
			"totalBits":     1000000,
			"totalRequests": 5000,
		},
	})
	baseCmd := cmd.NewCommand("testing", "deadbeef")
	baseCmd.SetArgs([]string{"usage", "--api.endpoint", server.URL, "--api.key", "test-key"})
	if err := baseCmd.Execute(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIntegersCommand(t *testing.T) {
	t.Parallel()
	server := newStubService(t, map[string]any{
		"getUsage": map[string]any{
			"status":   "running",
			"bitsLeft": 250000,
		},
		"generateIntegers": map[string]any{
			"random": map[string]any{
				"data":           []int{4, 8, 15},
				"completionTime": "2024-01-01 00:00:00Z",
			},
			"bitsUsed":      21,
			"bitsLeft":      249979,
			"requestsLeft":  999,
			"advisoryDelay": 0,
		},
	})
	baseCmd := cmd.NewCommand("testing", "deadbeef")
	baseCmd.SetArgs([]string{"integers", "--api.endpoint", server.URL, "--n", "3", "--min", "1", "--max", "20"})
	if err := baseCmd.Execute(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIntegersCommandSkipsPreflight(t *testing.T) {
	t.Parallel()
	server := newStubService(t, map[string]any{
		"generateIntegers": map[string]any{
			"random": map[string]any{
				"data":           []int{7},
				"completionTime": "2024-01-01 00:00:00Z",
			},
			"bitsUsed":     5,
			"bitsLeft":     249995,
			"requestsLeft": 999,
		},
	})
	baseCmd := cmd.NewCommand("testing", "deadbeef")
	baseCmd.SetArgs([]string{"integers", "--api.endpoint", server.URL, "--api.preflight.disabled=true"})
	if err := baseCmd.Execute(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidationFailsBeforeNetwork(t *testing.T) {
	t.Parallel()
	baseCmd := cmd.NewCommand("testing", "deadbeef")
	// Endpoint is unreachable; validation must reject the call first.
	baseCmd.SetArgs([]string{"integers", "--api.endpoint", "http://255.255.255.255/invoke", "--api.preflight.disabled=true", "--n", "0"})
	if err := baseCmd.Execute(); err == nil {
		t.Error("expected error")
	}
}

func TestSignedRequiresKey(t *testing.T) {
	t.Parallel()
	baseCmd := cmd.NewCommand("testing", "deadbeef")
	baseCmd.SetArgs([]string{"uuids", "--api.endpoint", "http://255.255.255.255/invoke", "--api.preflight.disabled=true", "--signed"})
	if err := baseCmd.Execute(); err == nil {
		t.Error("expected error")
	}
}
