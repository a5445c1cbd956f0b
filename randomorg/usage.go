package randomorg

import (
	"context"
	"encoding/json"
)

const (
	methodGetUsage        = "getUsage"
	methodGetResult       = "getResult"
	methodVerifySignature = "verifySignature"
)

// GetUsage returns the quota state for the configured key, or for the
// placeholder key when none is configured.
func (c *Client) GetUsage(ctx context.Context) (*UsageResult, error) {
	params := struct {
		APIKey string `json:"apiKey"`
	}{c.basicKey()}
	var result UsageResult
	if err := c.invoke(ctx, methodGetUsage, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckUsage reports whether at least minimumBits remain in the quota.
func (c *Client) CheckUsage(ctx context.Context, minimumBits int64) (bool, error) {
	usage, err := c.GetUsage(ctx)
	if err != nil {
		return false, err
	}
	return usage.BitsLeft >= minimumBits, nil
}

// GetResult fetches a previously generated signed result by serial number.
// The service retains signed results for at least 24 hours.
func (c *Client) GetResult(ctx context.Context, serialNumber int) (*RandomResult, error) {
	apiKey, err := c.signedKey()
	if err != nil {
		return nil, err
	}
	params := struct {
		APIKey       string `json:"apiKey"`
		SerialNumber int    `json:"serialNumber"`
	}{apiKey, serialNumber}
	var result RandomResult
	if err := c.invoke(ctx, methodGetResult, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifySignature asks the service whether prior's random block really was
// produced by it. The random block is sent back exactly as received. An
// input without a random block or signature fails before anything is sent.
func (c *Client) VerifySignature(ctx context.Context, prior *RandomResult) (*VerifyResult, error) {
	if prior == nil || prior.Random.isZero() {
		return nil, ErrMissingRandom
	}
	if prior.Signature == "" {
		return nil, ErrMissingSignature
	}
	params := struct {
		Random    json.RawMessage `json:"random"`
		Signature string          `json:"signature"`
	}{}
	raw, err := prior.Random.MarshalJSON()
	if err != nil {
		return nil, err
	}
	params.Random = raw
	params.Signature = prior.Signature

	var result VerifyResult
	if err := c.invoke(ctx, methodVerifySignature, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
