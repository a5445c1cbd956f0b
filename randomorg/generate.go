package randomorg

import (
	"context"
	"log/slog"
)

// Basic and signed method names.
const (
	methodIntegers               = "generateIntegers"
	methodSignedIntegers         = "generateSignedIntegers"
	methodIntegerSequences       = "generateIntegerSequences"
	methodSignedIntegerSequences = "generateSignedIntegerSequences"
	methodStrings                = "generateStrings"
	methodSignedStrings          = "generateSignedStrings"
	methodGaussians              = "generateGaussians"
	methodSignedGaussians        = "generateSignedGaussians"
	methodDecimalFractions       = "generateDecimalFractions"
	methodSignedDecimalFractions = "generateSignedDecimalFractions"
	methodUUIDs                  = "generateUUIDs"
	methodSignedUUIDs            = "generateSignedUUIDs"
	methodBlobs                  = "generateBlobs"
	methodSignedBlobs            = "generateSignedBlobs"
)

type generatorParams interface {
	validate() error
	wire(apiKey string) any
}

func (c *Client) generate(ctx context.Context, method string, params generatorParams) (*RandomResult, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if err := c.preflight(ctx); err != nil {
		return nil, err
	}
	var result RandomResult
	if err := c.invoke(ctx, method, params.wire(c.basicKey()), &result); err != nil {
		return nil, err
	}
	slog.Debug("generator call complete",
		"method", method,
		"bitsUsed", result.BitsUsed,
		"bitsLeft", result.BitsLeft,
		"advisoryDelay", result.AdvisoryDelay)
	return &result, nil
}

func (c *Client) generateSigned(ctx context.Context, method string, params generatorParams) (*RandomResult, error) {
	apiKey, err := c.signedKey()
	if err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	if err := c.preflight(ctx); err != nil {
		return nil, err
	}
	var result RandomResult
	if err := c.invoke(ctx, method, params.wire(apiKey), &result); err != nil {
		return nil, err
	}
	slog.Debug("signed generator call complete",
		"method", method,
		"bitsUsed", result.BitsUsed,
		"bitsLeft", result.BitsLeft,
		"advisoryDelay", result.AdvisoryDelay)
	return &result, nil
}

// GenerateIntegers requests uniform random integers in [Min, Max].
func (c *Client) GenerateIntegers(ctx context.Context, params IntegerParams) (*RandomResult, error) {
	return c.generate(ctx, methodIntegers, params)
}

// GenerateSignedIntegers is GenerateIntegers with a server-signed result.
func (c *Client) GenerateSignedIntegers(ctx context.Context, params IntegerParams) (*RandomResult, error) {
	return c.generateSigned(ctx, methodSignedIntegers, params)
}

// GenerateIntegerSequences requests N sequences of uniform random integers.
func (c *Client) GenerateIntegerSequences(ctx context.Context, params SequenceParams) (*RandomResult, error) {
	return c.generate(ctx, methodIntegerSequences, params)
}

// GenerateSignedIntegerSequences is GenerateIntegerSequences with a
// server-signed result.
func (c *Client) GenerateSignedIntegerSequences(ctx context.Context, params SequenceParams) (*RandomResult, error) {
	return c.generateSigned(ctx, methodSignedIntegerSequences, params)
}

// GenerateStrings requests random strings drawn from params.Characters.
func (c *Client) GenerateStrings(ctx context.Context, params StringParams) (*RandomResult, error) {
	return c.generate(ctx, methodStrings, params)
}

// GenerateSignedStrings is GenerateStrings with a server-signed result.
func (c *Client) GenerateSignedStrings(ctx context.Context, params StringParams) (*RandomResult, error) {
	return c.generateSigned(ctx, methodSignedStrings, params)
}

// GenerateGaussians requests samples from a Gaussian distribution.
func (c *Client) GenerateGaussians(ctx context.Context, params GaussianParams) (*RandomResult, error) {
	return c.generate(ctx, methodGaussians, params)
}

// GenerateSignedGaussians is GenerateGaussians with a server-signed result.
func (c *Client) GenerateSignedGaussians(ctx context.Context, params GaussianParams) (*RandomResult, error) {
	return c.generateSigned(ctx, methodSignedGaussians, params)
}

// GenerateDecimalFractions requests random fractions from [0, 1).
func (c *Client) GenerateDecimalFractions(ctx context.Context, params DecimalFractionParams) (*RandomResult, error) {
	return c.generate(ctx, methodDecimalFractions, params)
}

// GenerateSignedDecimalFractions is GenerateDecimalFractions with a
// server-signed result.
func (c *Client) GenerateSignedDecimalFractions(ctx context.Context, params DecimalFractionParams) (*RandomResult, error) {
	return c.generateSigned(ctx, methodSignedDecimalFractions, params)
}

// GenerateUUIDs requests version-4 UUIDs.
func (c *Client) GenerateUUIDs(ctx context.Context, params UUIDParams) (*RandomResult, error) {
	return c.generate(ctx, methodUUIDs, params)
}

// GenerateSignedUUIDs is GenerateUUIDs with a server-signed result.
func (c *Client) GenerateSignedUUIDs(ctx context.Context, params UUIDParams) (*RandomResult, error) {
	return c.generateSigned(ctx, methodSignedUUIDs, params)
}

// GenerateBlobs requests random binary blobs, encoded per params.Format.
func (c *Client) GenerateBlobs(ctx context.Context, params BlobParams) (*RandomResult, error) {
	return c.generate(ctx, methodBlobs, params)
}

// GenerateSignedBlobs is GenerateBlobs with a server-signed result.
func (c *Client) GenerateSignedBlobs(ctx context.Context, params BlobParams) (*RandomResult, error) {
	return c.generateSigned(ctx, methodSignedBlobs, params)
}
