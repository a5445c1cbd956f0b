package randomorg_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/USA-RedDragon/trng-client/randomorg"
)

func TestValidationRejectsWithoutNetwork(t *testing.T) {
	t.Parallel()
	transport := &countingTransport{}
	client := randomorg.NewClient(randomorg.Options{
		APIKey:     "test-key",
		HTTPClient: &http.Client{Transport: transport},
	})
	ctx := context.Background()

	calls := map[string]func() error{
		"integers n too low": func() error {
			_, err := client.GenerateIntegers(ctx, randomorg.IntegerParams{N: 0, Min: 1, Max: 6})
			return err
		},
		"integers n too high": func() error {
			_, err := client.GenerateIntegers(ctx, randomorg.IntegerParams{N: 10001, Min: 1, Max: 6})
			return err
		},
		"integers min above max": func() error {
			_, err := client.GenerateIntegers(ctx, randomorg.IntegerParams{N: 1, Min: 7, Max: 6})
			return err
		},
		"integers min out of range": func() error {
			_, err := client.GenerateIntegers(ctx, randomorg.IntegerParams{N: 1, Min: -1000000001, Max: 6})
			return err
		},
		"integers max out of range": func() error {
			_, err := client.GenerateIntegers(ctx, randomorg.IntegerParams{N: 1, Min: 1, Max: 1000000001})
			return err
		},
		"integers bad base": func() error {
			_, err := client.GenerateIntegers(ctx, randomorg.IntegerParams{N: 1, Min: 1, Max: 6, Base: 7})
			return err
		},
		"integers span too small without replacement": func() error {
			_, err := client.GenerateIntegers(ctx, randomorg.IntegerParams{N: 10, Min: 1, Max: 6, NoReplacement: true})
			return err
		},
		"sequences per-sequence length mismatch": func() error {
			_, err := client.GenerateIntegerSequences(ctx, randomorg.SequenceParams{
				N:      3,
				Length: randomorg.PerSequence(2, 2),
				Min:    randomorg.Uniform(1),
				Max:    randomorg.Uniform(6),
			})
			return err
		},
		"sequences length exceeds span without replacement": func() error {
			_, err := client.GenerateIntegerSequences(ctx, randomorg.SequenceParams{
				N:             1,
				Length:        randomorg.Uniform(10),
				Min:           randomorg.Uniform(1),
				Max:           randomorg.Uniform(6),
				NoReplacement: true,
			})
			return err
		},
		"strings length too long": func() error {
			_, err := client.GenerateStrings(ctx, randomorg.StringParams{N: 1, Length: 33, Characters: "abc"})
			return err
		},
		"strings empty alphabet": func() error {
			_, err := client.GenerateStrings(ctx, randomorg.StringParams{N: 1, Length: 8})
			return err
		},
		"gaussians digits too low": func() error {
			_, err := client.GenerateGaussians(ctx, randomorg.GaussianParams{N: 1, Mean: 0, StandardDeviation: 1, SignificantDigits: 1})
			return err
		},
		"gaussians mean out of range": func() error {
			_, err := client.GenerateGaussians(ctx, randomorg.GaussianParams{N: 1, Mean: 1000001, StandardDeviation: 1, SignificantDigits: 4})
			return err
		},
		"fractions places too high": func() error {
			_, err := client.GenerateDecimalFractions(ctx, randomorg.DecimalFractionParams{N: 1, DecimalPlaces: 15})
			return err
		},
		"uuids n too high": func() error {
			_, err := client.GenerateUUIDs(ctx, randomorg.UUIDParams{N: 1001})
			return err
		},
		"blobs n too high": func() error {
			_, err := client.GenerateBlobs(ctx, randomorg.BlobParams{N: 101, Size: 64})
			return err
		},
		"blobs size not divisible by 8": func() error {
			_, err := client.GenerateBlobs(ctx, randomorg.BlobParams{N: 1, Size: 9})
			return err
		},
		"blobs size too large": func() error {
			_, err := client.GenerateBlobs(ctx, randomorg.BlobParams{N: 1, Size: 1048584})
			return err
		},
		"blobs bad format": func() error {
			_, err := client.GenerateBlobs(ctx, randomorg.BlobParams{N: 1, Size: 64, Format: "binary"})
			return err
		},
		"signed variant validates too": func() error {
			_, err := client.GenerateSignedBlobs(ctx, randomorg.BlobParams{N: 1, Size: 9})
			return err
		},
	}

	for name, call := range calls {
		err := call()
		var validationErr *randomorg.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("%s: expected validation error, got: %v", name, err)
		}
	}
	if transport.calls != 0 {
		t.Errorf("expected no network calls, got %d", transport.calls)
	}
}

func TestValidationIsIdempotent(t *testing.T) {
	t.Parallel()
	transport := &countingTransport{}
	client := randomorg.NewClient(randomorg.Options{HTTPClient: &http.Client{Transport: transport}})

	params := randomorg.BlobParams{N: 1, Size: 9}
	_, first := client.GenerateBlobs(context.Background(), params)
	_, second := client.GenerateBlobs(context.Background(), params)
	if first == nil || second == nil {
		t.Fatalf("expected errors, got %v and %v", first, second)
	}
	if first.Error() != second.Error() {
		t.Errorf("validation not idempotent: %q vs %q", first.Error(), second.Error())
	}
	if transport.calls != 0 {
		t.Errorf("expected no network calls, got %d", transport.calls)
	}
}

func TestBlobSizeBoundary(t *testing.T) {
	t.Parallel()
	service, server := newTestService(t, map[string]string{
		"generateBlobs": `{"random":{"data":["q80="],"completionTime":"2025-01-01 12:00:00Z"},"bitsUsed":8,"bitsLeft":992,"requestsLeft":9,"advisoryDelay":0}`,
	})
	client := randomorg.NewClient(randomorg.Options{Endpoint: server.URL, SkipPreflight: true})

	// size=8 is the smallest valid blob.
	_, err := client.GenerateBlobs(context.Background(), randomorg.BlobParams{N: 1, Size: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(service.calls) != 1 {
		t.Errorf("unexpected calls: %v", service.calls)
	}
}
