package randomorg_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/USA-RedDragon/trng-client/randomorg"
)

func decodeRandomResult(t *testing.T, data string) *randomorg.RandomResult {
	t.Helper()
	var result randomorg.RandomResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &result
}

func TestPullDataFlatNumbers(t *testing.T) {
	t.Parallel()
	result := decodeRandomResult(t, `{"random":{"data":[1,2,3],"completionTime":"2025-01-01 12:00:00Z"},"bitsUsed":5}`)
	value, err := randomorg.PullData(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nums, ok := value.([]float64)
	if !ok {
		t.Fatalf("expected []float64, got %T", value)
	}
	if len(nums) != 3 || nums[0] != 1 || nums[1] != 2 || nums[2] != 3 {
		t.Errorf("unexpected values: %v", nums)
	}
}

func TestPullDataNestedNumbers(t *testing.T) {
	t.Parallel()
	result := decodeRandomResult(t, `{"random":{"data":[[1,2],[3,4]],"completionTime":"2025-01-01 12:00:00Z"},"bitsUsed":10}`)
	value, err := randomorg.PullData(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seqs, ok := value.([][]float64)
	if !ok {
		t.Fatalf("expected [][]float64, got %T", value)
	}
	if len(seqs) != 2 || seqs[0][0] != 1 || seqs[0][1] != 2 || seqs[1][0] != 3 || seqs[1][1] != 4 {
		t.Errorf("unexpected values: %v", seqs)
	}
}

func TestPullDataStrings(t *testing.T) {
	t.Parallel()
	result := decodeRandomResult(t, `{"random":{"data":["a","b"],"completionTime":"2025-01-01 12:00:00Z"},"bitsUsed":4}`)
	value, err := randomorg.PullData(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	strs, ok := value.([]string)
	if !ok {
		t.Fatalf("expected []string, got %T", value)
	}
	if len(strs) != 2 || strs[0] != "a" || strs[1] != "b" {
		t.Errorf("unexpected values: %v", strs)
	}
}

func TestPullDataUsageFallsBackToBitsLeft(t *testing.T) {
	t.Parallel()
	usage := &randomorg.UsageResult{BitsLeft: 12345, RequestsLeft: 10}
	value, err := randomorg.PullData(usage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bits, ok := value.(int64)
	if !ok {
		t.Fatalf("expected int64, got %T", value)
	}
	if bits != 12345 {
		t.Errorf("unexpected bitsLeft: %d", bits)
	}
}

func TestPullDataUnknownShape(t *testing.T) {
	t.Parallel()
	if _, err := randomorg.PullData(&randomorg.VerifyResult{}); err == nil {
		t.Error("expected an error for a result without data")
	}
}

func TestTypedAccessors(t *testing.T) {
	t.Parallel()

	ints := decodeRandomResult(t, `{"random":{"data":[7,11,13],"completionTime":"2025-01-01 12:00:00Z"}}`)
	values, err := ints.Random.Ints()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 3 || values[2] != 13 {
		t.Errorf("unexpected ints: %v", values)
	}

	seqs := decodeRandomResult(t, `{"random":{"data":[[1,2,3],[4,5,6]],"completionTime":"2025-01-01 12:00:00Z"}}`)
	sequences, err := seqs.Random.IntSequences()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sequences) != 2 || sequences[1][2] != 6 {
		t.Errorf("unexpected sequences: %v", sequences)
	}

	floats := decodeRandomResult(t, `{"random":{"data":[0.1,0.25],"completionTime":"2025-01-01 12:00:00Z"}}`)
	fractions, err := floats.Random.Floats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fractions) != 2 || fractions[1] != 0.25 {
		t.Errorf("unexpected floats: %v", fractions)
	}

	// Numeric data through a string accessor must fail, not coerce.
	if _, err := ints.Random.Strings(); err == nil {
		t.Error("expected an error decoding numbers as strings")
	}
}

func TestSerialNumberMissing(t *testing.T) {
	t.Parallel()
	unsigned := decodeRandomResult(t, `{"random":{"data":[1],"completionTime":"2025-01-01 12:00:00Z"}}`)
	if _, err := unsigned.Random.SerialNumber(); !errors.Is(err, randomorg.ErrMissingSerialNumber) {
		t.Errorf("expected ErrMissingSerialNumber, got: %v", err)
	}
}
