package randomorg

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Ints decodes the data array as base-10 integers. Integers requested in
// base 2, 8 or 16 arrive as strings; use Strings for those.
func (r Random) Ints() ([]int, error) {
	var out []int
	if err := json.Unmarshal(r.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode integer data: %w", err)
	}
	return out, nil
}

// IntSequences decodes the data array as base-10 integer sequences.
func (r Random) IntSequences() ([][]int, error) {
	var out [][]int
	if err := json.Unmarshal(r.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode sequence data: %w", err)
	}
	return out, nil
}

// Floats decodes the data array as floating point numbers (Gaussians and
// decimal fractions).
func (r Random) Floats() ([]float64, error) {
	var out []float64
	if err := json.Unmarshal(r.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode float data: %w", err)
	}
	return out, nil
}

// Strings decodes the data array as strings (strings, blobs and non-decimal
// integer bases).
func (r Random) Strings() ([]string, error) {
	var out []string
	if err := json.Unmarshal(r.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode string data: %w", err)
	}
	return out, nil
}

// UUIDs decodes the data array as UUIDs.
func (r Random) UUIDs() ([]uuid.UUID, error) {
	strs, err := r.Strings()
	if err != nil {
		return nil, err
	}
	out := make([]uuid.UUID, 0, len(strs))
	for _, s := range strs {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse UUID %q: %w", s, err)
		}
		out = append(out, id)
	}
	return out, nil
}

// Value projects the data array with minimal typing: all-number arrays
// become []float64, arrays of number arrays become [][]float64 and
// all-string arrays become []string. Anything else is returned as decoded.
func (r Random) Value() (any, error) {
	var elems []any
	if err := json.Unmarshal(r.Data, &elems); err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	if len(elems) == 0 {
		return elems, nil
	}

	if nums, ok := asFloats(elems); ok {
		return nums, nil
	}

	nested := make([][]float64, 0, len(elems))
	for _, e := range elems {
		inner, ok := e.([]any)
		if !ok {
			nested = nil
			break
		}
		nums, ok := asFloats(inner)
		if !ok {
			nested = nil
			break
		}
		nested = append(nested, nums)
	}
	if nested != nil {
		return nested, nil
	}

	strs := make([]string, 0, len(elems))
	for _, e := range elems {
		s, ok := e.(string)
		if !ok {
			return elems, nil
		}
		strs = append(strs, s)
	}
	return strs, nil
}

func asFloats(elems []any) ([]float64, bool) {
	if len(elems) == 0 {
		return nil, false
	}
	out := make([]float64, 0, len(elems))
	for _, e := range elems {
		n, ok := e.(float64)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// PullData projects the useful payload out of a decoded result: the data
// array for results carrying a random block, or the remaining bit quota for
// usage-only results.
func PullData(result any) (any, error) {
	switch v := result.(type) {
	case *RandomResult:
		return v.Random.Value()
	case RandomResult:
		return v.Random.Value()
	case *UsageResult:
		return v.BitsLeft, nil
	case UsageResult:
		return v.BitsLeft, nil
	}
	return nil, fmt.Errorf("no data in %T result", result)
}
