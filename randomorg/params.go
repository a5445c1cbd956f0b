package randomorg

import "encoding/json"

// Blob formats accepted by GenerateBlobs.
const (
	BlobFormatBase64 = "base64"
	BlobFormatHex    = "hex"
)

// Values is a sequence parameter that is either uniform across all
// sequences or set per sequence. The zero value is uniform zero.
type Values struct {
	scalar int
	per    []int
}

// Uniform applies v to every sequence.
func Uniform(v int) Values {
	return Values{scalar: v}
}

// PerSequence applies vs[i] to sequence i. Its length must equal the
// sequence count.
func PerSequence(vs ...int) Values {
	return Values{per: vs}
}

func (v Values) MarshalJSON() ([]byte, error) {
	if v.per != nil {
		return json.Marshal(v.per)
	}
	return json.Marshal(v.scalar)
}

// at is the effective value for sequence i.
func (v Values) at(i int) int {
	if v.per != nil {
		return v.per[i]
	}
	return v.scalar
}

// IntegerParams are inputs to GenerateIntegers. Base 0 means 10. The
// service samples with replacement unless NoReplacement is set.
type IntegerParams struct {
	N             int
	Min           int
	Max           int
	Base          int
	NoReplacement bool
}

func (p IntegerParams) wire(apiKey string) any {
	return struct {
		APIKey      string `json:"apiKey"`
		N           int    `json:"n"`
		Min         int    `json:"min"`
		Max         int    `json:"max"`
		Replacement bool   `json:"replacement"`
		Base        int    `json:"base"`
	}{apiKey, p.N, p.Min, p.Max, !p.NoReplacement, effectiveBase(p.Base)}
}

// SequenceParams are inputs to GenerateIntegerSequences. Length, Min and
// Max are uniform or per-sequence.
type SequenceParams struct {
	N             int
	Length        Values
	Min           Values
	Max           Values
	Base          int
	NoReplacement bool
}

func (p SequenceParams) wire(apiKey string) any {
	return struct {
		APIKey      string `json:"apiKey"`
		N           int    `json:"n"`
		Length      Values `json:"length"`
		Min         Values `json:"min"`
		Max         Values `json:"max"`
		Replacement bool   `json:"replacement"`
		Base        int    `json:"base"`
	}{apiKey, p.N, p.Length, p.Min, p.Max, !p.NoReplacement, effectiveBase(p.Base)}
}

// StringParams are inputs to GenerateStrings. Characters is the alphabet
// the strings are drawn from.
type StringParams struct {
	N             int
	Length        int
	Characters    string
	NoReplacement bool
}

func (p StringParams) wire(apiKey string) any {
	return struct {
		APIKey      string `json:"apiKey"`
		N           int    `json:"n"`
		Length      int    `json:"length"`
		Characters  string `json:"characters"`
		Replacement bool   `json:"replacement"`
	}{apiKey, p.N, p.Length, p.Characters, !p.NoReplacement}
}

// GaussianParams are inputs to GenerateGaussians.
type GaussianParams struct {
	N                 int
	Mean              float64
	StandardDeviation float64
	SignificantDigits int
}

func (p GaussianParams) wire(apiKey string) any {
	return struct {
		APIKey            string  `json:"apiKey"`
		N                 int     `json:"n"`
		Mean              float64 `json:"mean"`
		StandardDeviation float64 `json:"standardDeviation"`
		SignificantDigits int     `json:"significantDigits"`
	}{apiKey, p.N, p.Mean, p.StandardDeviation, p.SignificantDigits}
}

// DecimalFractionParams are inputs to GenerateDecimalFractions.
type DecimalFractionParams struct {
	N             int
	DecimalPlaces int
	NoReplacement bool
}

func (p DecimalFractionParams) wire(apiKey string) any {
	return struct {
		APIKey        string `json:"apiKey"`
		N             int    `json:"n"`
		DecimalPlaces int    `json:"decimalPlaces"`
		Replacement   bool   `json:"replacement"`
	}{apiKey, p.N, p.DecimalPlaces, !p.NoReplacement}
}

// UUIDParams are inputs to GenerateUUIDs. The service allows at most 1000
// UUIDs per request.
type UUIDParams struct {
	N int
}

func (p UUIDParams) wire(apiKey string) any {
	return struct {
		APIKey string `json:"apiKey"`
		N      int    `json:"n"`
	}{apiKey, p.N}
}

// BlobParams are inputs to GenerateBlobs. Size is in bits and must be a
// multiple of 8. The service allows at most 100 blobs per request.
type BlobParams struct {
	N      int
	Size   int
	Format string
}

func (p BlobParams) wire(apiKey string) any {
	return struct {
		APIKey string `json:"apiKey"`
		N      int    `json:"n"`
		Size   int    `json:"size"`
		Format string `json:"format"`
	}{apiKey, p.N, p.Size, effectiveBlobFormat(p.Format)}
}

func effectiveBase(base int) int {
	if base == 0 {
		return 10
	}
	return base
}

func effectiveBlobFormat(format string) string {
	if format == "" {
		return BlobFormatBase64
	}
	return format
}
