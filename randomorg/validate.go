package randomorg

import "fmt"

// Documented service limits. Values outside these are rejected locally,
// before any network round trip.
const (
	maxCount      = 10000
	minRangeValue = -1000000000
	maxRangeValue = 1000000000

	maxStringLength = 32
	maxCharacters   = 128

	minGaussianValue     = -1000000
	maxGaussianValue     = 1000000
	minSignificantDigits = 2
	maxSignificantDigits = 14

	maxDecimalPlaces = 14

	maxUUIDCount = 1000

	maxBlobCount = 100
	maxBlobSize  = 1048576
)

func validateCount(n, max int) error {
	if n < 1 || n > max {
		return &ValidationError{Param: "n", Message: fmt.Sprintf("must be between 1 and %d", max)}
	}
	return nil
}

func validateRange(param string, v int) error {
	if v < minRangeValue || v > maxRangeValue {
		return &ValidationError{Param: param, Message: fmt.Sprintf("must be between %d and %d", minRangeValue, maxRangeValue)}
	}
	return nil
}

func validateBase(base int) error {
	switch base {
	case 0, 2, 8, 10, 16:
		return nil
	}
	return &ValidationError{Param: "base", Message: "must be 2, 8, 10 or 16"}
}

func (p IntegerParams) validate() error {
	if err := validateCount(p.N, maxCount); err != nil {
		return err
	}
	if err := validateRange("min", p.Min); err != nil {
		return err
	}
	if err := validateRange("max", p.Max); err != nil {
		return err
	}
	if p.Min > p.Max {
		return &ValidationError{Param: "min", Message: "must not exceed max"}
	}
	if err := validateBase(p.Base); err != nil {
		return err
	}
	if p.NoReplacement && p.N > p.Max-p.Min+1 {
		return &ValidationError{Param: "n", Message: "must not exceed the range span when sampling without replacement"}
	}
	return nil
}

func (p SequenceParams) validate() error {
	if err := validateCount(p.N, maxCount); err != nil {
		return err
	}
	if err := validateBase(p.Base); err != nil {
		return err
	}
	for _, v := range []struct {
		param  string
		values Values
	}{
		{"length", p.Length},
		{"min", p.Min},
		{"max", p.Max},
	} {
		if v.values.per != nil && len(v.values.per) != p.N {
			return &ValidationError{Param: v.param, Message: fmt.Sprintf("per-sequence values must have exactly %d entries", p.N)}
		}
	}
	for i := 0; i < p.N; i++ {
		length, min, max := p.Length.at(i), p.Min.at(i), p.Max.at(i)
		if length < 1 || length > maxCount {
			return &ValidationError{Param: "length", Message: fmt.Sprintf("must be between 1 and %d", maxCount)}
		}
		if err := validateRange("min", min); err != nil {
			return err
		}
		if err := validateRange("max", max); err != nil {
			return err
		}
		if min > max {
			return &ValidationError{Param: "min", Message: "must not exceed max"}
		}
		if p.NoReplacement && length > max-min+1 {
			return &ValidationError{Param: "length", Message: "must not exceed the range span when sampling without replacement"}
		}
	}
	return nil
}

func (p StringParams) validate() error {
	if err := validateCount(p.N, maxCount); err != nil {
		return err
	}
	if p.Length < 1 || p.Length > maxStringLength {
		return &ValidationError{Param: "length", Message: fmt.Sprintf("must be between 1 and %d", maxStringLength)}
	}
	if len(p.Characters) < 1 || len(p.Characters) > maxCharacters {
		return &ValidationError{Param: "characters", Message: fmt.Sprintf("must contain between 1 and %d characters", maxCharacters)}
	}
	return nil
}

func (p GaussianParams) validate() error {
	if err := validateCount(p.N, maxCount); err != nil {
		return err
	}
	if p.Mean < minGaussianValue || p.Mean > maxGaussianValue {
		return &ValidationError{Param: "mean", Message: fmt.Sprintf("must be between %d and %d", minGaussianValue, maxGaussianValue)}
	}
	if p.StandardDeviation < minGaussianValue || p.StandardDeviation > maxGaussianValue {
		return &ValidationError{Param: "standardDeviation", Message: fmt.Sprintf("must be between %d and %d", minGaussianValue, maxGaussianValue)}
	}
	if p.SignificantDigits < minSignificantDigits || p.SignificantDigits > maxSignificantDigits {
		return &ValidationError{Param: "significantDigits", Message: fmt.Sprintf("must be between %d and %d", minSignificantDigits, maxSignificantDigits)}
	}
	return nil
}

func (p DecimalFractionParams) validate() error {
	if err := validateCount(p.N, maxCount); err != nil {
		return err
	}
	if p.DecimalPlaces < 1 || p.DecimalPlaces > maxDecimalPlaces {
		return &ValidationError{Param: "decimalPlaces", Message: fmt.Sprintf("must be between 1 and %d", maxDecimalPlaces)}
	}
	return nil
}

func (p UUIDParams) validate() error {
	return validateCount(p.N, maxUUIDCount)
}

func (p BlobParams) validate() error {
	if err := validateCount(p.N, maxBlobCount); err != nil {
		return err
	}
	if p.Size < 1 || p.Size > maxBlobSize {
		return &ValidationError{Param: "size", Message: fmt.Sprintf("must be between 1 and %d bits", maxBlobSize)}
	}
	if p.Size%8 != 0 {
		return &ValidationError{Param: "size", Message: "must be divisible by 8"}
	}
	switch effectiveBlobFormat(p.Format) {
	case BlobFormatBase64, BlobFormatHex:
		return nil
	}
	return &ValidationError{Param: "format", Message: `must be "base64" or "hex"`}
}
