package randomorg

import (
	"fmt"

	"github.com/go-errors/errors"
)

var (
	ErrAPIKeyRequired      = errors.New("an API key is required for signed methods")
	ErrMissingRandom       = errors.New("result has no random block")
	ErrMissingSignature    = errors.New("result has no signature")
	ErrMissingSerialNumber = errors.New("random block has no serial number")
)

// ValidationError reports a parameter outside the service's documented
// limits. It is produced before any request is constructed or sent.
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Message)
}

// QuotaError reports a failed pre-flight quota check. Nothing was sent for
// the generator call that triggered it.
type QuotaError struct {
	BitsLeft int64
	Required int64
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota too low: %d bits left, %d required", e.BitsLeft, e.Required)
}
