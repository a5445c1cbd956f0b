package randomorg

import (
	"encoding/json"
	"fmt"
)

const jsonrpcVersion = "2.0"

// requestID is a fixed correlation value. Calls are strictly one request,
// one response, so there is nothing to correlate.
const requestID = 42

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC error object reported by the service. It is returned
// unmodified to the caller.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("randomorg: %s (code %d)", e.Message, e.Code)
}

// Random is the random block inside a generator result. The raw bytes are
// kept around so a signed block survives a verifySignature round trip
// byte-for-byte; the server's signature covers the exact object it returned.
type Random struct {
	Data           json.RawMessage `json:"data"`
	CompletionTime string          `json:"completionTime"`

	raw json.RawMessage
}

func (r *Random) UnmarshalJSON(b []byte) error {
	type plain Random
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = Random(p)
	r.raw = append([]byte(nil), b...)
	return nil
}

func (r Random) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	type plain Random
	return json.Marshal(plain(r))
}

func (r Random) isZero() bool {
	return r.raw == nil && r.Data == nil
}

// SerialNumber extracts the serial number from a signed random block.
// Basic (unsigned) blocks have none and return ErrMissingSerialNumber.
func (r Random) SerialNumber() (int, error) {
	if r.raw == nil {
		return 0, ErrMissingSerialNumber
	}
	var aux struct {
		SerialNumber *int `json:"serialNumber"`
	}
	if err := json.Unmarshal(r.raw, &aux); err != nil {
		return 0, fmt.Errorf("failed to decode random block: %w", err)
	}
	if aux.SerialNumber == nil {
		return 0, ErrMissingSerialNumber
	}
	return *aux.SerialNumber, nil
}

// RandomResult is the result shape shared by every generator call and by
// GetResult. Signature is empty for basic methods. AdvisoryDelay is the
// number of milliseconds the service asks callers to wait before the next
// request; it is informational only and never applied automatically.
type RandomResult struct {
	Random        Random `json:"random"`
	BitsUsed      int64  `json:"bitsUsed"`
	BitsLeft      int64  `json:"bitsLeft"`
	RequestsLeft  int64  `json:"requestsLeft"`
	AdvisoryDelay int    `json:"advisoryDelay"`
	Signature     string `json:"signature,omitempty"`
}

// UsageResult is the result of a getUsage call. It carries quota fields
// only, no random block.
type UsageResult struct {
	Status        string `json:"status"`
	CreationTime  string `json:"creationTime"`
	BitsLeft      int64  `json:"bitsLeft"`
	RequestsLeft  int64  `json:"requestsLeft"`
	TotalBits     int64  `json:"totalBits"`
	TotalRequests int64  `json:"totalRequests"`
}

// VerifyResult is the result of a verifySignature call.
type VerifyResult struct {
	Authenticity bool `json:"authenticity"`
}
