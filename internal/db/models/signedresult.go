package models

import (
	"encoding/json"
	"time"

	"github.com/USA-RedDragon/trng-client/randomorg"
	"gorm.io/gorm"
)

// SignedResult archives a signed response so it can be re-verified while
// the service still retains it (at least 24 hours after generation).
type SignedResult struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	SerialNumber   int       `json:"serial_number" gorm:"uniqueIndex"`
	Method         string    `json:"method"`
	Random         []byte    `json:"random"`
	Signature      string    `json:"signature"`
	CompletionTime string    `json:"completion_time"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r SignedResult) TableName() string {
	return "signed_results"
}

// NewSignedResult flattens a signed API result into an archivable row.
func NewSignedResult(method string, result *randomorg.RandomResult) (SignedResult, error) {
	serial, err := result.Random.SerialNumber()
	if err != nil {
		return SignedResult{}, err
	}
	raw, err := json.Marshal(result.Random)
	if err != nil {
		return SignedResult{}, err
	}
	return SignedResult{
		SerialNumber:   serial,
		Method:         method,
		Random:         raw,
		Signature:      result.Signature,
		CompletionTime: result.Random.CompletionTime,
	}, nil
}

// Result reconstructs the signed API result, raw random block included.
func (r SignedResult) Result() (*randomorg.RandomResult, error) {
	var random randomorg.Random
	if err := json.Unmarshal(r.Random, &random); err != nil {
		return nil, err
	}
	return &randomorg.RandomResult{Random: random, Signature: r.Signature}, nil
}

func SaveSignedResult(db *gorm.DB, result SignedResult) error {
	return db.Create(&result).Error
}

func FindSignedResultBySerial(db *gorm.DB, serialNumber int) (SignedResult, error) {
	var result SignedResult
	err := db.Where(&SignedResult{SerialNumber: serialNumber}).First(&result).Error
	return result, err
}

func ListSignedResults(db *gorm.DB) ([]SignedResult, error) {
	var results []SignedResult
	err := db.Order("serial_number asc").Find(&results).Error
	return results, err
}
