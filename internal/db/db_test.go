package db_test

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/USA-RedDragon/trng-client/internal/config"
	"github.com/USA-RedDragon/trng-client/internal/db"
	"github.com/USA-RedDragon/trng-client/internal/db/models"
	"github.com/USA-RedDragon/trng-client/randomorg"
	"gorm.io/gorm"
)

func makeTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := db.MakeDB(&config.Config{
		History: config.History{
			Enabled: true,
			Database: config.Database{
				Driver:   config.DatabaseDriverSQLite,
				Database: filepath.Join(t.TempDir(), "history.db"),
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return database
}

func makeSignedResult(t *testing.T, serial int) *randomorg.RandomResult {
	t.Helper()
	var result randomorg.RandomResult
	err := json.Unmarshal([]byte(`{
		"random": {
			"method": "generateSignedIntegers",
			"data": [4, 8, 15],
			"completionTime": "2024-01-01 00:00:00Z",
			"serialNumber": `+strconv.Itoa(serial)+`
		},
		"bitsUsed": 21,
		"bitsLeft": 249979,
		"requestsLeft": 999,
		"signature": "c2lnbmF0dXJl"
	}`), &result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &result
}

func TestSignedResultRoundTrip(t *testing.T) {
	t.Parallel()
	database := makeTestDB(t)

	original := makeSignedResult(t, 1234)
	row, err := models.NewSignedResult("generateSignedIntegers", original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := models.SaveSignedResult(database, row); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := models.FindSignedResultBySerial(database, 1234)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Method != "generateSignedIntegers" {
		t.Errorf("unexpected method: %s", found.Method)
	}
	if found.Signature != "c2lnbmF0dXJl" {
		t.Errorf("unexpected signature: %s", found.Signature)
	}

	restored, err := found.Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	originalRaw, err := json.Marshal(original.Random)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restoredRaw, err := json.Marshal(restored.Random)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The raw random block has to survive byte for byte or the signature
	// will not verify.
	if string(originalRaw) != string(restoredRaw) {
		t.Errorf("random block changed: %s != %s", originalRaw, restoredRaw)
	}
}

func TestFindSignedResultMissing(t *testing.T) {
	t.Parallel()
	database := makeTestDB(t)
	_, err := models.FindSignedResultBySerial(database, 999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestListSignedResultsOrder(t *testing.T) {
	t.Parallel()
	database := makeTestDB(t)
	for _, serial := range []int{30, 10, 20} {
		row, err := models.NewSignedResult("generateSignedIntegers", makeSignedResult(t, serial))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := models.SaveSignedResult(database, row); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	results, err := models.ListSignedResults(database)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("unexpected count: %d", len(results))
	}
	for i, serial := range []int{10, 20, 30} {
		if results[i].SerialNumber != serial {
			t.Errorf("unexpected serial at %d: %d", i, results[i].SerialNumber)
		}
	}
}

func TestDuplicateSerialRejected(t *testing.T) {
	t.Parallel()
	database := makeTestDB(t)
	row, err := models.NewSignedResult("generateSignedIntegers", makeSignedResult(t, 55))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := models.SaveSignedResult(database, row); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row.ID = 0
	if err := models.SaveSignedResult(database, row); err == nil {
		t.Error("expected error")
	}
}
