package logging

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// GenerateRunID creates a unique identifier for one suite run.
// Format: YYYYMMDD_HHMMSS_xxxx (timestamp + 4 random hex chars)
// Example: 20251217_205106_a7b3
func GenerateRunID() string {
	return generateRunID(time.Now())
}

func generateRunID(now time.Time) string {
	random := make([]byte, 2)
	_, _ = rand.Read(random)
	return now.Format("20060102_150405") + "_" + hex.EncodeToString(random)
}
