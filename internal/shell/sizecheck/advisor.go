// Package sizecheck warns about artifacts that exceed the cluster record
// store's size limit.
package sizecheck

import (
	"fmt"
	"log/slog"
	"math"
	"os"
)

// =============================================================================
// Size Advisor
// =============================================================================

// MaxRecordSize is the per-record size limit of the key-value store backing
// the cluster controller. Function records embedding a larger artifact are
// rejected at admission, so anything above this deserves a warning before
// submission.
const MaxRecordSize = 1 << 20 // 1 MiB

// Advisor checks resolved artifact sizes against MaxRecordSize.
type Advisor struct {
	logger *slog.Logger
}

// NewAdvisor creates an Advisor logging through the given logger.
func NewAdvisor(logger *slog.Logger) *Advisor {
	return &Advisor{logger: logger.With("component", "sizecheck")}
}

// Check stats the artifact and logs a warning when its size strictly exceeds
// MaxRecordSize. The warning is advisory; deployment proceeds regardless.
// A stat failure propagates to the caller.
func (a *Advisor) Check(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat artifact %s: %w", path, err)
	}

	if info.Size() > MaxRecordSize {
		mb := int(math.Round(float64(info.Size()) / float64(MaxRecordSize)))
		a.logger.Warn("deployment artifact exceeds the cluster record-size limit",
			"artifact", path,
			"size_mb", mb,
			"limit_bytes", int64(MaxRecordSize),
			"hint", "add package exclude patterns to shrink the artifact",
		)
	}
	return nil
}
