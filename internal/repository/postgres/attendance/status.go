package attendance

import (
	"time"

	"college/backend/internal/entity"

	"github.com/pkg/errors"
)

// Scan failure kinds. The controller maps each to a distinct message so the
// client can tell "ask for a new code" apart from "you scanned too late".
var (
	ErrExpired      = errors.New("qr session has expired")
	ErrWindowClosed = errors.New("attendance window has closed")
)

// Policy holds the configured scan windows. A scan within LateAfter of the
// session start is on time; within Grace past that cutoff it is late;
// anything later is rejected even while the session itself is unexpired.
type Policy struct {
	LateAfter time.Duration
	Grace     time.Duration
}

// DecideStatus resolves a scan timestamp against the session windows.
func DecideStatus(scannedAt, startsAt, expiresAt time.Time, policy Policy) (string, error) {
	if scannedAt.After(expiresAt) {
		return "", ErrExpired
	}

	lateCutoff := startsAt.Add(policy.LateAfter)
	if !scannedAt.After(lateCutoff) {
		return entity.StatusPresent, nil
	}

	if !scannedAt.After(lateCutoff.Add(policy.Grace)) {
		return entity.StatusLate, nil
	}

	return "", ErrWindowClosed
}
