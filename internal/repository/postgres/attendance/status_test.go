package attendance

import (
	"testing"
	"time"

	"college/backend/internal/entity"
)

func TestDecideStatus(t *testing.T) {
	policy := Policy{
		LateAfter: 10 * time.Minute,
		Grace:     15 * time.Minute,
	}

	startsAt := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	expiresAt := startsAt.Add(30 * time.Minute)

	tests := []struct {
		name       string
		scannedAt  time.Time
		wantStatus string
		wantErr    error
	}{
		{
			name:       "scan right at start",
			scannedAt:  startsAt,
			wantStatus: entity.StatusPresent,
		},
		{
			name:       "scan five minutes in",
			scannedAt:  startsAt.Add(5 * time.Minute),
			wantStatus: entity.StatusPresent,
		},
		{
			name:       "scan exactly at the late cutoff",
			scannedAt:  startsAt.Add(10 * time.Minute),
			wantStatus: entity.StatusPresent,
		},
		{
			name:       "scan inside the grace window",
			scannedAt:  startsAt.Add(20 * time.Minute),
			wantStatus: entity.StatusLate,
		},
		{
			name:       "scan at the end of the grace window",
			scannedAt:  startsAt.Add(25 * time.Minute),
			wantStatus: entity.StatusLate,
		},
		{
			name:      "scan after the session expired",
			scannedAt: startsAt.Add(32 * time.Minute),
			wantErr:   ErrExpired,
		},
		{
			name:      "scan before expiry but past the grace window",
			scannedAt: startsAt.Add(26 * time.Minute),
			wantErr:   ErrWindowClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := DecideStatus(tt.scannedAt, startsAt, expiresAt, policy)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, status)
			}
		})
	}
}

func TestDecideStatusExpiryBeforeGrace(t *testing.T) {
	// a short session can expire before the grace window runs out; expiry
	// wins over the window check
	policy := Policy{LateAfter: 10 * time.Minute, Grace: 15 * time.Minute}

	startsAt := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	expiresAt := startsAt.Add(5 * time.Minute)

	_, err := DecideStatus(startsAt.Add(7*time.Minute), startsAt, expiresAt, policy)
	if err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}
