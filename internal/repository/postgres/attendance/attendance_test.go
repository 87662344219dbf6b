package attendance

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"college/backend/foundation/web"
	"college/backend/internal/auth"
	"college/backend/internal/pkg/repository/postgresql"
)

func claimsContext(role string) context.Context {
	return context.WithValue(context.Background(), auth.Key, auth.Claims{UserId: 7, Role: role})
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func TestCreateManualValidation(t *testing.T) {
	r := Repository{Database: &postgresql.Database{}}

	valid := CreateManualRequest{
		StudentID: num(3),
		SubjectID: num(4),
		AttendDay: str("2026-03-02"),
		Status:    str("PRESENT"),
	}

	tests := []struct {
		name       string
		ctx        context.Context
		request    CreateManualRequest
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "no claims",
			ctx:        context.Background(),
			request:    valid,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "claims missing",
		},
		{
			name:       "student cannot backfill",
			ctx:        claimsContext(auth.RoleStudent),
			request:    valid,
			wantStatus: http.StatusForbidden,
			wantMsg:    "not allowed",
		},
		{
			name:       "missing fields",
			ctx:        claimsContext(auth.RoleAdmin),
			request:    CreateManualRequest{StudentID: num(3)},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "required field(s) missing",
		},
		{
			name: "unknown status",
			ctx:  claimsContext(auth.RoleAdmin),
			request: CreateManualRequest{
				StudentID: num(3),
				SubjectID: num(4),
				AttendDay: str("2026-03-02"),
				Status:    str("SKIPPED"),
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "incorrect status",
		},
		{
			name: "malformed day",
			ctx:  claimsContext(auth.RoleAdmin),
			request: CreateManualRequest{
				StudentID: num(3),
				SubjectID: num(4),
				AttendDay: str("02-03-2026"),
				Status:    str("LATE"),
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "attend_day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.CreateManual(tt.ctx, tt.request)
			if err == nil {
				t.Fatal("expected an error")
			}

			webErr, ok := web.IsRequestError(err)
			if !ok {
				t.Fatalf("expected a request error, got %v", err)
			}
			if webErr.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", webErr.Status, tt.wantStatus)
			}
			if !strings.Contains(webErr.Error(), tt.wantMsg) {
				t.Errorf("message = %q, want it to mention %q", webErr.Error(), tt.wantMsg)
			}
		})
	}
}
