package analytics

import (
	"context"
	"net/http"
	"testing"

	"college/backend/foundation/web"
	"college/backend/internal/repository/postgres"

	"github.com/pkg/errors"
)

func TestGetAnalyticsUnknownType(t *testing.T) {
	var r Repository

	for _, typ := range []string{"", "bogus", "OVERVIEW"} {
		_, err := r.GetAnalytics(context.Background(), Filter{Type: typ})
		if err == nil {
			t.Fatalf("GetAnalytics(%q): expected an error", typ)
		}
		if !errors.Is(err, postgres.ErrInvalidRequest) {
			t.Errorf("GetAnalytics(%q): err = %v, want ErrInvalidRequest", typ, err)
		}

		webErr, ok := web.IsRequestError(err)
		if !ok {
			t.Fatalf("GetAnalytics(%q): expected a request error, got %v", typ, err)
		}
		if webErr.Status != http.StatusBadRequest {
			t.Errorf("GetAnalytics(%q): status = %d, want %d", typ, webErr.Status, http.StatusBadRequest)
		}
	}
}
