package web

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
)

func TestIsRequestError(t *testing.T) {
	base := errors.New("boom")

	re, ok := IsRequestError(NewRequestError(base, http.StatusBadRequest))
	if !ok {
		t.Fatal("expected a request error")
	}
	if re.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", re.Status)
	}
	if re.Error() != "boom" {
		t.Errorf("unexpected message: %s", re.Error())
	}
}

func TestIsRequestErrorUnwraps(t *testing.T) {
	wrapped := errors.Wrap(NewRequestError(errors.New("not found"), http.StatusNotFound), "selecting row")

	re, ok := IsRequestError(wrapped)
	if !ok {
		t.Fatal("expected the wrapped request error to be found")
	}
	if re.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", re.Status)
	}
}

func TestIsRequestErrorPlainError(t *testing.T) {
	if _, ok := IsRequestError(errors.New("plain")); ok {
		t.Fatal("plain errors are not request errors")
	}
}

func TestRequestErrorKeepsSentinel(t *testing.T) {
	sentinel := errors.New("row already exists")
	err := NewRequestError(errors.Wrap(sentinel, "attendance"), http.StatusBadRequest)

	if !errors.Is(err, sentinel) {
		t.Fatal("expected the sentinel to survive NewRequestError")
	}
}
