package service

import (
	"bytes"
	"strings"
	"testing"
)

func TestQRPayload(t *testing.T) {
	payload := QRPayload("https://college.example.com", "abc123")
	if payload != "https://college.example.com/api/v1/attendance/scan?token=abc123" {
		t.Errorf("unexpected payload: %s", payload)
	}
}

func TestGenerateQRPNG(t *testing.T) {
	png, err := GenerateQRPNG("https://college.example.com", "abc123", 256)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected png magic bytes")
	}
}

func TestGenerateQRPNGDefaultSize(t *testing.T) {
	png, err := GenerateQRPNG("https://college.example.com", "abc123", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(png) == 0 {
		t.Error("expected non-empty image")
	}
}

func TestCell(t *testing.T) {
	row := []string{"a", "b"}
	if got := cell(row, 1); got != "b" {
		t.Errorf("cell(row, 1) = %q", got)
	}
	if got := cell(row, 5); got != "" {
		t.Errorf("expected empty string past the row end, got %q", got)
	}
	if got := cell(nil, 0); got != "" {
		t.Errorf("expected empty string for nil row, got %q", got)
	}
}

func TestStudentHeadersMatchImportColumns(t *testing.T) {
	// ReadStudentsFromExcel indexes columns positionally; the template
	// headers have to stay in the same order
	want := []string{"Login", "Password", "Full Name", "Department ID", "Group", "Phone", "Email"}
	if strings.Join(studentHeaders, ",") != strings.Join(want, ",") {
		t.Errorf("unexpected header order: %v", studentHeaders)
	}
}
