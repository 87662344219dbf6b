package service

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
)

// QRSheet holds what gets printed alongside the code.
type QRSheet struct {
	Subject   string
	Teacher   string
	StartsAt  time.Time
	ExpiresAt time.Time
}

// GenerateQRPDF writes a printable A4 page with the session QR in the
// middle and the class details above it. Returns the file path.
func GenerateQRPDF(baseUrl, token string, sheet QRSheet, fileName string) (string, error) {
	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	if err := drawSheet(pdf, baseUrl, token, sheet); err != nil {
		return "", err
	}

	path := fmt.Sprintf("%s/%s", baseDir, fileName)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("writing pdf: %w", err)
	}
	return path, nil
}

// GenerateQRListPDF writes one page per session, for printing a batch of
// handouts at once.
func GenerateQRListPDF(baseUrl string, tokens []string, sheets []QRSheet, fileName string) (string, error) {
	if len(tokens) != len(sheets) {
		return "", fmt.Errorf("tokens and sheets length mismatch: %d != %d", len(tokens), len(sheets))
	}

	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	for i, token := range tokens {
		pdf.AddPage()
		if err := drawSheet(pdf, baseUrl, token, sheets[i]); err != nil {
			return "", err
		}
	}

	path := fmt.Sprintf("%s/%s", baseDir, fileName)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("writing pdf: %w", err)
	}
	return path, nil
}

func drawSheet(pdf *gofpdf.Fpdf, baseUrl, token string, sheet QRSheet) error {
	png, err := GenerateQRPNG(baseUrl, token, 512)
	if err != nil {
		return err
	}

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 14, sheet.Subject, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 13)
	pdf.CellFormat(0, 8, sheet.Teacher, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8,
		fmt.Sprintf("%s - %s", sheet.StartsAt.Format("15:04"), sheet.ExpiresAt.Format("15:04")),
		"", 1, "C", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	// image names must be unique per document
	pdf.RegisterImageOptionsReader("qr-"+token, opts, bytes.NewReader(png))
	// center a 120mm square on the 210mm page
	pdf.ImageOptions("qr-"+token, 45, 60, 120, 120, false, opts, 0, "")

	pdf.SetY(190)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 6, "Scan with the student app to mark your attendance", "", 1, "C", false, 0, "")

	return nil
}
