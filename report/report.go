// Package report handles downloaded daily-report blobs: validating that
// the backend really sent a PDF and writing it to disk.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	pdf "github.com/ledongthuc/pdf"
)

// ErrNotPDF means the downloaded blob does not look like a PDF, usually an
// HTML error page served with a 200.
var ErrNotPDF = errors.New("response is not a PDF")

// PageCount parses PDF bytes and returns the page count. Errors are
// returned rather than swallowed; callers treat them as advisory.
func PageCount(data []byte) (int, error) {
	reader := bytes.NewReader(data)
	doc, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("new pdf reader: %w", err)
	}
	return doc.NumPage(), nil
}

// Save validates and writes a downloaded report. The header check is
// strict; the page count is best effort and only feeds logging.
func Save(path string, data []byte) (int, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return 0, ErrNotPDF
	}
	pages, err := PageCount(data)
	if err != nil {
		pages = 0
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return 0, fmt.Errorf("write report: %w", err)
	}
	return pages, nil
}
