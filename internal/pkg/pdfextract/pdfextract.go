package pdfextract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxPDFBytes caps uploads; anything larger is rejected before parsing.
const MaxPDFBytes = 15 << 20

var (
	ErrTooLarge = errors.New("pdf exceeds size limit")
	ErrNoText   = errors.New("pdf has no extractable text")
)

// ExtractText parses the PDF in r and returns its plain text with whitespace
// collapsed. The reader is buffered in full, bounded by MaxPDFBytes. The pdf
// library panics on some malformed files, so parsing runs behind a recover.
func ExtractText(r io.Reader) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("parse pdf failed: %v", rec)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(r, MaxPDFBytes+1))
	if err != nil {
		return "", fmt.Errorf("read pdf failed: %w", err)
	}
	if len(raw) > MaxPDFBytes {
		return "", ErrTooLarge
	}
	if len(raw) == 0 {
		return "", ErrNoText
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open pdf failed: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text failed: %w", err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text failed: %w", err)
	}

	text = strings.Join(strings.Fields(string(out)), " ")
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
