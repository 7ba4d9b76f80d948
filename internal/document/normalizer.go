package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedFormat is returned when a document's extension is not one
// of pdf, docx, or txt. The caller stops that document's pipeline but the
// failure is not fatal to a batch.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractionError reports a malformed or unreadable document of a supported
// format, carrying the underlying cause.
type ExtractionError struct {
	Ext string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Ext, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Normalizer converts heterogeneous input documents into plain text.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize extracts plain text from raw document bytes. The format is
// taken from the final dot-segment of filename, case-insensitive.
func (n *Normalizer) Normalize(raw []byte, filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "pdf":
		return extractPDF(raw)
	case "docx":
		return extractDOCX(raw)
	case "txt":
		return extractTXT(raw)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// extractTXT decodes the content as UTF-8 text.
func extractTXT(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", &ExtractionError{Ext: "txt", Err: errors.New("content is not valid UTF-8")}
	}
	return string(raw), nil
}
