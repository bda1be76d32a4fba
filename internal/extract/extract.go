// Package extract pulls plain text out of uploaded resume files.
// PDF extraction is in-process; DOCX support reads the document XML
// directly from the zip container.
package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// UnsupportedFormatError indicates a file extension we cannot extract from.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q: only .pdf and .docx are supported", e.Extension)
}

// ExtractionError wraps a failure inside one of the extraction backends.
type ExtractionError struct {
	Format string
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Format, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Text extracts plain text from a resume file, dispatching on the filename
// extension.
func Text(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDFText(data)
	case ".docx":
		return DocxText(data)
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}
}

// PDFText extracts the plain text content of a PDF.
func PDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Cause: err}
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return "", &ExtractionError{Format: "pdf", Cause: err}
	}

	return normalizeWhitespace(buf.String()), nil
}

// tagPattern strips XML tags when flattening DOCX document markup.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// DocxText extracts the plain text content of a DOCX file by reading
// word/document.xml from the zip container.
func DocxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "docx", Cause: err}
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", &ExtractionError{Format: "docx", Cause: err}
			}
			docXML, err = io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				return "", &ExtractionError{Format: "docx", Cause: err}
			}
			break
		}
	}
	if docXML == nil {
		return "", &ExtractionError{Format: "docx", Cause: fmt.Errorf("word/document.xml not found")}
	}

	// Paragraph and break tags become newlines before all tags are stripped.
	text := string(docXML)
	for _, marker := range []string{"</w:p>", "<w:br/>", "<w:br />"} {
		text = strings.ReplaceAll(text, marker, "\n")
	}
	text = tagPattern.ReplaceAllString(text, "")

	return normalizeWhitespace(text), nil
}

// normalizeWhitespace collapses runs of spaces and blank lines while keeping
// line structure, which the LLM structuring prompt relies on.
func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
