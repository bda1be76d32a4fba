package importer

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/extract"
	"resume-studio/internal/llm"
)

// stubClient is a canned-response llm.Client for tests.
type stubClient struct {
	response string
	err      error
	prompt   string
}

func (c *stubClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	c.prompt = prompt
	return c.response, c.err
}

func (c *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	c.prompt = prompt
	return c.response, c.err
}

func (c *stubClient) GetModel(llm.ModelTier) string { return "stub" }
func (c *stubClient) Close() error                  { return nil }

// docxFixture builds a minimal DOCX container holding the given paragraphs.
func docxFixture(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)

	var doc bytes.Buffer
	doc.WriteString(`<w:document><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)

	_, err = w.Write(doc.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestFromText_Success(t *testing.T) {
	stub := &stubClient{response: `{
		"basics": {"fullName": "Ada Lovelace", "email": "ada@example.com"},
		"sections": [{"type": "experience", "items": [{"heading": "Analyst"}]}]
	}`}

	imp := NewWithClient(stub)
	result, err := imp.FromText(context.Background(), "Ada Lovelace\nAnalyst at Babbage & Co")
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", result.Data.Basics.FullName)
	require.Len(t, result.Data.Sections, 1)
	assert.Equal(t, "Ada Lovelace\nAnalyst at Babbage & Co", result.ExtractedText)
	assert.Contains(t, stub.prompt, "Babbage & Co", "extracted text must reach the prompt")
}

func TestFromText_ValidationWarnings(t *testing.T) {
	stub := &stubClient{response: `{
		"basics": {"fullName": "Ada", "email": "not-an-email"},
		"sections": []
	}`}

	imp := NewWithClient(stub)
	result, err := imp.FromText(context.Background(), "some resume text")
	require.NoError(t, err, "validation issues must not fail the import")

	assert.NotEmpty(t, result.Warnings)
}

func TestFromText_APIError(t *testing.T) {
	stub := &stubClient{err: errors.New("backend unavailable")}

	imp := NewWithClient(stub)
	_, err := imp.FromText(context.Background(), "text")

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
}

func TestFromText_UnparseableResponse(t *testing.T) {
	stub := &stubClient{response: "this is not JSON at all"}

	imp := NewWithClient(stub)
	_, err := imp.FromText(context.Background(), "text")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFromFile_Docx(t *testing.T) {
	stub := &stubClient{response: `{"basics": {"fullName": "Ada"}, "sections": []}`}
	data := docxFixture(t, "Ada Lovelace", "ada@example.com")

	imp := NewWithClient(stub)
	result, err := imp.FromFile(context.Background(), "resume.docx", data)
	require.NoError(t, err)

	assert.Contains(t, result.ExtractedText, "Ada Lovelace")
	assert.Contains(t, result.ExtractedText, "ada@example.com")
}

func TestFromFile_UnsupportedFormat(t *testing.T) {
	imp := NewWithClient(&stubClient{})

	_, err := imp.FromFile(context.Background(), "resume.txt", []byte("plain text"))

	var unsupported *extract.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".txt", unsupported.Extension)
}

func TestFromFile_EmptyDocument(t *testing.T) {
	imp := NewWithClient(&stubClient{})
	data := docxFixture(t, "   ")

	_, err := imp.FromFile(context.Background(), "resume.docx", data)

	var empty *EmptyDocumentError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "resume.docx", empty.Filename)
}
