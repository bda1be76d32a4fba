// Package importer turns an uploaded resume file into canonical ResumeData:
// text extraction, LLM structuring, schema diagnostics, normalization and
// advisory validation.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"resume-studio/internal/extract"
	"resume-studio/internal/llm"
	"resume-studio/internal/normalize"
	"resume-studio/internal/prompts"
	"resume-studio/internal/schemas"
	"resume-studio/internal/types"
	"resume-studio/internal/validate"
)

// Result is the outcome of a successful import. Warnings collect schema
// diagnostics and validator issues; they never fail the import.
type Result struct {
	Data          types.ResumeData
	ExtractedText string
	Warnings      []string
}

// Importer drives the import pipeline. The LLM client factory is injectable
// for tests.
type Importer struct {
	newClient func(ctx context.Context) (llm.Client, error)
}

// New creates an Importer using the given provider API key.
func New(apiKey string) *Importer {
	return &Importer{
		newClient: func(ctx context.Context) (llm.Client, error) {
			return llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
		},
	}
}

// NewWithClient creates an Importer backed by a fixed client. Used in tests.
func NewWithClient(client llm.Client) *Importer {
	return &Importer{
		newClient: func(context.Context) (llm.Client, error) { return client, nil },
	}
}

// FromFile extracts text from an uploaded resume file, structures it with
// the LLM and normalizes the result. The returned resume is always
// structurally valid; problems the validator found are reported as warnings.
func (imp *Importer) FromFile(ctx context.Context, filename string, data []byte) (*Result, error) {
	text, err := extract.Text(filename, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyDocumentError{Filename: filename}
	}

	return imp.FromText(ctx, text)
}

// FromText structures already-extracted resume text.
func (imp *Importer) FromText(ctx context.Context, text string) (*Result, error) {
	client, err := imp.newClient(ctx)
	if err != nil {
		return nil, &APICallError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	prompt := prompts.Format(prompts.MustGet("parsing.json", "structure-resume"), map[string]string{
		"ResumeText": text,
	})

	response, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "failed to structure resume text", Cause: err}
	}

	// GenerateJSON already strips code fences; anything left must be JSON.
	raw := []byte(llm.CleanJSONBlock(response))
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &ParseError{Message: "model response is not valid JSON", Cause: err}
	}

	var warnings []string
	warnings = append(warnings, schemas.WarningStrings(schemas.DiagnoseResume(raw))...)

	resume := normalize.Resume(decoded)
	for _, issue := range validate.Resume(&resume) {
		warnings = append(warnings, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	if len(warnings) > 0 {
		log.Printf("[import] %d validation warning(s) on imported resume", len(warnings))
	}

	return &Result{
		Data:          resume,
		ExtractedText: text,
		Warnings:      warnings,
	}, nil
}
