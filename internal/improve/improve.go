// Package improve rewrites resume content with the LLM, optionally tailored
// to a job description. The model's textual response is scanned for the
// first top-level JSON object; a trailing SUGGESTIONS: block, when present,
// becomes advisory notes for the user.
package improve

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"resume-studio/internal/llm"
	"resume-studio/internal/normalize"
	"resume-studio/internal/prompts"
	"resume-studio/internal/types"
)

// SuggestionsMarker starts the optional free-text block after the JSON object.
const SuggestionsMarker = "SUGGESTIONS:"

// APICallError indicates a failure calling the LLM provider.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError indicates no parseable JSON object was found in the response.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Request carries the inputs for one improvement call.
type Request struct {
	ResumeData      json.RawMessage
	JobDescription  string
	TargetRole      string
	ImprovementType string
}

// Result is the parsed outcome: the improved resume plus any suggestions the
// model appended. The caller decides whether the result replaces the store's
// document; nothing is applied here.
type Result struct {
	ImprovedData types.ResumeData
	Suggestions  []string
}

// Improver drives improvement calls. The LLM client factory is injectable
// for tests.
type Improver struct {
	newClient func(ctx context.Context) (llm.Client, error)
}

// New creates an Improver using the given provider API key.
func New(apiKey string) *Improver {
	return &Improver{
		newClient: func(ctx context.Context) (llm.Client, error) {
			return llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
		},
	}
}

// NewWithClient creates an Improver backed by a fixed client. Used in tests.
func NewWithClient(client llm.Client) *Improver {
	return &Improver{
		newClient: func(context.Context) (llm.Client, error) { return client, nil },
	}
}

// Improve runs one content-improvement call. Failure to find or parse JSON
// in the response is a hard failure of the whole operation; there is no
// partial application.
func (imp *Improver) Improve(ctx context.Context, req Request) (*Result, error) {
	// Normalize the incoming document first so the model always sees the
	// canonical shape, even when the client sent a legacy one.
	resume := normalize.ResumeJSON(req.ResumeData)
	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return nil, &ParseError{Message: "failed to encode resume", Cause: err}
	}

	improvementType := req.ImprovementType
	if improvementType == "" {
		improvementType = "rewrite"
	}

	prompt := prompts.Format(prompts.MustGet("improve.json", "improve-resume"), map[string]string{
		"ResumeJSON":      string(resumeJSON),
		"JobDescription":  req.JobDescription,
		"TargetRole":      req.TargetRole,
		"ImprovementType": improvementType,
	})

	client, err := imp.newClient(ctx)
	if err != nil {
		return nil, &APICallError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	response, err := client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate improved resume", Cause: err}
	}

	return ParseResponse(response)
}

// ParseResponse extracts the improved resume and suggestions from a raw
// model response.
func ParseResponse(response string) (*Result, error) {
	cleaned := llm.CleanJSONBlock(response)

	object, ok := llm.ExtractJSONObject(cleaned)
	if !ok {
		return nil, &ParseError{Message: "no JSON object found in model response"}
	}

	var decoded any
	if err := json.Unmarshal([]byte(object), &decoded); err != nil {
		return nil, &ParseError{Message: "model response is not valid JSON", Cause: err}
	}

	// Suggestions come from the raw response: fence stripping cuts at the
	// closing fence and would drop a block placed after it.
	return &Result{
		ImprovedData: normalize.Resume(decoded),
		Suggestions:  parseSuggestions(response),
	}, nil
}

// parseSuggestions splits the lines of the trailing SUGGESTIONS: block,
// dropping empties and leading list markers.
func parseSuggestions(text string) []string {
	idx := strings.Index(text, SuggestionsMarker)
	if idx == -1 {
		return nil
	}

	var suggestions []string
	for _, line := range strings.Split(text[idx+len(SuggestionsMarker):], "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "• ")
		if line != "" {
			suggestions = append(suggestions, line)
		}
	}
	return suggestions
}
