package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// ImproveRequest is the request body for POST /api/ai/improve.
// ResumeData is kept as raw JSON: it may be in a legacy shape and is
// normalized before being sent to the model.
type ImproveRequest struct {
	ResumeData      json.RawMessage `json:"resumeData" validate:"required"`
	JobDescription  string          `json:"jobDescription,omitempty"`
	TargetRole      string          `json:"targetRole,omitempty"`
	ImprovementType string          `json:"improvementType,omitempty" validate:"omitempty,oneof=rewrite tailor shorten"`
}

// ImproveResponse is the success response for POST /api/ai/improve.
type ImproveResponse struct {
	ImprovedData ResumeData `json:"improvedData"`
	Suggestions  []string   `json:"suggestions"`
}

// ParseResponse is the success response for POST /api/parse/pdf.
// ExtractedText carries the first 500 characters of the raw extraction
// for client-side diagnostics.
type ParseResponse struct {
	Success       bool       `json:"success"`
	Data          ResumeData `json:"data"`
	ExtractedText string     `json:"extractedText"`
	Warnings      []string   `json:"warnings,omitempty"`
}

// ExportRequest is the request body for POST /api/export/pdf.
type ExportRequest struct {
	HTML     string `json:"html" validate:"required"`
	PageSize string `json:"pageSize,omitempty" validate:"omitempty,oneof=A4 Letter"`
}

// SetTemplateRequest is the request body for PUT /api/template.
type SetTemplateRequest struct {
	TemplateID string `json:"templateId" validate:"required"`
}

// ErrorResponse is the error body shared by all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Validate validates the ImproveRequest using the validator.
func (r *ImproveRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ExportRequest using the validator.
func (r *ExportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetTemplateRequest using the validator.
func (r *SetTemplateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
