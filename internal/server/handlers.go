package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"unicode/utf8"

	"resume-studio/internal/improve"
	"resume-studio/internal/pdfexport"
	"resume-studio/internal/types"
)

const extractedTextPreviewLimit = 500

// handleImprove runs the resume through the LLM and returns the improved
// document alongside any suggestions the model produced.
func (s *Server) handleImprove(w http.ResponseWriter, r *http.Request) {
	var req types.ImproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	if s.apiKey == "" {
		s.errorResponse(w, http.StatusInternalServerError, "GEMINI_API_KEY is not configured")
		return
	}

	result, err := s.improver.Improve(r.Context(), improve.Request{
		ResumeData:      req.ResumeData,
		JobDescription:  req.JobDescription,
		TargetRole:      req.TargetRole,
		ImprovementType: req.ImprovementType,
	})
	if err != nil {
		log.Printf("[IMPROVE] Failed: %v", err)
		s.errorResponse(w, httpStatus(err), fmt.Sprintf("Improvement failed: %v", err))
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ImproveResponse{
		ImprovedData: result.ImprovedData,
		Suggestions:  result.Suggestions,
	})
}

// handleParsePDF accepts a multipart upload and imports it into resume data.
func (s *Server) handleParsePDF(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing 'file' field in form data")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	if s.apiKey == "" {
		s.errorResponse(w, http.StatusInternalServerError, "GEMINI_API_KEY is not configured")
		return
	}

	result, err := s.importer.FromFile(r.Context(), header.Filename, data)
	if err != nil {
		log.Printf("[PARSE] Failed for %s: %v", header.Filename, err)
		s.errorResponse(w, httpStatus(err), fmt.Sprintf("Parse failed: %v", err))
		return
	}

	preview := truncatePreview(result.ExtractedText)

	s.jsonResponse(w, http.StatusOK, types.ParseResponse{
		Success:       true,
		Data:          result.Data,
		ExtractedText: preview,
		Warnings:      result.Warnings,
	})
}

// handleExportPDF renders caller-supplied HTML to a PDF download.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	var req types.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	pdfBytes, err := pdfexport.HTMLToPDF(r.Context(), req.HTML, req.PageSize)
	if err != nil {
		log.Printf("[EXPORT] Failed: %v", err)
		s.errorResponse(w, httpStatus(err), fmt.Sprintf("PDF generation failed: %v", err))
		return
	}

	s.writePDF(w, pdfBytes)
}

// handleExportResume renders the stored resume with the selected template
// and returns the PDF. Convenience path for clients that do not render HTML
// themselves.
func (s *Server) handleExportResume(w http.ResponseWriter, r *http.Request) {
	resume := s.store.Resume()

	html, err := s.renderer.HTML(resume, s.store.SelectedTemplateID())
	if err != nil {
		log.Printf("[EXPORT] Render failed: %v", err)
		s.errorResponse(w, httpStatus(err), fmt.Sprintf("Template rendering failed: %v", err))
		return
	}

	pdfBytes, err := pdfexport.HTMLToPDF(r.Context(), html, resume.Metadata.PageSize)
	if err != nil {
		log.Printf("[EXPORT] Failed: %v", err)
		s.errorResponse(w, httpStatus(err), fmt.Sprintf("PDF generation failed: %v", err))
		return
	}

	s.writePDF(w, pdfBytes)
}

// truncatePreview caps the extracted-text preview, backing up to a rune
// boundary so a multi-byte character is never cut in half.
func truncatePreview(text string) string {
	if len(text) <= extractedTextPreviewLimit {
		return text
	}
	cut := extractedTextPreviewLimit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func (s *Server) writePDF(w http.ResponseWriter, pdfBytes []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfBytes); err != nil {
		log.Printf("Error writing PDF response: %v", err)
	}
}
