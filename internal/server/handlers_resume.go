package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"resume-studio/internal/normalize"
	"resume-studio/internal/render"
	"resume-studio/internal/types"
	"resume-studio/internal/validate"
)

// resumeEnvelope is the document state returned by GET /api/resume.
type resumeEnvelope struct {
	ResumeData         types.ResumeData `json:"resumeData"`
	SelectedTemplateID string           `json:"selectedTemplateId"`
	IsDirty            bool             `json:"isDirty"`
	PreviewMode        bool             `json:"previewMode"`
}

func (s *Server) resumeState() resumeEnvelope {
	return resumeEnvelope{
		ResumeData:         s.store.Resume(),
		SelectedTemplateID: s.store.SelectedTemplateID(),
		IsDirty:            s.store.Dirty(),
		PreviewMode:        s.store.PreviewMode(),
	}
}

// handleGetResume returns the current document state.
func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.resumeState())
}

// handlePutResume replaces the document. The body is normalized before it is
// loaded, so legacy shapes and partial documents are accepted.
func (s *Server) handlePutResume(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	s.store.LoadResume(normalize.ResumeJSON(raw))
	s.jsonResponse(w, http.StatusOK, s.resumeState())
}

// handleResetResume restores the default document.
func (s *Server) handleResetResume(w http.ResponseWriter, _ *http.Request) {
	s.store.ResetResume()
	s.jsonResponse(w, http.StatusOK, s.resumeState())
}

// handleValidateResume returns advisory validation issues.
func (s *Server) handleValidateResume(w http.ResponseWriter, _ *http.Request) {
	resume := s.store.Resume()
	issues := validate.Resume(&resume)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"issues": issues,
		"valid":  len(issues) == 0,
	})
}

// handleScoreResume returns the completeness score.
func (s *Server) handleScoreResume(w http.ResponseWriter, _ *http.Request) {
	resume := s.store.Resume()
	s.jsonResponse(w, http.StatusOK, map[string]int{
		"score": validate.CompletenessScore(&resume),
	})
}

// handleUpdateBasics replaces the basics block.
func (s *Server) handleUpdateBasics(w http.ResponseWriter, r *http.Request) {
	var basics types.ResumeBasics
	if err := json.NewDecoder(r.Body).Decode(&basics); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	s.store.UpdateBasics(basics)
	s.jsonResponse(w, http.StatusOK, s.resumeState())
}

// handleUpdateMetadata replaces the metadata block. Values are merged over
// defaults so unknown or missing settings fall back sanely.
func (s *Server) handleUpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	resume := s.store.Resume()
	patched, err := json.Marshal(map[string]any{
		"basics":   resume.Basics,
		"sections": resume.Sections,
		"metadata": raw,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to apply metadata")
		return
	}

	s.store.UpdateMetadata(normalize.ResumeJSON(patched).Metadata)
	s.jsonResponse(w, http.StatusOK, s.resumeState())
}

// addSectionRequest is the request body for POST /api/resume/sections.
type addSectionRequest struct {
	Type string `json:"type"`
}

// handleAddSection appends a new section of the given type.
func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req addSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	sectionType := types.SectionType(req.Type)
	if !types.KnownSectionType(sectionType) {
		sectionType = types.SectionCustom
	}

	section := s.store.AddSection(sectionType)
	s.jsonResponse(w, http.StatusCreated, section)
}

// handleUpdateSection replaces a section's settings by id.
func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	var section types.ResumeSection
	if err := json.NewDecoder(r.Body).Decode(&section); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	section.ID = r.PathValue("id")
	if err := s.store.UpdateSection(section); err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, s.resumeState())
}

// handleRemoveSection deletes a section by id.
func (s *Server) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	if err := s.store.RemoveSection(r.PathValue("id")); err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, s.resumeState())
}

// reorderRequest is the request body for reorder operations.
type reorderRequest struct {
	ToIndex int `json:"toIndex"`
}

// handleReorderSection moves a section to a new position.
func (s *Server) handleReorderSection(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if err := s.store.ReorderSection(r.PathValue("id"), req.ToIndex); err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, s.resumeState())
}

// handleAddItem appends a blank item to a section.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.store.AddItem(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, item)
}

// handleUpdateItem replaces an item within a section.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var item types.ResumeItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	item.ID = r.PathValue("item_id")
	if err := s.store.UpdateItem(r.PathValue("id"), item); err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, s.resumeState())
}

// handleRemoveItem deletes an item from a section.
func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.RemoveItem(r.PathValue("id"), r.PathValue("item_id")); err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, s.resumeState())
}

// handleReorderItem moves an item within its section.
func (s *Server) handleReorderItem(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if err := s.store.ReorderItem(r.PathValue("id"), r.PathValue("item_id"), req.ToIndex); err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, s.resumeState())
}

// handleListTemplates returns the template catalogue.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": render.Templates(),
		"selected":  s.store.SelectedTemplateID(),
	})
}

// handleSetTemplate selects the active template.
func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.SetTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	if !render.Known(req.TemplateID) {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown template: %s", req.TemplateID))
		return
	}

	s.store.SetTemplate(req.TemplateID)
	s.jsonResponse(w, http.StatusOK, map[string]string{"selected": s.store.SelectedTemplateID()})
}

// previewModeRequest is the request body for PUT /api/preview-mode.
type previewModeRequest struct {
	Enabled bool `json:"enabled"`
}

// handleSetPreviewMode toggles preview mode. UI state only, the document is
// not marked dirty.
func (s *Server) handleSetPreviewMode(w http.ResponseWriter, r *http.Request) {
	var req previewModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	s.store.SetPreviewMode(req.Enabled)
	s.jsonResponse(w, http.StatusOK, map[string]bool{"previewMode": s.store.PreviewMode()})
}

// handlePreview renders the stored resume to HTML with the selected template.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	templateID := r.URL.Query().Get("template")
	if templateID == "" {
		templateID = s.store.SelectedTemplateID()
	}

	html, err := s.renderer.HTML(s.store.Resume(), templateID)
	if err != nil {
		s.errorResponse(w, httpStatus(err), fmt.Sprintf("Template rendering failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, html)
}
