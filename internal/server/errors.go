package server

import (
	"errors"
	"net/http"

	"resume-studio/internal/extract"
	"resume-studio/internal/importer"
	"resume-studio/internal/improve"
	"resume-studio/internal/pdfexport"
	"resume-studio/internal/render"
	"resume-studio/internal/store"
)

// httpStatus maps domain errors to HTTP status codes.
func httpStatus(err error) int {
	var notFound *store.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}

	var unsupported *extract.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return http.StatusBadRequest
	}

	var emptyDoc *importer.EmptyDocumentError
	if errors.As(err, &emptyDoc) {
		return http.StatusBadRequest
	}

	var extraction *extract.ExtractionError
	if errors.As(err, &extraction) {
		return http.StatusUnprocessableEntity
	}

	// Upstream provider failures and unparseable model responses are logged
	// and surfaced as 500 with the underlying message attached.
	var importAPI *importer.APICallError
	var improveAPI *improve.APICallError
	if errors.As(err, &importAPI) || errors.As(err, &improveAPI) {
		return http.StatusInternalServerError
	}

	var importParse *importer.ParseError
	var improveParse *improve.ParseError
	if errors.As(err, &importParse) || errors.As(err, &improveParse) {
		return http.StatusInternalServerError
	}

	var tmpl *render.TemplateError
	if errors.As(err, &tmpl) {
		return http.StatusInternalServerError
	}

	var renderErr *pdfexport.RenderError
	if errors.As(err, &renderErr) {
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}
