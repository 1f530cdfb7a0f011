package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/anshul755/portfolio-rag/internal/interfaces"
)

// maxUploadBytes caps in-memory parsing of multipart uploads; larger bodies
// spill to temp files which net/http removes after the request.
const maxUploadBytes = 32 << 20

// IngestHandler handles document upload requests.
type IngestHandler struct {
	ingestService interfaces.IngestService
	logger        arbor.ILogger
}

// NewIngestHandler creates a new ingest handler.
func NewIngestHandler(ingestService interfaces.IngestService, logger arbor.ILogger) *IngestHandler {
	return &IngestHandler{
		ingestService: ingestService,
		logger:        logger,
	}
}

// IngestHandler handles POST /ingest: a multipart form with a `file` field
// holding a PDF or plain-text document.
func (h *IngestHandler) IngestHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read uploaded file")
		WriteError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" && strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		mimeType = "application/pdf"
	}

	h.logger.Info().
		Str("filename", header.Filename).
		Str("mime_type", mimeType).
		Int("size", len(data)).
		Msg("Ingesting file")

	chunks, err := h.ingestService.Ingest(r.Context(), data, mimeType)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Ingest failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ingested",
		"chunks": chunks,
	})
}
