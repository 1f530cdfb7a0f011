package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/anshul755/portfolio-rag/internal/common"
)

// APIHandler serves the system endpoints: health, version, 404.
type APIHandler struct {
	config *common.Config
	logger arbor.ILogger
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(config *common.Config, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		config: config,
		logger: logger,
	}
}

// HealthHandler returns liveness status with the bound port and index name.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"port":   h.config.Server.Port,
		"index":  h.config.Index.Name,
	})
}

// VersionHandler returns version information.
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}

// NotFoundHandler handles unmatched routes with a JSON 404.
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found")
}
