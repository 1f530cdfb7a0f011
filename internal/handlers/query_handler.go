package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/anshul755/portfolio-rag/internal/interfaces"
)

// QueryHandler handles question answering requests.
type QueryHandler struct {
	answerService interfaces.AnswerService
	logger        arbor.ILogger
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(answerService interfaces.AnswerService, logger arbor.ILogger) *QueryHandler {
	return &QueryHandler{
		answerService: answerService,
		logger:        logger,
	}
}

type queryRequest struct {
	Question string `json:"question"`
}

// QueryHandler handles POST /query: `{"question": "..."}`.
func (h *QueryHandler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		WriteError(w, http.StatusBadRequest, "Missing question in request body")
		return
	}

	h.logger.Info().
		Int("question_length", len(req.Question)).
		Msg("Processing query")

	result, err := h.answerService.Answer(r.Context(), req.Question)
	if err != nil {
		h.logger.Error().Err(err).Msg("Query failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
