package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"washrag/src/core/qa"
	"washrag/src/core/textproc"
)

type queryRequest struct {
	Question       string `json:"question" binding:"required"`
	K              int    `json:"k"`
	LanguageFilter string `json:"language_filter"`
}

type queryResponse struct {
	Question       string         `json:"question"`
	Answer         string         `json:"answer"`
	Citations      []qa.Citation  `json:"citations"`
	Language       textproc.Label `json:"language"`
	ProcessingTime float64        `json:"processing_time"`
}

// Query answers a natural-language question over the indexed corpus,
// returning a cited answer.
func (h *Handler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}
	if req.K == 0 {
		req.K = h.defaultK
	}

	start := time.Now()
	result, err := h.qaService.Answer(c.Request.Context(), req.Question, req.K, textproc.Label(req.LanguageFilter))
	if err != nil {
		sendError(c, http.StatusBadGateway, err)
		return
	}

	sendJSON(c, http.StatusOK, queryResponse{
		Question:       result.Question,
		Answer:         result.Answer,
		Citations:      result.Citations,
		Language:       result.Language,
		ProcessingTime: time.Since(start).Seconds(),
	})
}

type searchResult struct {
	ChunkID        string         `json:"chunk_id"`
	Text           string         `json:"text"`
	Source         string         `json:"source"`
	Language       textproc.Label `json:"language"`
	Distance       float64        `json:"distance"`
	RelevanceScore float64        `json:"relevance_score"`
}

// Search returns ranked similar chunks without generating an answer.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		sendError(c, http.StatusBadRequest, fmt.Errorf("q is required"))
		return
	}

	k := h.searchK
	if kParam := c.Query("k"); kParam != "" {
		if _, err := fmt.Sscanf(kParam, "%d", &k); err != nil {
			sendError(c, http.StatusBadRequest, fmt.Errorf("invalid k parameter"))
			return
		}
	}

	ranked, err := h.qaService.Search(c.Request.Context(), query, k, textproc.Label(c.Query("language")))
	if err != nil {
		sendError(c, http.StatusBadGateway, err)
		return
	}

	results := make([]searchResult, len(ranked))
	for i, chunk := range ranked {
		results[i] = searchResult{
			ChunkID:        chunk.ChunkID,
			Text:           chunk.Text,
			Source:         chunk.SourceFile,
			Language:       chunk.Language,
			Distance:       chunk.Distance,
			RelevanceScore: chunk.RelevanceScore,
		}
	}

	sendJSON(c, http.StatusOK, gin.H{
		"query":   query,
		"results": results,
	})
}
