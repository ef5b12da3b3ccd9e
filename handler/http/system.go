package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ComponentStatus represents the status of a system component
type ComponentStatus string

const (
	StatusUp   ComponentStatus = "up"
	StatusDown ComponentStatus = "down"
)

// HealthStatus represents system health status
type HealthStatus struct {
	Status     string `json:"status"`
	Components struct {
		Postgres ComponentStatus `json:"postgres"`
		Weaviate ComponentStatus `json:"weaviate"`
		Ollama   ComponentStatus `json:"ollama"`
	} `json:"components"`
}

// CheckHealth reports reachability of the external collaborators.
func (h *Handler) CheckHealth(c *gin.Context) {
	ctx := c.Request.Context()

	status := HealthStatus{Status: "ok"}
	status.Components.Postgres = componentStatus(h.documentService.Ping(ctx))
	status.Components.Weaviate = componentStatus(h.weaviatePing.Ping(ctx))
	status.Components.Ollama = componentStatus(h.ollamaPing.Ping(ctx))

	if status.Components.Postgres == StatusDown ||
		status.Components.Weaviate == StatusDown ||
		status.Components.Ollama == StatusDown {
		status.Status = "degraded"
	}

	sendJSON(c, http.StatusOK, status)
}

func componentStatus(up bool) ComponentStatus {
	if up {
		return StatusUp
	}
	return StatusDown
}
