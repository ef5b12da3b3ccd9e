package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"washrag/src/core/ingest"
	"washrag/src/core/qa"
	"washrag/src/infrastructure/job"
	"washrag/src/storage/minioctrl"
	"washrag/src/storage/postgres/documentctrl"
)

// Pinger reports reachability of an external component.
type Pinger interface {
	Ping(ctx context.Context) bool
}

type Handler struct {
	qaService       *qa.Service
	documentService *documentctrl.DocumentService
	minioService    *minioctrl.MinioService
	jobService      *job.JobService
	ollamaPing      Pinger
	weaviatePing    Pinger
	defaultK        int
	searchK         int
}

func NewHandler(
	qaService *qa.Service,
	documentService *documentctrl.DocumentService,
	minioService *minioctrl.MinioService,
	jobService *job.JobService,
	ollamaPing Pinger,
	weaviatePing Pinger,
	defaultK int,
	searchK int,
) *Handler {
	if defaultK <= 0 {
		defaultK = qa.DefaultK
	}
	if searchK <= 0 {
		searchK = 10
	}
	return &Handler{
		qaService:       qaService,
		documentService: documentService,
		minioService:    minioService,
		jobService:      jobService,
		ollamaPing:      ollamaPing,
		weaviatePing:    weaviatePing,
		defaultK:        defaultK,
		searchK:         searchK,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	// Query routes
	api.POST("/query", h.Query)
	api.GET("/search", h.Search)

	// Document routes
	api.POST("/documents", h.UploadDocument)
	api.GET("/documents", h.ListDocuments)

	// Job routes
	api.GET("/jobs/:id", h.GetJob)

	// System routes
	api.GET("/health", h.CheckHealth)
}

// Common error response structure
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func sendError(c *gin.Context, status int, err error) {
	var code string
	switch {
	case errors.Is(err, qa.ErrInvalidRequest):
		code = "INVALID_REQUEST"
		status = http.StatusBadRequest
	case errors.Is(err, ingest.ErrUnsupportedFileType):
		code = "UNSUPPORTED_FILE_TYPE"
		status = http.StatusBadRequest
	case status == http.StatusBadGateway:
		code = "UPSTREAM_ERROR"
	case status == http.StatusBadRequest:
		code = "INVALID_REQUEST"
	case status == http.StatusNotFound:
		code = "NOT_FOUND"
	default:
		code = "INTERNAL_ERROR"
		status = http.StatusInternalServerError
	}

	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func sendJSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
