package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"washrag/src/core/ingest"
	"washrag/src/infrastructure/job"
	"washrag/src/storage/minioctrl"
)

// UploadDocument accepts a PDF or HTML file, stores the raw bytes, registers
// the document, and enqueues an ingestion job. Processing is asynchronous;
// the response carries the job id to poll.
func (h *Handler) UploadDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		sendError(c, http.StatusBadRequest, fmt.Errorf("no file uploaded"))
		return
	}
	defer file.Close()

	fileType, err := ingest.FileTypeFromName(header.Filename)
	if err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		sendError(c, http.StatusInternalServerError, fmt.Errorf("failed to read file"))
		return
	}

	// Object name derives from the stable file id so re-uploads overwrite.
	fileID := ingest.DocumentID(header.Filename)
	objectName := header.Filename
	if err := h.minioService.PutObject(c.Request.Context(), minioctrl.DocumentsBucket, objectName, fileBytes, ""); err != nil {
		sendError(c, http.StatusInternalServerError, fmt.Errorf("failed to store file"))
		return
	}

	doc, err := h.documentService.Upsert(
		c.Request.Context(),
		fileID,
		header.Filename,
		fmt.Sprintf("%s/%s", minioctrl.DocumentsBucket, objectName),
	)
	if err != nil {
		sendError(c, http.StatusInternalServerError, fmt.Errorf("failed to register document"))
		return
	}

	payload, err := json.Marshal(job.IngestionPayload{
		DocumentRowID: doc.ID,
		FileID:        doc.FileID,
		Filename:      doc.Filename,
		MinioURL:      doc.MinioURL,
		FileType:      string(fileType),
	})
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}

	queued, err := h.jobService.EnqueueJob(c.Request.Context(), job.TaskTypeIngestion, payload)
	if err != nil {
		sendError(c, http.StatusInternalServerError, fmt.Errorf("failed to enqueue ingestion"))
		return
	}

	sendJSON(c, http.StatusAccepted, gin.H{
		"id":       doc.ID,
		"file_id":  doc.FileID,
		"filename": doc.Filename,
		"status":   doc.Status,
		"job_id":   queued.ID,
	})
}

// ListDocuments returns registered documents with their ingestion state.
func (h *Handler) ListDocuments(c *gin.Context) {
	limit := 10
	offset := 0

	if limitParam := c.Query("limit"); limitParam != "" {
		if _, err := fmt.Sscanf(limitParam, "%d", &limit); err != nil {
			sendError(c, http.StatusBadRequest, fmt.Errorf("invalid limit parameter"))
			return
		}
	}

	if offsetParam := c.Query("offset"); offsetParam != "" {
		if _, err := fmt.Sscanf(offsetParam, "%d", &offset); err != nil {
			sendError(c, http.StatusBadRequest, fmt.Errorf("invalid offset parameter"))
			return
		}
	}

	docs, err := h.documentService.List(c.Request.Context(), limit, offset)
	if err != nil {
		sendError(c, http.StatusInternalServerError, fmt.Errorf("failed to list documents"))
		return
	}

	sendJSON(c, http.StatusOK, gin.H{
		"documents": docs,
		"pagination": gin.H{
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GetJob returns the status of a background job.
func (h *Handler) GetJob(c *gin.Context) {
	var id int
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &id); err != nil {
		sendError(c, http.StatusBadRequest, fmt.Errorf("invalid job id"))
		return
	}

	j, err := h.jobService.GetJob(c.Request.Context(), id)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}
	if j == nil {
		sendError(c, http.StatusNotFound, fmt.Errorf("job not found: %d", id))
		return
	}

	sendJSON(c, http.StatusOK, j)
}
