package job

import (
	"context"
	"encoding/json"
	"fmt"

	"washrag/src/core/ingest"
	"washrag/src/storage/minioctrl"
	"washrag/src/storage/postgres/documentctrl"
)

const TaskTypeIngestion = "ingestion"

// IngestionPayload carries everything the worker needs to process one
// uploaded document.
type IngestionPayload struct {
	DocumentRowID int64  `json:"document_row_id"`
	FileID        string `json:"file_id"`
	Filename      string `json:"filename"`
	MinioURL      string `json:"minio_url"`
	FileType      string `json:"file_type"`
}

// IngestionTask fetches an uploaded document from object storage, runs the
// ingestion pipeline, and records the outcome on the document registry row.
type IngestionTask struct {
	documentService *documentctrl.DocumentService
	minioService    *minioctrl.MinioService
	ingestService   *ingest.Service
}

func NewIngestionTask(
	documentService *documentctrl.DocumentService,
	minioService *minioctrl.MinioService,
	ingestService *ingest.Service,
) *IngestionTask {
	return &IngestionTask{
		documentService: documentService,
		minioService:    minioService,
		ingestService:   ingestService,
	}
}

func (t *IngestionTask) HandleIngestionTask(ctx context.Context, payload json.RawMessage) error {
	var p IngestionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("failed to unmarshal ingestion payload: %w", err)
	}

	bucket, objectName := t.minioService.GetBucketAndObjectFromURL(p.MinioURL)
	if bucket == "" {
		return fmt.Errorf("invalid minio URL format: %s", p.MinioURL)
	}

	data, err := t.minioService.GetObject(ctx, bucket, objectName)
	if err != nil {
		return fmt.Errorf("failed to fetch document content: %w", err)
	}

	records, err := t.ingestService.IngestDocument(ctx, p.FileID, p.Filename, data, ingest.FileType(p.FileType))
	if err != nil {
		if statusErr := t.documentService.SetStatus(ctx, p.DocumentRowID, documentctrl.StatusFailed, 0); statusErr != nil {
			return fmt.Errorf("failed to mark document failed after %v: %w", err, statusErr)
		}
		return fmt.Errorf("failed to ingest document %s: %w", p.FileID, err)
	}

	if err := t.documentService.SetStatus(ctx, p.DocumentRowID, documentctrl.StatusIngested, len(records)); err != nil {
		return fmt.Errorf("failed to mark document ingested: %w", err)
	}

	return nil
}
