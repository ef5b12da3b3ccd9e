// Package ingest turns raw document bytes into indexed chunks: extraction,
// normalization, language-aware chunking, embedding, and vector upsert.
// Ingestion of one document is independent of any other and may run
// concurrently; upserts are keyed by chunk id and idempotent.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"washrag/src/core/chunker"
	"washrag/src/core/textproc"
	"washrag/src/infrastructure/log"
)

// Record is one processed chunk plus its originating file, the unit that is
// persisted in the chunk manifest and indexed in the vector store.
type Record struct {
	chunker.Chunk
	SourceFile string `json:"source_file"`
}

// Embedder is the batch embedding capability; the returned vectors must be
// in input order.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorUpserter stores chunk vectors keyed by chunk id. Upserting the same
// chunk id twice overwrites.
type VectorUpserter interface {
	Upsert(ctx context.Context, records []Record, vectors [][]float32) error
}

// ChunkSink persists the processed chunk manifest as a JSON array.
type ChunkSink interface {
	PutChunks(ctx context.Context, documentID string, payload []byte) error
}

// Service runs the ingestion pipeline for single documents.
type Service struct {
	chunker  *chunker.Chunker
	embedder Embedder
	store    VectorUpserter
	sink     ChunkSink
}

// NewService creates a Service. sink may be nil to skip manifest persistence.
func NewService(c *chunker.Chunker, embedder Embedder, store VectorUpserter, sink ChunkSink) *Service {
	return &Service{
		chunker:  c,
		embedder: embedder,
		store:    store,
		sink:     sink,
	}
}

// DocumentID derives the stable document identifier from a file name: the
// base name without its extension. Re-ingesting the same file yields the
// same identifier and therefore the same chunk ids.
func DocumentID(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IngestDocument extracts, normalizes, chunks, embeds and indexes one
// document. A document that yields no text produces zero chunks and no
// error. The returned records reflect exactly what was indexed.
func (s *Service) IngestDocument(ctx context.Context, documentID, filename string, data []byte, fileType FileType) ([]Record, error) {
	raw, err := ExtractText(data, fileType)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", filename, err)
	}

	text := textproc.Normalize(raw)
	if text == "" {
		log.Info("document yielded no text, skipping", "filename", filename)
		return nil, nil
	}

	chunks := s.chunker.Chunk(documentID, text)
	if len(chunks) == 0 {
		return nil, nil
	}

	records := make([]Record, len(chunks))
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		records[i] = Record{Chunk: chunk, SourceFile: filename}
		texts[i] = chunk.Text
	}

	if s.sink != nil {
		payload, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("failed to encode chunk manifest: %w", err)
		}
		if err := s.sink.PutChunks(ctx, documentID, payload); err != nil {
			return nil, fmt.Errorf("failed to persist chunk manifest: %w", err)
		}
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vectors) != len(records) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(records))
	}

	if err := s.store.Upsert(ctx, records, vectors); err != nil {
		return nil, fmt.Errorf("failed to upsert chunks: %w", err)
	}

	log.Info("document ingested", "document_id", documentID, "chunks", len(records))
	return records, nil
}
