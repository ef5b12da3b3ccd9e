// Package weaviate adapts the Weaviate client to the chunk storage contract:
// idempotent vector upsert keyed on chunk id and near-vector retrieval with
// an optional language filter.
package weaviate

import (
	"context"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"washrag/src/core/ingest"
	"washrag/src/core/qa"
	"washrag/src/core/textproc"
)

// ClassName is the single Weaviate class holding all document chunks.
const ClassName = "DocumentChunk"

// SDK encapsulates all Weaviate operations
type SDK struct {
	client *weaviate.Client
}

// NewSDK creates a new instance of SDK
func NewSDK(client *weaviate.Client) *SDK {
	return &SDK{
		client: client,
	}
}

// EnsureSchema creates the DocumentChunk class if it does not exist yet.
// Vectorizer is "none": embeddings are supplied by the caller.
func (w *SDK) EnsureSchema(ctx context.Context) error {
	exists, err := w.classExists(ctx, ClassName)
	if err != nil {
		return fmt.Errorf("failed to check if class exists: %v", err)
	}
	if exists {
		return nil
	}

	class := &models.Class{
		Class: ClassName,
		Properties: []*models.Property{
			{Name: "chunkId", DataType: []string{"string"}},
			{Name: "documentId", DataType: []string{"string"}},
			{Name: "chunkIndex", DataType: []string{"int"}},
			{Name: "text", DataType: []string{"text"}},
			{Name: "language", DataType: []string{"string"}},
			{Name: "sourceFile", DataType: []string{"string"}},
			{Name: "tokenCount", DataType: []string{"int"}},
		},
		Vectorizer: "none",
	}

	if err := w.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return fmt.Errorf("failed to create Weaviate class: %v", err)
	}

	return nil
}

// classExists checks if a class exists in the schema
func (w *SDK) classExists(ctx context.Context, className string) (bool, error) {
	schema, err := w.client.Schema().Getter().Do(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get schema: %v", err)
	}

	for _, class := range schema.Classes {
		if class.Class == className {
			return true, nil
		}
	}

	return false, nil
}

// objectID derives a deterministic Weaviate object UUID from a chunk id, so
// re-ingesting the same document overwrites its existing vectors.
func objectID(chunkID string) strfmt.UUID {
	return strfmt.UUID(uuid.NewSHA1(uuid.NameSpaceURL, []byte("washrag/chunk/"+chunkID)).String())
}

// Upsert writes chunk records and their vectors in one batch. vectors must
// be positionally aligned with records.
func (w *SDK) Upsert(ctx context.Context, records []ingest.Record, vectors [][]float32) error {
	if len(records) != len(vectors) {
		return fmt.Errorf("got %d records but %d vectors", len(records), len(vectors))
	}
	if len(records) == 0 {
		return nil
	}

	objs := make([]*models.Object, len(records))
	for i, rec := range records {
		objs[i] = &models.Object{
			ID:    objectID(rec.ChunkID),
			Class: ClassName,
			Properties: map[string]interface{}{
				"chunkId":    rec.ChunkID,
				"documentId": rec.DocumentID,
				"chunkIndex": rec.Index,
				"text":       rec.Text,
				"language":   string(rec.Language),
				"sourceFile": rec.SourceFile,
				"tokenCount": rec.TokenCount,
			},
			Vector: vectors[i],
		}
	}

	resp, err := w.client.Batch().ObjectsBatcher().WithObjects(objs...).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to batch upsert vectors: %v", err)
	}
	if len(resp) == 0 {
		return fmt.Errorf("batch operation returned no results")
	}
	for _, obj := range resp {
		if obj.Result != nil && obj.Result.Errors != nil && len(obj.Result.Errors.Error) > 0 {
			return fmt.Errorf("failed to upsert object %s: %s", obj.ID, obj.Result.Errors.Error[0].Message)
		}
	}

	return nil
}

// Query performs near-vector search and returns up to k neighbors in the
// store's similarity order. A non-empty language restricts results to
// chunks of that language via a where filter.
func (w *SDK) Query(ctx context.Context, vector []float32, k int, language textproc.Label) ([]qa.Neighbor, error) {
	fields := []graphql.Field{
		{Name: "chunkId"},
		{Name: "text"},
		{Name: "language"},
		{Name: "sourceFile"},
		{Name: "_additional { id distance }"},
	}

	nearVector := w.client.GraphQL().NearVectorArgBuilder().WithVector(vector)

	query := w.client.GraphQL().Get().
		WithClassName(ClassName).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(k)

	if language != "" {
		where := filters.Where().
			WithPath([]string{"language"}).
			WithOperator(filters.Equal).
			WithValueString(string(language))
		query = query.WithWhere(where)
	}

	result, err := query.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query vectors: %v", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("failed to query vectors: %s", result.Errors[0].Message)
	}

	var neighbors []qa.Neighbor
	if data, ok := result.Data["Get"].(map[string]interface{}); ok {
		if objects, ok := data[ClassName].([]interface{}); ok {
			for _, obj := range objects {
				objMap, ok := obj.(map[string]interface{})
				if !ok {
					continue
				}

				neighbor := qa.Neighbor{
					ChunkID:    stringProp(objMap, "chunkId"),
					Text:       stringProp(objMap, "text"),
					SourceFile: stringProp(objMap, "sourceFile"),
					Language:   textproc.Label(stringProp(objMap, "language")),
				}
				if additional, ok := objMap["_additional"].(map[string]interface{}); ok {
					if distance, ok := additional["distance"].(float64); ok {
						neighbor.Distance = distance
					}
				}
				neighbors = append(neighbors, neighbor)
			}
		}
	}

	return neighbors, nil
}

// Ping reports whether Weaviate is reachable and ready.
func (w *SDK) Ping(ctx context.Context) bool {
	ready, err := w.client.Misc().ReadyChecker().Do(ctx)
	return err == nil && ready
}

func stringProp(props map[string]interface{}, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}
