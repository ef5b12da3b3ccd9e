// Package qa implements the question answering pipeline: question language
// detection, similarity retrieval through an external vector store, prompt
// construction, and citation extraction over the generated answer.
package qa

import (
	"context"
	"errors"

	"washrag/src/core/textproc"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
)

// Embedder turns text into vectors. EmbedBatch must be order-preserving and
// equivalent to independent Embed calls.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces text from a system instruction and a prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Neighbor is one ranked result returned by the vector store. Distance is
// cosine distance, lower is closer.
type Neighbor struct {
	ChunkID    string
	Text       string
	SourceFile string
	Language   textproc.Label
	Distance   float64
}

// VectorSearcher queries the external vector store. An empty language means
// no filter; a non-empty language is forwarded to the store unmodified.
type VectorSearcher interface {
	Query(ctx context.Context, vector []float32, k int, language textproc.Label) ([]Neighbor, error)
}

// RetrievedChunk is a Neighbor plus its derived relevance score.
type RetrievedChunk struct {
	Neighbor
	RelevanceScore float64
}

// Citation links a marker in the generated answer back to its source chunk.
// RelevanceScore is nil when the marker could not be matched to a retrieved
// chunk position.
type Citation struct {
	Marker         string         `json:"id"`
	Text           string         `json:"text"`
	Source         string         `json:"source"`
	Language       textproc.Label `json:"language"`
	RelevanceScore *float64       `json:"relevance_score,omitempty"`
}

// QueryResult is the outcome of one question, discarded after the response.
type QueryResult struct {
	Question  string         `json:"question"`
	Answer    string         `json:"answer"`
	Citations []Citation     `json:"citations"`
	Language  textproc.Label `json:"language"`
}
