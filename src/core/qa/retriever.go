package qa

import (
	"context"
	"fmt"
	"strings"

	"washrag/src/core/textproc"
)

// DefaultK is the neighbor count used when a request does not specify one.
const DefaultK = 4

// Service orchestrates retrieval and answer synthesis. It is stateless
// between requests; all collaborators must be safe for concurrent use.
type Service struct {
	embedder  Embedder
	generator Generator
	store     VectorSearcher
	detector  *textproc.Detector
}

// NewService creates a Service from its external collaborators.
func NewService(embedder Embedder, generator Generator, store VectorSearcher, detector *textproc.Detector) *Service {
	return &Service{
		embedder:  embedder,
		generator: generator,
		store:     store,
		detector:  detector,
	}
}

// Answer runs the full retrieve-and-answer pipeline for one question.
// languageFilter may be empty; when set it is forwarded to the store
// unmodified. An empty retrieval result is not an error: it yields a
// QueryResult with a localized insufficient-information answer and no
// citations.
func (s *Service) Answer(ctx context.Context, question string, k int, languageFilter textproc.Label) (*QueryResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidRequest)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be a positive integer, got %d", ErrInvalidRequest, k)
	}
	if languageFilter != "" && !languageFilter.Valid() {
		return nil, fmt.Errorf("%w: unsupported language filter %q", ErrInvalidRequest, languageFilter)
	}

	language := s.detector.DetectQuestion(question)

	ranked, err := s.retrieve(ctx, question, k, languageFilter)
	if err != nil {
		return nil, err
	}

	if len(ranked) == 0 {
		return &QueryResult{
			Question:  question,
			Answer:    insufficientInfoAnswer(language),
			Citations: []Citation{},
			Language:  language,
		}, nil
	}

	prompt, err := BuildPrompt(question, ranked)
	if err != nil {
		return nil, err
	}

	answer, err := s.generator.Generate(ctx, SystemInstruction(language), prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	citations := ExtractCitations(answer, ranked)
	// resolve relevance scores by marker position in the ranked order the
	// prompt was built from
	for i := range citations {
		if idx := markerIndex(citations[i].Marker); idx >= 1 && idx <= len(ranked) {
			score := ranked[idx-1].RelevanceScore
			citations[i].RelevanceScore = &score
		}
	}

	return &QueryResult{
		Question:  question,
		Answer:    answer,
		Citations: citations,
		Language:  language,
	}, nil
}

// Search returns ranked neighbors for a query without generating an answer.
func (s *Service) Search(ctx context.Context, query string, k int, languageFilter textproc.Label) ([]RetrievedChunk, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidRequest)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be a positive integer, got %d", ErrInvalidRequest, k)
	}
	if languageFilter != "" && !languageFilter.Valid() {
		return nil, fmt.Errorf("%w: unsupported language filter %q", ErrInvalidRequest, languageFilter)
	}
	return s.retrieve(ctx, query, k, languageFilter)
}

func (s *Service) retrieve(ctx context.Context, query string, k int, languageFilter textproc.Label) ([]RetrievedChunk, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	neighbors, err := s.store.Query(ctx, vector, k, languageFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to query vector store: %w", err)
	}

	// the store's ranking is authoritative; keep its order
	ranked := make([]RetrievedChunk, len(neighbors))
	for i, n := range neighbors {
		ranked[i] = RetrievedChunk{
			Neighbor:       n,
			RelevanceScore: 1 - n.Distance,
		}
	}
	return ranked, nil
}
