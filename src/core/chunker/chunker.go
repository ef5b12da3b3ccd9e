// Package chunker segments normalized document text into sentence-respecting,
// token-bounded, overlapping chunks, each tagged with a language label and a
// stable identifier.
package chunker

import (
	"fmt"
	"strings"

	"washrag/src/core/textproc"
)

const (
	DefaultTargetSize = 500
	DefaultOverlap    = 50
)

// Chunk is the atomic retrievable unit of a document. ChunkID is derived
// from the owning document and the chunk position, so re-chunking identical
// input yields identical identifiers and upserts stay idempotent.
type Chunk struct {
	Text       string         `json:"text"`
	Language   textproc.Label `json:"language"`
	TokenCount int            `json:"token_count"`
	Index      int            `json:"chunk_index"`
	DocumentID string         `json:"document_id"`
	ChunkID    string         `json:"chunk_id"`
}

// Chunker accumulates sentences greedily up to a word-token target and seeds
// each new chunk with the trailing words of the previous one.
type Chunker struct {
	detector   *textproc.Detector
	targetSize int
	overlap    int
}

// New creates a Chunker. Non-positive sizes fall back to the defaults; an
// overlap of at least targetSize is a configuration error and is clamped to
// targetSize-1 instead of failing.
func New(detector *textproc.Detector, targetSize, overlap int) *Chunker {
	if targetSize <= 0 {
		targetSize = DefaultTargetSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if overlap >= targetSize {
		overlap = targetSize - 1
	}
	return &Chunker{
		detector:   detector,
		targetSize: targetSize,
		overlap:    overlap,
	}
}

// Chunk segments text into an ordered chunk sequence for the given document.
// Chunk boundaries always fall on sentence boundaries: a single sentence
// longer than the target size is emitted whole. Calling twice on identical
// input yields an identical sequence.
func (c *Chunker) Chunk(documentID, text string) []Chunk {
	sentences := textproc.SplitSentences(text)

	var chunks []Chunk
	current := ""
	currentTokens := 0

	for _, sentence := range sentences {
		sentenceTokens := textproc.CountWords(sentence)

		if currentTokens+sentenceTokens > c.targetSize && current != "" {
			chunks = append(chunks, c.close(documentID, current, currentTokens, len(chunks)))

			// seed the next chunk with the trailing words of the one just closed
			words := textproc.Words(current)
			overlap := c.overlap
			if overlap > len(words) {
				overlap = len(words)
			}
			seed := strings.Join(words[len(words)-overlap:], " ")
			if seed == "" {
				current = sentence
			} else {
				current = seed + " " + sentence
			}
			currentTokens = textproc.CountWords(current)
			continue
		}

		if current == "" {
			current = sentence
		} else {
			current += " " + sentence
		}
		currentTokens += sentenceTokens
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, c.close(documentID, current, currentTokens, len(chunks)))
	}

	return chunks
}

func (c *Chunker) close(documentID, text string, tokenCount, index int) Chunk {
	text = strings.TrimSpace(text)
	return Chunk{
		Text:       text,
		Language:   c.detector.DetectChunk(text),
		TokenCount: tokenCount,
		Index:      index,
		DocumentID: documentID,
		ChunkID:    fmt.Sprintf("%s_%d", documentID, index),
	}
}
