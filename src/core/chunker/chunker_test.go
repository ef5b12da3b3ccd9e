package chunker_test

import (
	"fmt"
	"reflect"
	"testing"

	"washrag/src/core/chunker"
	"washrag/src/core/textproc"
)

func newChunker(targetSize, overlap int) *chunker.Chunker {
	return chunker.New(textproc.NewDetector(), targetSize, overlap)
}

func TestChunkBilingualDocument(t *testing.T) {
	c := newChunker(5, 1)
	text := "Water access improved. এই প্রতিবেদনে পানির মান পরীক্ষা করা হয়েছে।"

	chunks := c.Chunk("report2023", text)
	if len(chunks) != 2 {
		t.Fatalf("Chunk() returned %d chunks, want 2", len(chunks))
	}

	first := chunks[0]
	if first.Text != "Water access improved." {
		t.Errorf("first chunk text = %q", first.Text)
	}
	if first.Language != textproc.English {
		t.Errorf("first chunk language = %v, want %v", first.Language, textproc.English)
	}
	if first.TokenCount != 3 {
		t.Errorf("first chunk token count = %d, want 3", first.TokenCount)
	}
	if first.ChunkID != "report2023_0" {
		t.Errorf("first chunk id = %q, want report2023_0", first.ChunkID)
	}

	second := chunks[1]
	if second.Text != "improved. এই প্রতিবেদনে পানির মান পরীক্ষা করা হয়েছে।" {
		t.Errorf("second chunk text = %q", second.Text)
	}
	if second.Language != textproc.Bangla {
		t.Errorf("second chunk language = %v, want %v", second.Language, textproc.Bangla)
	}
	if second.ChunkID != "report2023_1" {
		t.Errorf("second chunk id = %q, want report2023_1", second.ChunkID)
	}
}

func TestChunkDeterministic(t *testing.T) {
	c := newChunker(6, 2)
	text := "One two three. Four five six seven. Eight nine. Ten eleven twelve thirteen."

	first := c.Chunk("doc", text)
	second := c.Chunk("doc", text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Chunk() not deterministic:\nfirst  %v\nsecond %v", first, second)
	}
}

func TestChunkOverlapSeed(t *testing.T) {
	c := newChunker(4, 2)
	text := "alpha beta gamma. delta epsilon zeta."

	chunks := c.Chunk("doc", text)
	if len(chunks) != 2 {
		t.Fatalf("Chunk() returned %d chunks, want 2", len(chunks))
	}
	// second chunk starts with the last two words of the first
	want := "beta gamma. delta epsilon zeta."
	if chunks[1].Text != want {
		t.Errorf("second chunk text = %q, want %q", chunks[1].Text, want)
	}
}

func TestChunkOverlapBoundedByPreviousChunk(t *testing.T) {
	c := newChunker(3, 2)
	text := "one. two three four."

	chunks := c.Chunk("doc", text)
	if len(chunks) != 2 {
		t.Fatalf("Chunk() returned %d chunks, want 2", len(chunks))
	}
	// previous chunk has a single word, so the seed is that word, not two
	want := "one. two three four."
	if chunks[1].Text != want {
		t.Errorf("second chunk text = %q, want %q", chunks[1].Text, want)
	}
}

func TestChunkOversizedSentenceEmittedWhole(t *testing.T) {
	c := newChunker(3, 1)
	text := "one two three four five six seven."

	chunks := c.Chunk("doc", text)
	if len(chunks) != 1 {
		t.Fatalf("Chunk() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "one two three four five six seven." {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
	if chunks[0].TokenCount != 7 {
		t.Errorf("chunk token count = %d, want 7", chunks[0].TokenCount)
	}
}

func TestChunkEmptyInput(t *testing.T) {
	c := newChunker(5, 1)

	if got := c.Chunk("doc", ""); len(got) != 0 {
		t.Errorf("Chunk(\"\") = %v, want no chunks", got)
	}
	if got := c.Chunk("doc", "   "); len(got) != 0 {
		t.Errorf("Chunk(whitespace) = %v, want no chunks", got)
	}
}

func TestChunkIndexAndIDSequence(t *testing.T) {
	c := newChunker(2, 0)
	text := "a b. c d. e f."

	chunks := c.Chunk("doc", text)
	if len(chunks) != 3 {
		t.Fatalf("Chunk() returned %d chunks, want 3", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d has index %d", i, chunk.Index)
		}
		wantID := fmt.Sprintf("doc_%d", i)
		if chunk.ChunkID != wantID {
			t.Errorf("chunk %d has id %q, want %q", i, chunk.ChunkID, wantID)
		}
		if chunk.DocumentID != "doc" {
			t.Errorf("chunk %d has document id %q, want doc", i, chunk.DocumentID)
		}
	}
}

func TestNewClampsOverlap(t *testing.T) {
	// overlap >= targetSize must not loop forever
	c := chunker.New(textproc.NewDetector(), 3, 10)
	chunks := c.Chunk("doc", "one two three. four five six. seven eight nine.")
	if len(chunks) == 0 {
		t.Fatal("Chunk() returned no chunks")
	}
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d has index %d", i, chunk.Index)
		}
	}
}
