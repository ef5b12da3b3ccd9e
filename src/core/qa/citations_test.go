package qa_test

import (
	"reflect"
	"testing"

	"washrag/src/core/qa"
	"washrag/src/core/textproc"
)

func rankedChunks(n int) []qa.RetrievedChunk {
	chunks := make([]qa.RetrievedChunk, n)
	for i := range chunks {
		chunks[i] = qa.RetrievedChunk{
			Neighbor: qa.Neighbor{
				ChunkID:    "doc_" + string(rune('0'+i)),
				Text:       "chunk text " + string(rune('0'+i)),
				SourceFile: "doc.pdf",
				Language:   textproc.English,
			},
		}
	}
	return chunks
}

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name        string
		answer      string
		ranked      []qa.RetrievedChunk
		wantMarkers []string
	}{
		{
			name:        "markers in appearance order",
			answer:      "Access improved globally [S1]. See also [S2].",
			ranked:      rankedChunks(3),
			wantMarkers: []string{"S1", "S2"},
		},
		{
			name:        "appearance order not rank order",
			answer:      "According to [S3], and earlier [S1].",
			ranked:      rankedChunks(3),
			wantMarkers: []string{"S3", "S1"},
		},
		{
			name:        "duplicate markers collapse",
			answer:      "[S2] again [S2] and [S1]",
			ranked:      rankedChunks(2),
			wantMarkers: []string{"S2", "S1"},
		},
		{
			name:        "out of range markers ignored",
			answer:      "See [S5] and [S0], but [S2] is real.",
			ranked:      rankedChunks(2),
			wantMarkers: []string{"S2"},
		},
		{
			name:        "no markers",
			answer:      "The answer has no references.",
			ranked:      rankedChunks(3),
			wantMarkers: []string{},
		},
		{
			name:        "empty answer",
			answer:      "",
			ranked:      rankedChunks(3),
			wantMarkers: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := qa.ExtractCitations(tt.answer, tt.ranked)
			if got == nil {
				t.Fatal("ExtractCitations() = nil, want non-nil slice")
			}

			markers := make([]string, 0, len(got))
			for _, c := range got {
				markers = append(markers, c.Marker)
			}
			if !reflect.DeepEqual(markers, tt.wantMarkers) {
				t.Errorf("ExtractCitations() markers = %v, want %v", markers, tt.wantMarkers)
			}
		})
	}
}

func TestExtractCitationsResolvesChunkFields(t *testing.T) {
	ranked := []qa.RetrievedChunk{
		{Neighbor: qa.Neighbor{ChunkID: "a_0", Text: "first", SourceFile: "a.pdf", Language: textproc.English}},
		{Neighbor: qa.Neighbor{ChunkID: "b_3", Text: "দ্বিতীয়", SourceFile: "b.html", Language: textproc.Bangla}},
	}

	got := qa.ExtractCitations("see [S2]", ranked)
	if len(got) != 1 {
		t.Fatalf("ExtractCitations() returned %d citations, want 1", len(got))
	}
	c := got[0]
	if c.Marker != "S2" || c.Text != "দ্বিতীয়" || c.Source != "b.html" || c.Language != textproc.Bangla {
		t.Errorf("citation = %+v, want fields of second chunk", c)
	}
}
