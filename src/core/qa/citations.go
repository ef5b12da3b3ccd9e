package qa

import (
	"fmt"
	"regexp"
	"strconv"
)

var markerPattern = regexp.MustCompile(`\[S(\d+)\]`)

// ExtractCitations scans the generated answer for [S<i>] markers and
// resolves each distinct in-range marker to its chunk in ranked, in first
// appearance order. Markers referencing a position outside ranked are
// ignored: generation models may hallucinate them. No markers means no
// citations, even when chunks were supplied as context.
func ExtractCitations(answer string, ranked []RetrievedChunk) []Citation {
	matches := markerPattern.FindAllStringSubmatch(answer, -1)

	seen := make(map[int]bool)
	citations := []Citation{}
	for _, m := range matches {
		idx, err := strconv.Atoi(m[1])
		if err != nil || idx < 1 || idx > len(ranked) {
			continue
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true

		chunk := ranked[idx-1]
		citations = append(citations, Citation{
			Marker:   fmt.Sprintf("S%d", idx),
			Text:     chunk.Text,
			Source:   chunk.SourceFile,
			Language: chunk.Language,
		})
	}

	return citations
}

// markerIndex returns the 1-based chunk position of a marker like "S3",
// or 0 when the marker is malformed.
func markerIndex(marker string) int {
	if len(marker) < 2 || marker[0] != 'S' {
		return 0
	}
	idx, err := strconv.Atoi(marker[1:])
	if err != nil || idx < 1 {
		return 0
	}
	return idx
}
