package textproc_test

import (
	"testing"

	"washrag/src/core/textproc"
)

func TestDetectQuestion(t *testing.T) {
	d := textproc.NewDetector()

	tests := []struct {
		name string
		text string
		want textproc.Label
	}{
		{
			name: "empty string",
			text: "",
			want: textproc.English,
		},
		{
			name: "pure english",
			text: "Is the water safe to drink?",
			want: textproc.English,
		},
		{
			name: "pure bangla",
			text: "পানি কি নিরাপদ?",
			want: textproc.Bangla,
		},
		{
			name: "mostly english with bangla term",
			text: "What does খাবার পানি mean in this report?",
			want: textproc.Bangla,
		},
		{
			name: "punctuation and digits only",
			text: "123 ???",
			want: textproc.English,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.DetectQuestion(tt.text)
			if got != tt.want {
				t.Errorf("DetectQuestion(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectChunk(t *testing.T) {
	d := textproc.NewDetector()

	tests := []struct {
		name string
		text string
		want textproc.Label
	}{
		{
			name: "empty string",
			text: "",
			want: textproc.English,
		},
		{
			name: "english paragraph",
			text: "Access to safe drinking water improved across all districts in 2023.",
			want: textproc.English,
		},
		{
			name: "bangla paragraph",
			text: "এই প্রতিবেদনে পানির মান পরীক্ষার ফলাফল দেওয়া হয়েছে।",
			want: textproc.Bangla,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.DetectChunk(tt.text)
			if got != tt.want {
				t.Errorf("DetectChunk(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// Ten runes, three of them Bangla: above the question threshold but not
// above the chunk threshold.
func TestThresholdsDiffer(t *testing.T) {
	d := textproc.NewDetector()
	text := "abcdefgকখগ"

	if got := d.DetectQuestion(text); got != textproc.Bangla {
		t.Errorf("DetectQuestion(%q) = %v, want %v", text, got, textproc.Bangla)
	}
	if got := d.DetectChunk(text); got != textproc.English {
		t.Errorf("DetectChunk(%q) = %v, want %v", text, got, textproc.English)
	}
}

type fakeScorer struct {
	label textproc.Label
	ok    bool
}

func (f fakeScorer) Score(string) (textproc.Label, bool) {
	return f.label, f.ok
}

func TestDetectorScorer(t *testing.T) {
	// Scorer result wins over the script heuristic
	d := textproc.NewDetector(textproc.WithScorer(fakeScorer{label: textproc.Bangla, ok: true}))
	if got := d.DetectQuestion("plain english question"); got != textproc.Bangla {
		t.Errorf("DetectQuestion with scorer = %v, want %v", got, textproc.Bangla)
	}

	// Unavailable scorer falls back to the heuristic
	d = textproc.NewDetector(textproc.WithScorer(fakeScorer{ok: false}))
	if got := d.DetectQuestion("পানি কি নিরাপদ?"); got != textproc.Bangla {
		t.Errorf("DetectQuestion with unavailable scorer = %v, want %v", got, textproc.Bangla)
	}
}

func TestLabelValid(t *testing.T) {
	if !textproc.Bangla.Valid() || !textproc.English.Valid() {
		t.Error("expected bn and en labels to be valid")
	}
	if textproc.Label("fr").Valid() {
		t.Error("expected unknown label to be invalid")
	}
}
