package textproc_test

import (
	"reflect"
	"testing"

	"washrag/src/core/textproc"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty string",
			text: "",
			want: nil,
		},
		{
			name: "single sentence",
			text: "Water access improved.",
			want: []string{"Water access improved."},
		},
		{
			name: "multiple english sentences",
			text: "Water access improved. Sanitation remains a challenge! Is hygiene covered?",
			want: []string{
				"Water access improved.",
				"Sanitation remains a challenge!",
				"Is hygiene covered?",
			},
		},
		{
			name: "bangla danda",
			text: "পানির মান উন্নত হয়েছে। স্যানিটেশন এখনও চ্যালেঞ্জ।",
			want: []string{
				"পানির মান উন্নত হয়েছে।",
				"স্যানিটেশন এখনও চ্যালেঞ্জ।",
			},
		},
		{
			name: "decimal number is not a boundary",
			text: "Coverage reached 3.5 percent. Progress continues.",
			want: []string{
				"Coverage reached 3.5 percent.",
				"Progress continues.",
			},
		},
		{
			name: "dotted identifier is not a boundary",
			text: "See section 4.2.1 for details. Annex follows.",
			want: []string{
				"See section 4.2.1 for details.",
				"Annex follows.",
			},
		},
		{
			name: "trailing text without terminator",
			text: "First sentence. trailing fragment",
			want: []string{
				"First sentence.",
				"trailing fragment",
			},
		},
		{
			name: "no terminator at all",
			text: "just a fragment",
			want: []string{"just a fragment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textproc.SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "english", text: "Water access improved.", want: 3},
		{name: "bangla", text: "পানির মান উন্নত হয়েছে।", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textproc.CountWords(tt.text)
			if got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
