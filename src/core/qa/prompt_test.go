package qa_test

import (
	"strings"
	"testing"

	"washrag/src/core/qa"
	"washrag/src/core/textproc"
)

func TestBuildPrompt(t *testing.T) {
	ranked := []qa.RetrievedChunk{
		{Neighbor: qa.Neighbor{Text: "Water access improved in 2023."}},
		{Neighbor: qa.Neighbor{Text: "Sanitation coverage is at 60%."}},
	}

	prompt, err := qa.BuildPrompt("How did water access change?", ranked)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	if !strings.Contains(prompt, "[S1] Water access improved in 2023.") {
		t.Errorf("prompt missing first marked chunk:\n%s", prompt)
	}
	if !strings.Contains(prompt, "[S2] Sanitation coverage is at 60%.") {
		t.Errorf("prompt missing second marked chunk:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Question: How did water access change?") {
		t.Errorf("prompt missing question:\n%s", prompt)
	}
	if !strings.HasSuffix(prompt, "Answer:") {
		t.Errorf("prompt missing answer cue:\n%s", prompt)
	}
	if strings.Index(prompt, "[S1]") > strings.Index(prompt, "[S2]") {
		t.Errorf("chunks out of ranked order:\n%s", prompt)
	}
}

func TestSystemInstruction(t *testing.T) {
	bn := qa.SystemInstruction(textproc.Bangla)
	en := qa.SystemInstruction(textproc.English)

	if bn == en {
		t.Fatal("expected distinct instructions per language")
	}
	if !strings.Contains(bn, "বাংলায় উত্তর") {
		t.Errorf("bangla instruction missing answer-language mandate:\n%s", bn)
	}
	if !strings.Contains(en, "answer in English") {
		t.Errorf("english instruction missing answer-language mandate:\n%s", en)
	}
	for _, instruction := range []string{bn, en} {
		if !strings.Contains(instruction, "[S1]") {
			t.Errorf("instruction missing citation marker mandate:\n%s", instruction)
		}
	}
}
