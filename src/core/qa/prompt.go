package qa

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"washrag/src/core/textproc"
)

const systemInstructionBN = `আপনি একজন ডকুমেন্ট সহকারী। আপনার কাজ হল প্রদত্ত তথ্যের ভিত্তিতে প্রশ্নের উত্তর দেওয়া।
- সর্বদা বাংলায় উত্তর দিন
- তথ্যের সূত্র [S1], [S2] ইত্যাদি দিয়ে উল্লেখ করুন
- যদি তথ্য না থাকে তাহলে স্পষ্ট করে বলুন`

const systemInstructionEN = `You are a document assistant. Your task is to answer questions based on the provided information.
- Always answer in English
- Cite sources as [S1], [S2], etc.
- If information is not available, clearly state so`

const (
	insufficientInfoBN = "দুঃখিত, এই প্রশ্নের উত্তর দেওয়ার জন্য পর্যাপ্ত তথ্য নেই।"
	insufficientInfoEN = "Sorry, I don't have enough information to answer this question."
)

var answerTemplate = prompts.NewPromptTemplate(
	`Context Information:
{{.context}}

Question: {{.question}}

Answer:`,
	[]string{"context", "question"},
)

// SystemInstruction returns the instruction template for the target answer
// language. It mandates answering strictly in that language and citing
// sources with bracketed [S<i>] markers.
func SystemInstruction(language textproc.Label) string {
	if language == textproc.Bangla {
		return systemInstructionBN
	}
	return systemInstructionEN
}

// BuildPrompt renders the answer prompt: every retrieved chunk prefixed with
// its 1-based [S<i>] marker as the context block, then the question and the
// answer continuation cue. The ranked order here must be the same order
// ExtractCitations later resolves markers against.
func BuildPrompt(question string, ranked []RetrievedChunk) (string, error) {
	var context strings.Builder
	for i, chunk := range ranked {
		fmt.Fprintf(&context, "[S%d] %s\n\n", i+1, chunk.Text)
	}

	prompt, err := answerTemplate.Format(map[string]any{
		"context":  strings.TrimRight(context.String(), "\n"),
		"question": question,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render answer prompt: %w", err)
	}
	return prompt, nil
}

func insufficientInfoAnswer(language textproc.Label) string {
	if language == textproc.Bangla {
		return insufficientInfoBN
	}
	return insufficientInfoEN
}
