package textproc

// Label identifies one of the two supported languages.
type Label string

const (
	Bangla  Label = "bn"
	English Label = "en"
)

// Valid reports whether the label is one of the supported languages.
func (l Label) Valid() bool {
	return l == Bangla || l == English
}

const (
	banglaBlockStart = 0x0980
	banglaBlockEnd   = 0x09FF

	// DefaultQuestionThreshold is the Bangla code point fraction above which
	// short question-length text classifies as Bangla. It is lower than the
	// chunk threshold so short Bangla queries are not misread as English.
	DefaultQuestionThreshold = 0.2

	// DefaultChunkThreshold is the Bangla code point fraction above which
	// chunk-length text classifies as Bangla.
	DefaultChunkThreshold = 0.3
)

// Scorer is an optional statistical language model. Score returns the label
// for the given text and whether the model was able to produce one; a false
// second return means the model is unavailable and the caller falls back to
// the script heuristic.
type Scorer interface {
	Score(text string) (Label, bool)
}

// Detector assigns a Bangla/English label to a span of text. It never
// fails: a missing or unavailable Scorer degrades to a deterministic
// Bangla-script fraction heuristic.
type Detector struct {
	scorer            Scorer
	questionThreshold float64
	chunkThreshold    float64
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithScorer installs a statistical language model as the primary strategy.
func WithScorer(s Scorer) DetectorOption {
	return func(d *Detector) {
		d.scorer = s
	}
}

// WithQuestionThreshold overrides the heuristic threshold for question-length text.
func WithQuestionThreshold(t float64) DetectorOption {
	return func(d *Detector) {
		d.questionThreshold = t
	}
}

// WithChunkThreshold overrides the heuristic threshold for chunk-length text.
func WithChunkThreshold(t float64) DetectorOption {
	return func(d *Detector) {
		d.chunkThreshold = t
	}
}

// NewDetector creates a Detector with the default thresholds.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		questionThreshold: DefaultQuestionThreshold,
		chunkThreshold:    DefaultChunkThreshold,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectQuestion classifies short question-length text.
func (d *Detector) DetectQuestion(text string) Label {
	return d.detect(text, d.questionThreshold)
}

// DetectChunk classifies chunk-length text.
func (d *Detector) DetectChunk(text string) Label {
	return d.detect(text, d.chunkThreshold)
}

func (d *Detector) detect(text string, threshold float64) Label {
	if d.scorer != nil {
		if label, ok := d.scorer.Score(text); ok {
			return label
		}
	}
	return heuristic(text, threshold)
}

// heuristic counts code points in the Bangla block (U+0980-U+09FF) and
// classifies as Bangla when their fraction of the total rune count exceeds
// threshold. The empty string classifies as English.
func heuristic(text string, threshold float64) Label {
	total := 0
	bangla := 0
	for _, r := range text {
		total++
		if r >= banglaBlockStart && r <= banglaBlockEnd {
			bangla++
		}
	}
	if total == 0 {
		return English
	}
	if float64(bangla) > float64(total)*threshold {
		return Bangla
	}
	return English
}
