// Package toolkit defines the NLP capability ports shared by all analyzers.
// Handles are created once at startup and treated as immutable; a nil handle
// means the capability failed to load and dependent routes degrade to 503.
package toolkit

// Span is a labeled region of the source text. Offsets are rune-based,
// 0 <= Start <= End <= len(text) in runes.
type Span struct {
	Text  string
	Label string
	Start int
	End   int
}

// Token is a single token with its part-of-speech tag.
type Token struct {
	Text string
	Tag  string
}

// Polarity holds VADER-style sentiment components.
type Polarity struct {
	Compound float64
	Positive float64
	Negative float64
	Neutral  float64
}

// Engine provides tokenization, sentence segmentation, named-entity
// recognition and noun chunking.
type Engine interface {
	Entities(text string) ([]Span, error)
	Sentences(text string) ([]string, error)
	Tokens(text string) ([]Token, error)
	NounChunks(text string) ([]string, error)
}

// SentimentAnalyzer scores text polarity.
type SentimentAnalyzer interface {
	PolarityScores(text string) (Polarity, error)
}
