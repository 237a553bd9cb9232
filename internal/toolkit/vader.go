// internal/toolkit/vader.go
package toolkit

import "github.com/jonreiter/govader"

// VaderAnalyzer implements SentimentAnalyzer over the VADER lexicon. The
// underlying analyzer is read-only after construction and safe to share.
type VaderAnalyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderAnalyzer) PolarityScores(text string) (Polarity, error) {
	scores := v.analyzer.PolarityScores(text)
	return Polarity{
		Compound: scores.Compound,
		Positive: scores.Positive,
		Negative: scores.Negative,
		Neutral:  scores.Neutral,
	}, nil
}
