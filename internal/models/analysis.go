// internal/models/analysis.go
package models

// TextRequest is the common request body for every analysis route.
type TextRequest struct {
	Text       string `json:"text"`
	SessionID  string `json:"session_id,omitempty"`
	TurnNumber *int   `json:"turn_number,omitempty"`
}

// Turn returns the effective turn number, defaulting to 1 when unset.
func (r *TextRequest) Turn() int {
	if r.TurnNumber == nil {
		return 1
	}
	return *r.TurnNumber
}

// Entity is a named-entity span. Start and End are character offsets into
// the request text, 0 <= Start <= End <= len(text) in runes.
type Entity struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Topic is a coarse subject extracted from noun phrases and entities.
type Topic struct {
	Name       string   `json:"topic"`
	Confidence float64  `json:"confidence"`
	Keywords   []string `json:"keywords"`
}

// Sentiment carries VADER polarity components plus a discrete label.
type Sentiment struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Label    string  `json:"label"`
}

// Ambiguity flags a vague term in the text.
type Ambiguity struct {
	Text        string   `json:"text"`
	Type        string   `json:"type"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions"`
}

// TimelineEvent is a temporal hook found in the text. Timestamp is always
// null: surfacing the reference is the contract, resolving it is not.
type TimelineEvent struct {
	Event      string  `json:"event"`
	Timestamp  *string `json:"timestamp"`
	Reference  string  `json:"reference"`
	Confidence float64 `json:"confidence"`
}

// AnalysisResult is the aggregate produced by the full pipeline.
type AnalysisResult struct {
	Entities         []Entity        `json:"entities"`
	Topics           []Topic         `json:"topics"`
	Sentiment        Sentiment       `json:"sentiment"`
	Ambiguities      []Ambiguity     `json:"ambiguities"`
	TimelineEvents   []TimelineEvent `json:"timeline_events"`
	KeyPhrases       []string        `json:"key_phrases"`
	Language         string          `json:"language"`
	ReadabilityScore float64         `json:"readability_score"`
	ProcessingTime   float64         `json:"processing_time"`
}
