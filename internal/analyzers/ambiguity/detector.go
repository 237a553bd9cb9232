// internal/analyzers/ambiguity/detector.go
package ambiguity

import (
	"context"
	"fmt"
	"strings"

	"nlp-service/internal/common/logger"
	"nlp-service/internal/models"
)

const (
	StageName = "ambiguities"
	Label     = "Ambiguity detection"
)

// Detector flags vague wording through fixed lexical rules. Matching is
// whole-word and case-insensitive against the lowercased text; it ignores
// sentence boundaries and grammatical role, so "this" inside a perfectly
// clear noun phrase still fires. A heuristic first pass, not a resolver.
type Detector struct {
	logger logger.Logger
}

func NewDetector(log logger.Logger) *Detector {
	return &Detector{
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

// Detect reports each rule term that appears in the text, at most once per
// term regardless of occurrence count. Results follow list-declaration order
// within each family, families in the order pronoun, quantifier, temporal.
func (d *Detector) Detect(ctx context.Context, text string) ([]models.Ambiguity, error) {
	lowered := strings.ToLower(text)

	found := make([]models.Ambiguity, 0)
	for _, family := range families {
		for _, term := range family.terms {
			if !term.pattern.MatchString(lowered) {
				continue
			}
			found = append(found, models.Ambiguity{
				Text:        term.word,
				Type:        family.kind,
				Confidence:  family.confidence,
				Suggestions: []string{fmt.Sprintf(family.suggestion, term.word)},
			})
		}
	}

	d.logger.Debug("ambiguities detected", map[string]interface{}{"count": len(found)})
	return found, nil
}
