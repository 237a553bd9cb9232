// internal/analyzers/ambiguity/rules.go
package ambiguity

import "regexp"

// ruleFamily groups the terms of one kind of vagueness with the confidence
// and suggestion template shared by all of them. The suggestion template
// takes the matched term as its single argument.
type ruleFamily struct {
	kind       string
	confidence float64
	suggestion string
	terms      []vagueTerm
}

type vagueTerm struct {
	word    string
	pattern *regexp.Regexp
}

var families = []ruleFamily{
	{
		kind:       "ambiguous_pronoun",
		confidence: 0.7,
		suggestion: "Specify what '%s' refers to",
		terms:      compileTerms("it", "this", "that", "they", "them", "he", "she", "him", "her"),
	},
	{
		kind:       "vague_quantifier",
		confidence: 0.6,
		suggestion: "Specify a more precise quantity than '%s'",
		terms:      compileTerms("some", "many", "few", "several", "most", "a lot of"),
	},
	{
		kind:       "temporal_ambiguity",
		confidence: 0.8,
		suggestion: "Specify a more precise time than '%s'",
		terms:      compileTerms("soon", "later", "recently", "a while ago", "sometime"),
	},
}

func compileTerms(words ...string) []vagueTerm {
	terms := make([]vagueTerm, 0, len(words))
	for _, word := range words {
		terms = append(terms, vagueTerm{
			word:    word,
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`),
		})
	}
	return terms
}
