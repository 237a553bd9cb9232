// internal/toolkit/prose.go
package toolkit

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	prose "github.com/jdkato/prose/v2"
)

var nounTags = map[string]bool{
	"NN": true, "NNS": true, "NNP": true, "NNPS": true,
}

var adjectiveTags = map[string]bool{
	"JJ": true, "JJR": true, "JJS": true,
}

// ProseEngine implements Engine on top of the prose library. Documents are
// built per call; the underlying models are package-global and read-only, so
// a single engine is shared across requests without locking.
type ProseEngine struct{}

// NewProseEngine builds the engine and runs a warm-up document so model
// loading problems surface at startup instead of on the first request.
func NewProseEngine() (*ProseEngine, error) {
	if _, err := prose.NewDocument("warm up"); err != nil {
		return nil, fmt.Errorf("prose warm-up failed: %w", err)
	}
	return &ProseEngine{}, nil
}

func (e *ProseEngine) Entities(text string) ([]Span, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("entity extraction: %w", err)
	}
	return anchorSpans(text, doc.Entities()), nil
}

// Sentences segments text into sentence-like units. A coordinated clause
// with its own subject pronoun ("We met yesterday and I think ...") counts
// as a separate unit, so downstream per-sentence scans see one clause each.
func (e *ProseEngine) Sentences(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("sentence segmentation: %w", err)
	}
	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, splitCoordinateClauses(strings.TrimSpace(s.Text))...)
	}
	return out, nil
}

func (e *ProseEngine) Tokens(text string) ([]Token, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tokenization: %w", err)
	}
	toks := doc.Tokens()
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		out = append(out, Token{Text: t.Text, Tag: t.Tag})
	}
	return out, nil
}

// NounChunks returns base noun phrases found by a determiner-adjective-noun
// tag pattern over the POS stream.
func (e *ProseEngine) NounChunks(text string) ([]string, error) {
	toks, err := e.Tokens(text)
	if err != nil {
		return nil, err
	}
	return chunkNounPhrases(toks), nil
}

// anchorSpans recovers character offsets for entity texts. prose reports no
// positions, so each entity is located with a forward-moving search cursor;
// repeated mentions resolve left to right. Multi-token entities are joined
// with single spaces by the tokenizer, so a span that cannot be anchored in
// the raw text is dropped rather than guessed.
func anchorSpans(text string, ents []prose.Entity) []Span {
	spans := make([]Span, 0, len(ents))
	frontier := 0
	for _, ent := range ents {
		bStart, bEnd, ok := locate(text, ent.Text, frontier)
		if !ok {
			continue
		}
		frontier = bEnd
		spans = append(spans, Span{
			Text:  ent.Text,
			Label: ent.Label,
			Start: utf8.RuneCountInString(text[:bStart]),
			End:   utf8.RuneCountInString(text[:bEnd]),
		})
	}
	return spans
}

// locate finds needle at or after byteFrom, returning byte offsets. Falls
// back to a full scan when the frontier has already passed the only mention.
func locate(haystack, needle string, byteFrom int) (start, end int, ok bool) {
	if needle == "" {
		return 0, 0, false
	}
	if byteFrom > len(haystack) {
		byteFrom = len(haystack)
	}
	if idx := strings.Index(haystack[byteFrom:], needle); idx >= 0 {
		start = byteFrom + idx
		return start, start + len(needle), true
	}
	if idx := strings.Index(haystack, needle); idx >= 0 {
		return idx, idx + len(needle), true
	}
	return 0, 0, false
}

// clausePattern marks a clause boundary: a coordinating conjunction followed
// by a subject pronoun. The match starts on the whitespace before the
// conjunction, so splitting at match starts keeps every byte of the input.
var clausePattern = regexp.MustCompile(`(?i)\s+(?:and|but|or|so)\s+(?:i|we|you|he|she|it|they)\b`)

// splitCoordinateClauses breaks a sentence before each coordinating
// conjunction that introduces a clause with its own subject. Sentences
// without such a boundary come back unchanged as a single element.
func splitCoordinateClauses(sentence string) []string {
	matches := clausePattern.FindAllStringIndex(sentence, -1)
	if len(matches) == 0 {
		return []string{sentence}
	}
	clauses := make([]string, 0, len(matches)+1)
	start := 0
	for _, m := range matches {
		if clause := strings.TrimSpace(sentence[start:m[0]]); clause != "" {
			clauses = append(clauses, clause)
		}
		start = m[0]
	}
	if tail := strings.TrimSpace(sentence[start:]); tail != "" {
		clauses = append(clauses, tail)
	}
	return clauses
}

func chunkNounPhrases(toks []Token) []string {
	var chunks []string
	i := 0
	for i < len(toks) {
		j := i
		if j < len(toks) && toks[j].Tag == "DT" {
			j++
		}
		for j < len(toks) && adjectiveTags[toks[j].Tag] {
			j++
		}
		k := j
		for k < len(toks) && nounTags[toks[k].Tag] {
			k++
		}
		if k == j {
			// No noun head after the optional determiner/adjectives.
			i++
			continue
		}
		parts := make([]string, 0, k-i)
		for _, t := range toks[i:k] {
			parts = append(parts, t.Text)
		}
		chunks = append(chunks, strings.Join(parts, " "))
		i = k
	}
	return chunks
}
