// Package extractor tags feedback text with topics and canonical key phrases.
package extractor

import (
	"feedback-insights-go/internal/lexicon"
)

// MaxKeyPhrases bounds the key phrases kept per record.
const MaxKeyPhrases = 3

type Extractor struct {
	topics  []lexicon.Group
	phrases []lexicon.Group
}

func New(lex *lexicon.Lexicon) *Extractor {
	return &Extractor{topics: lex.Topics, phrases: lex.KeyPhrases}
}

// Extract returns the matched topics in lexicon order (never empty) and at
// most MaxKeyPhrases canonical key phrases.
func (e *Extractor) Extract(raw string) (topics []string, keyPhrases []string) {
	text := lexicon.NewText(raw)

	for _, g := range e.topics {
		if g.Set.Any(text) {
			topics = append(topics, g.Name)
		}
	}
	if len(topics) == 0 {
		topics = []string{lexicon.DefaultTopic}
	}

	keyPhrases = []string{}
	for _, g := range e.phrases {
		if len(keyPhrases) == MaxKeyPhrases {
			break
		}
		if g.Set.Any(text) {
			keyPhrases = append(keyPhrases, g.Name)
		}
	}
	return topics, keyPhrases
}
