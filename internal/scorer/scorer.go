// Package scorer implements the lexical sentiment heuristic used when the
// model-based classifier is unavailable.
package scorer

import (
	"math"
	"strings"
	"unicode"

	"feedback-insights-go/internal/lexicon"
	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

// Result is the outcome of scoring one record.
type Result struct {
	Sentiment string
	Score     float64
	Positive  int
	Negative  int
	FromHint  bool
}

type cue struct {
	set    *lexicon.Set
	weight int
}

// Scorer is safe for concurrent use.
type Scorer struct {
	log *logger.Logger

	strongNegative *lexicon.Set
	negative       *lexicon.Set
	negation       *lexicon.Set
	strongPositive *lexicon.Set
	positive       *lexicon.Set
	experience     *lexicon.Set
	loyalty        *lexicon.Set
	gratitude      *lexicon.Set

	// issue lexicons, one weight each
	issueSets []cue

	negativeCues []cue
	positiveCues []cue

	punctuation      *lexicon.Set
	recommend        *lexicon.Set
	recommendNegated *lexicon.Set
	satisfactionLow  *lexicon.Set
	satisfactionHigh *lexicon.Set
}

// New resolves every marker set up front; a missing set panics here rather
// than mid-request.
func New(lex *lexicon.Lexicon, log *logger.Logger) *Scorer {
	if log == nil {
		log = logger.Discard()
	}
	w := func(name string, weight int) cue { return cue{set: lex.Set(name), weight: weight} }

	return &Scorer{
		log:            log.Component("scorer"),
		strongNegative: lex.Set("strong_negative"),
		negative:       lex.Set("negative"),
		negation:       lex.Set("negation"),
		strongPositive: lex.Set("strong_positive"),
		positive:       lex.Set("positive"),
		experience:     lex.Set("positive_experience"),
		loyalty:        lex.Set("loyalty"),
		gratitude:      lex.Set("gratitude"),
		issueSets: []cue{
			w("functional_issue", 4),
			w("quality_issue", 3),
			w("service_issue", 3),
			w("delivery_issue", 3),
			w("performance_issue", 3),
		},
		negativeCues: []cue{
			w("cue_refund", 2),
			w("cue_last_time", 3),
			w("cue_warning", 2),
			w("cue_disappointment", 2),
			w("cue_cancel", 2),
			w("cue_repair", 1),
			w("cue_hate", 4),
			w("cue_worst", 4),
			w("cue_frustration", 2),
			w("cue_waste", 3),
			w("cue_poor_quality", 3),
		},
		positiveCues: []cue{
			w("cue_five_star", 3),
			w("cue_superlative", 2),
			w("cue_satisfaction", 2),
			w("cue_impressed", 2),
			w("cue_love", 3),
			w("cue_amazement", 3),
			w("cue_repeat_purchase", 3),
			w("cue_strong_recommend", 3),
		},
		punctuation:      lex.Set("cue_punctuation"),
		recommend:        lex.Set("cue_recommend"),
		recommendNegated: lex.Set("cue_recommend_negated"),
		satisfactionLow:  lex.Set("satisfaction_low"),
		satisfactionHigh: lex.Set("satisfaction_high"),
	}
}

// Score classifies a single record. An explicit sentiment hint
// short-circuits the lexical rules.
func (s *Scorer) Score(rec types.FeedbackRecord) Result {
	if hint := strings.TrimSpace(rec.SentimentHint); hint != "" {
		sentiment, score, ok := SentimentFromHint(hint)
		if !ok {
			s.log.WithField("record_id", rec.ID).WithField("hint", hint).
				Debug("unrecognized sentiment hint, defaulting to neutral")
		}
		return Result{Sentiment: sentiment, Score: score, FromHint: true}
	}

	text := lexicon.NewText(rec.Text)
	satisfaction := lexicon.NewText(rec.SatisfactionHint)
	low := s.satisfactionLow.Any(satisfaction)
	high := !low && s.satisfactionHigh.Any(satisfaction)

	n := s.negativeScore(rec, text, low)
	p := s.positiveScore(rec, text, high)

	sentiment, score := Classify(p, n)
	return Result{Sentiment: sentiment, Score: score, Positive: p, Negative: n}
}

func (s *Scorer) negativeScore(rec types.FeedbackRecord, text lexicon.Text, lowSatisfaction bool) int {
	n := 0
	if s.strongNegative.Any(text) {
		n += 5
	}
	if MeaningfulIssueHint(rec.IssueHint) {
		n += 3
	}
	if rec.Rating != nil && *rec.Rating <= 2 {
		n += 3
	}
	if lowSatisfaction {
		n += 3
	}
	if s.negative.Any(text) {
		n += 3
	}
	for _, c := range s.issueSets {
		if c.set.Any(text) {
			n += c.weight
		}
	}
	if s.negation.Any(text) {
		n += 3
	}
	for _, c := range s.negativeCues {
		if c.set.Any(text) {
			n += c.weight
		}
	}
	if s.punctuation.Any(text) {
		n++
	}
	if strings.Count(text.String(), "!") >= 3 {
		n++
	}
	if shouting(rec.Text) {
		n++
	}
	return n
}

func (s *Scorer) positiveScore(rec types.FeedbackRecord, text lexicon.Text, highSatisfaction bool) int {
	p := 0
	if s.strongPositive.Any(text) {
		p += 6
	}
	if s.experience.Any(text) {
		p += 5
	}
	if rec.Rating != nil && *rec.Rating >= 4 {
		p += 4
	}
	if highSatisfaction {
		p += 4
	}
	p += min(s.positive.Count(text)*2, 8)
	if s.loyalty.Any(text) {
		p += 3
	}
	if s.gratitude.Any(text) {
		p += 2
	}
	if s.recommend.Any(text) && !s.recommendNegated.Any(text) {
		p += 3
	}
	for _, c := range s.positiveCues {
		if c.set.Any(text) {
			p += c.weight
		}
	}
	if (text.Contains("surprised") && text.Contains("good")) ||
		(text.Contains("terkejut") && text.Contains("bagus")) {
		p += 2
	}
	return p
}

// shouting reports all-caps text longer than 10 characters.
func shouting(raw string) bool {
	raw = strings.TrimSpace(raw)
	if len(raw) <= 10 {
		return false
	}
	letters := false
	for _, r := range raw {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters = true
		}
	}
	return letters
}

// Classify maps positive and negative evidence to a label and score.
// Rules are evaluated in order; the first match wins.
func Classify(p, n int) (string, float64) {
	pf, nf := float64(p), float64(n)
	d := pf - nf

	switch {
	case n >= 5 || (n >= 3 && p <= 2):
		return types.SentimentNegative, math.Max(-0.9, -0.1*nf)
	case n >= 1 && d <= -1:
		return types.SentimentNegative, math.Max(-0.7, -0.15*nf)
	case p >= 8 || (p >= 5 && n == 0):
		return types.SentimentPositive, math.Min(0.9, 0.1*pf)
	case p >= 3 && d >= 2:
		return types.SentimentPositive, math.Min(0.8, 0.12*pf)
	case p > n && p >= 2:
		return types.SentimentPositive, math.Min(0.6, 0.15*d)
	case n > p && n >= 1:
		return types.SentimentNegative, math.Max(-0.5, -0.2*nf)
	default:
		return types.SentimentNeutral, 0.05 * d
	}
}
