// Package lexicon holds the marker phrase tables used by the heuristic
// classifier and compiles them into Aho-Corasick matchers.
package lexicon

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed lexicons.yaml
var embedded []byte

// DefaultTopic is assigned when no topic marker matches.
const DefaultTopic = "general"

type document struct {
	Sets       map[string][]string `yaml:"sets"`
	Topics     []groupDoc          `yaml:"topics"`
	KeyPhrases []groupDoc          `yaml:"key_phrases"`
	Issues     struct {
		Gate       []string   `yaml:"gate"`
		Categories []groupDoc `yaml:"categories"`
	} `yaml:"issues"`
	Products []groupDoc `yaml:"products"`
	Cities   []string   `yaml:"cities"`
}

type groupDoc struct {
	Name    string   `yaml:"name"`
	Label   string   `yaml:"label"`
	Phrases []string `yaml:"phrases"`
}

// Group is a named set, e.g. a topic and its marker phrases.
type Group struct {
	Name string
	Set  *Set
}

// Lexicon is the compiled, read-only collection of marker tables.
type Lexicon struct {
	sets            map[string]*Set
	Topics          []Group
	KeyPhrases      []Group
	IssueGate       *Set
	IssueCategories []Group
	Products        []Group
	Cities          *Set
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the lexicon compiled from the embedded tables.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		lex, err := Parse(embedded)
		if err != nil {
			panic(fmt.Sprintf("lexicon: embedded tables: %v", err))
		}
		defaultLex = lex
	})
	return defaultLex
}

// Parse compiles a lexicon from YAML.
func Parse(data []byte) (*Lexicon, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	if len(doc.Sets) == 0 {
		return nil, fmt.Errorf("decode lexicon: no sets defined")
	}

	lex := &Lexicon{
		sets:      make(map[string]*Set, len(doc.Sets)),
		IssueGate: NewSet("issue_gate", doc.Issues.Gate),
		Cities:    NewSet("cities", doc.Cities),
	}
	for name, phrases := range doc.Sets {
		lex.sets[name] = NewSet(name, phrases)
	}

	var err error
	if lex.Topics, err = compileGroups("topics", doc.Topics); err != nil {
		return nil, err
	}
	if lex.KeyPhrases, err = compileGroups("key_phrases", doc.KeyPhrases); err != nil {
		return nil, err
	}
	if lex.IssueCategories, err = compileGroups("issues.categories", doc.Issues.Categories); err != nil {
		return nil, err
	}
	if lex.Products, err = compileGroups("products", doc.Products); err != nil {
		return nil, err
	}
	return lex, nil
}

func compileGroups(section string, docs []groupDoc) ([]Group, error) {
	out := make([]Group, 0, len(docs))
	for i, g := range docs {
		name := g.Name
		if name == "" {
			name = g.Label
		}
		if name == "" {
			return nil, fmt.Errorf("%s[%d]: missing name", section, i)
		}
		out = append(out, Group{Name: name, Set: NewSet(name, g.Phrases)})
	}
	return out, nil
}

// Set returns the named marker set. Unknown names panic; callers resolve
// their sets once at construction.
func (l *Lexicon) Set(name string) *Set {
	s, ok := l.sets[name]
	if !ok {
		panic(fmt.Sprintf("lexicon: unknown set %q", name))
	}
	return s
}

// Has reports whether a named set exists.
func (l *Lexicon) Has(name string) bool {
	_, ok := l.sets[name]
	return ok
}

// TopicNames lists topic names in lexicon order.
func (l *Lexicon) TopicNames() []string {
	names := make([]string, len(l.Topics))
	for i, g := range l.Topics {
		names[i] = g.Name
	}
	return names
}

// Set is a compiled list of marker phrases.
type Set struct {
	name    string
	entries []string

	// ahocorasick.Matcher keeps per-call state, so each goroutine borrows
	// its own copy from the pool.
	matchers sync.Pool
}

// NewSet normalizes, deduplicates and compiles phrases.
func NewSet(name string, phrases []string) *Set {
	s := &Set{name: name}
	seen := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		n := Normalize(p)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		s.entries = append(s.entries, n)
	}
	if len(s.entries) > 0 {
		s.matchers.New = func() any { return ahocorasick.NewStringMatcher(s.entries) }
	}
	return s
}

func (s *Set) Name() string { return s.name }

func (s *Set) Len() int { return len(s.entries) }

// Entries returns a copy of the normalized phrases.
func (s *Set) Entries() []string {
	return append([]string(nil), s.entries...)
}

func (s *Set) hits(t Text) []int {
	if len(s.entries) == 0 || t.s == "" {
		return nil
	}
	m := s.matchers.Get().(*ahocorasick.Matcher)
	hits := m.Match([]byte(t.s))
	s.matchers.Put(m)

	out := make([]int, 0, len(hits))
	seen := make(map[int]bool, len(hits))
	for _, h := range hits {
		if h < 0 || h >= len(s.entries) || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}

// Any reports whether some phrase occurs in t.
func (s *Set) Any(t Text) bool {
	return len(s.hits(t)) > 0
}

// Matches returns the distinct phrases found in t, in lexicon order.
func (s *Set) Matches(t Text) []string {
	idx := s.hits(t)
	if len(idx) == 0 {
		return nil
	}
	out := make([]string, len(idx))
	for i, h := range idx {
		out[i] = s.entries[h]
	}
	return out
}

// Count is the number of distinct phrases found in t.
func (s *Set) Count(t Text) int {
	return len(s.hits(t))
}

// FirstWord returns the first phrase, in lexicon order, that occurs in t
// on word boundaries.
func (s *Set) FirstWord(t Text) (string, bool) {
	for _, h := range s.hits(t) {
		if t.HasWord(s.entries[h]) {
			return s.entries[h], true
		}
	}
	return "", false
}

// AnyWord reports whether some phrase occurs in t on word boundaries.
func (s *Set) AnyWord(t Text) bool {
	_, ok := s.FirstWord(t)
	return ok
}

// Text is normalized input ready for matching.
type Text struct {
	s     string
	words string
}

// NewText normalizes raw input.
func NewText(raw string) Text {
	s := Normalize(raw)
	return Text{s: s, words: wordForm(s)}
}

func (t Text) String() string { return t.s }

func (t Text) Empty() bool { return t.s == "" }

// Contains is a plain substring check; sub must already be lowercase.
func (t Text) Contains(sub string) bool {
	return strings.Contains(t.s, sub)
}

// HasWord reports whether phrase occurs in t as whole words.
func (t Text) HasWord(phrase string) bool {
	p := wordForm(Normalize(phrase))
	if p == "  " {
		return false
	}
	return strings.Contains(t.words, p)
}

var punctuation = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"“", "\"",
	"”", "\"",
)

// Normalize applies NFKC, lowercases and collapses whitespace.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Lower(language.Und).String(s)
	s = punctuation.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// wordForm pads alphanumeric tokens with single spaces so that
// whole-word checks reduce to substring checks.
func wordForm(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return " " + strings.Join(fields, " ") + " "
}
