// Package matcher compiles catalog definitions into regex matchers tagged by origin
package matcher

import (
	"regexp"
	"strings"

	"riskscan/internal/core/catalog"
)

// Origin tells keyword-union matchers from explicit custom patterns
type Origin uint8

const (
	// OriginKeyword is the word-boundary alternation built from a keyword set
	OriginKeyword Origin = iota
	// OriginExplicit is a custom pattern taken verbatim from the catalog
	OriginExplicit
)

// String returns the report label for the origin
func (o Origin) String() string {
	if o == OriginExplicit {
		return "explicit"
	}
	return "keyword"
}

// MarshalText renders the origin label in json output
func (o Origin) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Priority orders origins for tie-breaks, lower wins
func (o Origin) Priority() int {
	if o == OriginExplicit {
		return 0
	}
	return 1
}

// Matcher is one compiled pattern
type Matcher struct {
	Origin Origin
	Source string
	Re     *regexp.Regexp
}

// Entry is the compiled form of one event type
type Entry struct {
	Def      catalog.Definition
	Matchers []Matcher
}

// Dropped records an explicit pattern that failed to compile
type Dropped struct {
	EventType string
	Pattern   string
	Err       error
}

// Table maps event type ids to their compiled entries; read-only after Compile
type Table struct {
	entries map[string]*Entry
	ids     []string

	// Dropped lists explicit patterns skipped at compile time
	Dropped []Dropped
}

// Compile builds the matcher table for every definition in c.
// Invalid explicit patterns are skipped; event types left without matchers are omitted
func Compile(c *catalog.Catalog) *Table {
	t := &Table{entries: make(map[string]*Entry, c.Len())}
	for _, def := range c.Definitions() {
		var ms []Matcher
		if src := KeywordPattern(def.Keywords); src != "" {
			ms = append(ms, Matcher{Origin: OriginKeyword, Source: src, Re: regexp.MustCompile(src)})
		}
		for _, rx := range def.RegexPatterns {
			if strings.TrimSpace(rx) == "" {
				continue
			}
			re, err := regexp.Compile("(?i)" + rx)
			if err != nil {
				t.Dropped = append(t.Dropped, Dropped{EventType: def.ID, Pattern: rx, Err: err})
				continue
			}
			ms = append(ms, Matcher{Origin: OriginExplicit, Source: rx, Re: re})
		}
		if len(ms) == 0 {
			continue
		}
		t.entries[def.ID] = &Entry{Def: def, Matchers: ms}
		t.ids = append(t.ids, def.ID) // Definitions is already sorted
	}
	return t
}

// KeywordPattern builds the case-insensitive word-boundary alternation for keywords.
// Blank and repeated keywords are ignored; an empty result means no matcher
func KeywordPattern(keywords []string) string {
	parts := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		k := strings.ToLower(kw)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		parts = append(parts, regexp.QuoteMeta(kw))
	}
	if len(parts) == 0 {
		return ""
	}
	return `(?i)\b(?:` + strings.Join(parts, "|") + `)\b`
}

// Len returns the number of compiled event types
func (t *Table) Len() int { return len(t.ids) }

// IDs returns compiled event type ids in lexical order
func (t *Table) IDs() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Get returns the entry for id
func (t *Table) Get(id string) (*Entry, bool) {
	e, ok := t.entries[id]
	return e, ok
}

// Each visits entries in lexical id order
func (t *Table) Each(fn func(id string, e *Entry)) {
	for _, id := range t.ids {
		fn(id, t.entries[id])
	}
}
