// Package lexicon holds the four keyword lists that drive risk sentence scoring.
// Lists are loaded once and are read-only afterwards
package lexicon

import (
	"bufio"
	"embed"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	perr "riskscan/internal/platform/errors"
	pstrings "riskscan/internal/platform/strings"
)

// List file names, shared by the embedded defaults and on-disk keys directories
const (
	FileCritical    = "critical_phrases.txt"
	FileHigh        = "high_priority_phrases.txt"
	FileContext     = "risk_context_words.txt"
	FileBoilerplate = "boilerplate_exclude.txt"
)

//go:embed keys/*.txt
var embedded embed.FS

// PhraseSet finds lowercased phrases as substrings of lowercased text
type PhraseSet struct {
	phrases []string
	ac      *automaton
}

// NewPhraseSet lowercases, trims and dedups phrases
func NewPhraseSet(phrases []string) *PhraseSet {
	ps := pstrings.LowerTrimmed(phrases)
	return &PhraseSet{phrases: ps, ac: buildAutomaton(ps)}
}

// Len returns the number of distinct phrases
func (p *PhraseSet) Len() int { return len(p.phrases) }

// Phrases returns a copy of the phrase list
func (p *PhraseSet) Phrases() []string {
	out := make([]string, len(p.phrases))
	copy(out, p.phrases)
	return out
}

// Found returns the distinct phrases contained in lower, in list order
func (p *PhraseSet) Found(lower string) []string {
	if len(p.phrases) == 0 || lower == "" {
		return nil
	}
	hit := make([]bool, len(p.phrases))
	n := 0
	p.ac.scan(lower, func(id int) bool {
		if !hit[id] {
			hit[id] = true
			n++
		}
		return n < len(p.phrases)
	})
	if n == 0 {
		return nil
	}
	out := make([]string, 0, n)
	for id, ok := range hit {
		if ok {
			out = append(out, p.phrases[id])
		}
	}
	return out
}

// Count returns how many distinct phrases lower contains
func (p *PhraseSet) Count(lower string) int { return len(p.Found(lower)) }

// Any reports whether lower contains at least one phrase
func (p *PhraseSet) Any(lower string) bool {
	found := false
	if len(p.phrases) == 0 {
		return false
	}
	p.ac.scan(lower, func(int) bool {
		found = true
		return false
	})
	return found
}

// Lexicon is the full set of keyword lists
type Lexicon struct {
	Critical    *PhraseSet
	High        *PhraseSet
	Boilerplate *PhraseSet
	context     map[string]struct{}
}

// New builds a Lexicon from raw lists
func New(critical, high, context, boilerplate []string) *Lexicon {
	l := &Lexicon{
		Critical:    NewPhraseSet(critical),
		High:        NewPhraseSet(high),
		Boilerplate: NewPhraseSet(boilerplate),
		context:     map[string]struct{}{},
	}
	for _, w := range pstrings.LowerTrimmed(context) {
		l.context[w] = struct{}{}
	}
	return l
}

// ContextWords returns the number of risk context words
func (l *Lexicon) ContextWords() int { return len(l.context) }

// HasContext reports whether any word of lower is a risk context word
func (l *Lexicon) HasContext(lower string) bool {
	for _, w := range Words(lower) {
		if _, ok := l.context[w]; ok {
			return true
		}
	}
	return false
}

// Default returns the lists compiled into the binary
func Default() (*Lexicon, error) {
	sub, err := fs.Sub(embedded, "keys")
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfigInvalid, "embedded lexicon")
	}
	return Load(sub)
}

// LoadDir reads the four lists from dir; an empty dir selects the embedded defaults
func LoadDir(dir string) (*Lexicon, error) {
	if strings.TrimSpace(dir) == "" {
		return Default()
	}
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		return nil, perr.WithField(perr.ConfigMissingf("keys directory not found: %s", dir), "keys_dir")
	}
	return Load(os.DirFS(dir))
}

// Load reads the four lists from fsys. Every list must be present
func Load(fsys fs.FS) (*Lexicon, error) {
	var lists [4][]string
	for i, name := range []string{FileCritical, FileHigh, FileContext, FileBoilerplate} {
		f, err := fsys.Open(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, perr.WithField(perr.ConfigMissingf("keyword file not found: %s", name), name)
			}
			return nil, perr.Wrapf(err, perr.ErrorCodeConfigInvalid, "open keyword file %s", name)
		}
		lst, err := ParseList(f)
		_ = f.Close()
		if err != nil {
			return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeConfigInvalid, "read keyword file %s", name), name)
		}
		lists[i] = lst
	}
	return New(lists[0], lists[1], lists[2], lists[3]), nil
}

// ParseList reads one entry per line, lowercased and trimmed, skipping blank lines and # comments
func ParseList(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.ToLower(line))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
