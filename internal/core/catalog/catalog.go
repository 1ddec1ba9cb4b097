// Package catalog loads event type definitions from a json or yaml document.
// A catalog is loaded once, validated as a whole and shared read-only afterwards
package catalog

import (
	_ "embed"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	perr "riskscan/internal/platform/errors"
	"riskscan/internal/platform/validate"

	"gopkg.in/yaml.v3"
)

//go:embed events.json
var embedded []byte

// Format selects the document decoder
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the decoder from the file extension, json by default
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Definition is one event type record. ID is the catalog key, not a document field
type Definition struct {
	ID                 string   `json:"-" yaml:"-" validate:"required,event_id"`
	Keywords           []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	RegexPatterns      []string `json:"regex_patterns,omitempty" yaml:"regex_patterns,omitempty"`
	TStarDays          *int     `json:"T_star_days,omitempty" yaml:"T_star_days,omitempty" validate:"omitempty,min=0,max=36500"`
	EventNature        string   `json:"event_nature,omitempty" yaml:"event_nature,omitempty" validate:"max=64"`
	LikelyTriggers     []string `json:"likely_triggers,omitempty" yaml:"likely_triggers,omitempty"`
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`
	ConfidenceInterval any      `json:"confidence_interval,omitempty" yaml:"confidence_interval,omitempty"`
}

// Catalog is an immutable set of definitions keyed by event type id
type Catalog struct {
	defs map[string]Definition
	ids  []string
}

// New validates defs and freezes them into a Catalog. Map keys win over any ID already set
func New(defs map[string]Definition) (*Catalog, error) {
	c := &Catalog{
		defs: make(map[string]Definition, len(defs)),
		ids:  make([]string, 0, len(defs)),
	}
	for id, d := range defs {
		d.ID = id
		if err := validate.Struct(d); err != nil {
			return nil, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeConfigInvalid, "event type %q", id), "catalog.New")
		}
		c.defs[id] = d
		c.ids = append(c.ids, id)
	}
	sort.Strings(c.ids)
	return c, nil
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(embedded, FormatJSON)
}

// Load reads the catalog at path; an empty path selects the embedded default
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.WithField(perr.ConfigMissingf("event catalog not found: %s", path), "catalog_path")
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeConfigInvalid, "read event catalog %s", path)
	}
	c, err := Parse(b, FormatFor(path))
	if err != nil {
		return nil, perr.WithOp(err, "catalog.Load "+path)
	}
	return c, nil
}

// Parse decodes a whole catalog document. Nothing is returned unless every record is valid
func Parse(data []byte, f Format) (*Catalog, error) {
	defs, err := decode(data, f)
	if err != nil {
		return nil, err
	}
	return New(defs)
}

func decode(data []byte, f Format) (map[string]Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, perr.ConfigInvalidf("event catalog is empty")
	}
	defs := map[string]Definition{}
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &defs); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeConfigInvalid, "parse event catalog yaml")
		}
	default:
		if err := json.Unmarshal(data, &defs); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeConfigInvalid, "parse event catalog json")
		}
	}
	return defs, nil
}

// Len returns the number of event types
func (c *Catalog) Len() int { return len(c.ids) }

// IDs returns the event type ids in lexical order
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Get returns the definition for id
func (c *Catalog) Get(id string) (Definition, bool) {
	d, ok := c.defs[id]
	return d, ok
}

// Definitions returns every definition ordered by id
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.defs[id])
	}
	return out
}

// MarshalJSON renders the catalog back into its document shape
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.defs)
}
