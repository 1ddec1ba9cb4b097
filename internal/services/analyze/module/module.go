// Package module implements the analyze module
package module

import (
	"riskscan/internal/core/catalog"
	"riskscan/internal/core/lexicon"
	"riskscan/internal/core/matcher"
	"riskscan/internal/core/risk"
	"riskscan/internal/modkit"
	"riskscan/internal/services/analyze/domain"
	"riskscan/internal/services/analyze/service"
)

// Ports exposed by the analyze module
type Ports struct {
	Engine domain.EnginePort
	Runner domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps    modkit.Deps
	opts    Options
	table   *matcher.Table
	ports   Ports
	catalog *catalog.Catalog
}

// New constructs the analyze module. Catalog and lexicon are loaded once here and shared
// read-only by every analysis; a missing or unparsable source fails construction
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analyze"),
	}, opts...)...)

	// Source is optional: single-document commands only need the engine
	var ports domain.Ports
	if b.Ports != nil {
		p, ok := b.Ports.(domain.Ports)
		if !ok {
			panic("analyze module: expected WithPorts(analyze/domain.Ports)")
		}
		ports = p
	}

	// Merge config + overrides
	cfg := merge(FromConfig(deps.Cfg), overrides)
	if cfg.Risk == nil {
		th := risk.DefaultThresholds()
		cfg.Risk = &th
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	lex, err := lexicon.LoadDir(cfg.KeysDir)
	if err != nil {
		return nil, err
	}

	table := matcher.Compile(cat)
	for _, d := range table.Dropped {
		deps.Log.Warn().Str("event_type", d.EventType).Str("pattern", d.Pattern).Err(d.Err).Msg("explicit pattern dropped")
	}
	deps.Log.Debug().Int("event_types", table.Len()).Int("lexicon_critical", lex.Critical.Len()).Msg("analyze engine ready")

	engine := service.NewEngine(table, risk.New(lex, *cfg.Risk))
	runner := service.NewRunner(ports.Source, engine, deps.Recorder(), service.Config{
		Workers:    cfg.Workers,
		Limit:      cfg.Limit,
		WindowDays: cfg.WindowDays,
		IncludeRaw: cfg.IncludeRaw,
	})

	m := &Module{deps: deps, opts: cfg, table: table, catalog: cat}
	m.ports = Ports{
		Engine: engine,
		Runner: runner,
	}
	return m, nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "analyze" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Options returns the merged, validated options the module runs with
func (m *Module) Options() Options { return m.opts }

// Table returns the compiled pattern table
func (m *Module) Table() *matcher.Table { return m.table }

// Catalog returns the loaded event catalog
func (m *Module) Catalog() *catalog.Catalog { return m.catalog }
