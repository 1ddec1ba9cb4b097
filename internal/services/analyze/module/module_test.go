package module

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"riskscan/internal/core/risk"
	"riskscan/internal/modkit"
	mmodule "riskscan/internal/modkit/module"
	"riskscan/internal/platform/config"
	perr "riskscan/internal/platform/errors"
	kit "riskscan/internal/platform/testkit"
	"riskscan/internal/services/analyze/domain"
)

func deps() modkit.Deps { return modkit.Deps{Cfg: config.New()} }

func TestNew_Defaults(t *testing.T) {
	m, err := New(deps(), Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	o := m.Options()
	if o.WindowDays != 365 || o.Workers != 2 || o.Limit != 0 || o.IncludeRaw {
		t.Fatalf("unexpected defaults: %+v", o)
	}
	if o.Risk == nil || *o.Risk != risk.DefaultThresholds() {
		t.Fatalf("risk thresholds = %+v", o.Risk)
	}
	if m.Table().Len() != m.Catalog().Len() {
		t.Fatalf("compiled %d of %d event types", m.Table().Len(), m.Catalog().Len())
	}

	ports := mmodule.MustPortsOf[Ports](m)
	if ports.Engine == nil || ports.Runner == nil {
		t.Fatalf("ports not wired: %+v", ports)
	}
	if _, ok := mmodule.PortsOf[domain.EnginePort](m); !ok {
		t.Fatal("engine port should be discoverable")
	}
}

func TestNew_ConfigAndOverrides(t *testing.T) {
	t.Setenv("CORE_ANALYZE_WINDOW_DAYS", "30")
	t.Setenv("CORE_ANALYZE_WORKERS", "4")
	t.Setenv("CORE_ANALYZE_INCLUDE_RAW", "true")
	t.Setenv("CORE_RISK_MIN_SCORE", "25")

	m, err := New(deps(), Options{Workers: 8, Limit: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	o := m.Options()
	if o.WindowDays != 30 || o.Workers != 8 || o.Limit != 3 || !o.IncludeRaw {
		t.Fatalf("merge mismatch: %+v", o)
	}
	if o.Risk.MinScore != 25 || o.Risk.CriticalWeight != 15 {
		t.Fatalf("thresholds mismatch: %+v", o.Risk)
	}

	th := risk.DefaultThresholds()
	th.TopN = 3
	m2, err := New(deps(), Options{Risk: &th})
	if err != nil {
		t.Fatal(err)
	}
	if m2.Options().Risk.TopN != 3 {
		t.Fatal("threshold override ignored")
	}
}

func TestNew_ConfigErrors(t *testing.T) {
	_, err := New(deps(), Options{CatalogPath: filepath.Join(t.TempDir(), "missing.json")})
	if !perr.IsCode(err, perr.ErrorCodeConfigMissing) {
		t.Fatalf("missing catalog err = %v", err)
	}

	_, err = New(deps(), Options{KeysDir: filepath.Join(t.TempDir(), "nokeys")})
	if !perr.IsCode(err, perr.ErrorCodeConfigMissing) {
		t.Fatalf("missing keys err = %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = New(deps(), Options{CatalogPath: bad})
	if !perr.IsCode(err, perr.ErrorCodeConfigInvalid) {
		t.Fatalf("bad catalog err = %v", err)
	}

	t.Setenv("CORE_RISK_MAX_WORDS", "3")
	_, err = New(deps(), Options{})
	if !perr.IsConfig(err) {
		t.Fatalf("bad thresholds err = %v", err)
	}
}

func TestNew_WrongPortsPanics(t *testing.T) {
	kit.MustPanic(t, func() {
		_, _ = New(deps(), Options{}, modkit.WithPorts(42))
	})
}

type emptySource struct{}

func (emptySource) Name() string { return "empty" }
func (emptySource) List(context.Context) ([]domain.FilingRef, error) {
	return nil, nil
}
func (emptySource) Load(context.Context, domain.FilingRef) (domain.Filing, error) {
	return domain.Filing{}, perr.ErrNotFound
}

func TestNew_RunnerUsesSource(t *testing.T) {
	m, err := New(deps(), Options{}, modkit.WithPorts(domain.Ports{Source: emptySource{}}))
	if err != nil {
		t.Fatal(err)
	}
	rep, err := mmodule.MustPortsOf[Ports](m).Runner.RunAll(context.Background())
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if rep.Source != "empty" || rep.FilingsAnalyzed != 0 || len(rep.Results) != 0 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}
