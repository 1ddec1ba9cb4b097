package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPrefixAndKey(t *testing.T) {
	risk := New().Prefix("CORE_").Prefix("RISK_")
	if got := risk.Key("MIN_SCORE"); got != "CORE_RISK_MIN_SCORE" {
		t.Fatalf("Key = %q", got)
	}
}

func TestMay(t *testing.T) {
	c := New().Prefix("CORE_ANALYZE_")
	t.Setenv("CORE_ANALYZE_NAME", "  riskscan ")
	t.Setenv("CORE_ANALYZE_BLANK", "   ")
	t.Setenv("CORE_ANALYZE_WORKERS", " 8 ")
	t.Setenv("CORE_ANALYZE_BAD_INT", "eight")
	t.Setenv("CORE_ANALYZE_RATIO", "0.25")
	t.Setenv("CORE_ANALYZE_BAD_RATIO", "quarter")
	t.Setenv("CORE_ANALYZE_RAW", "true")
	t.Setenv("CORE_ANALYZE_BAD_RAW", "maybe")

	if got := c.MayString("NAME", "x"); got != "riskscan" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("BLANK", "def"); got != "def" {
		t.Fatalf("blank MayString = %q", got)
	}

	ints := map[string]int{"WORKERS": 8, "BAD_INT": 2, "MISSING": 2}
	for key, want := range ints {
		if got := c.MayInt(key, 2); got != want {
			t.Fatalf("MayInt(%s) = %d, want %d", key, got, want)
		}
	}
	floats := map[string]float64{"RATIO": 0.25, "BAD_RATIO": 0.4, "MISSING": 0.4}
	for key, want := range floats {
		if got := c.MayFloat64(key, 0.4); got != want {
			t.Fatalf("MayFloat64(%s) = %v, want %v", key, got, want)
		}
	}
	bools := map[string]bool{"RAW": true, "BAD_RAW": false, "MISSING": false}
	for key, want := range bools {
		if got := c.MayBool(key, false); got != want {
			t.Fatalf("MayBool(%s) = %v, want %v", key, got, want)
		}
	}
}

func TestMayPath(t *testing.T) {
	dir := t.TempDir()
	keys := filepath.Join(dir, "keys")
	if err := os.Mkdir(keys, 0o755); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "nope.json")
	t.Setenv("CORE_ANALYZE_KEYS_DIR", keys)
	t.Setenv("CORE_ANALYZE_CATALOG_PATH", missing)

	c := New().Prefix("CORE_ANALYZE_")
	if got := c.MayPath("KEYS_DIR", ""); got != keys {
		t.Fatalf("MayPath existing = %q", got)
	}
	if got := c.MayPath("CATALOG_PATH", ""); got != missing {
		t.Fatalf("missing path should still be returned, got %q", got)
	}
	if got := c.MayPath("UNSET", ""); got != "" {
		t.Fatalf("unset path = %q", got)
	}
}
