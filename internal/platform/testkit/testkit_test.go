package testkit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPanics(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("boom") })
	MustNotPanic(t, func() {})
}

func TestMustContain(t *testing.T) {
	t.Parallel()
	MustContain(t, `{"event_type": "product_recall"}`, "product_recall")
}

func TestDate(t *testing.T) {
	t.Parallel()
	d := Date(t, "2023-01-10")
	if d.Year() != 2023 || d.Month() != 1 || d.Day() != 10 || d.Location().String() != "UTC" {
		t.Fatalf("Date parsed wrong: %v", d)
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()
	p := WriteFile(t, filepath.Join(t.TempDir(), "1", "nested", "filing.txt"), "Annual report.")
	b, err := os.ReadFile(p)
	if err != nil || string(b) != "Annual report." {
		t.Fatalf("read back %q, %v", b, err)
	}
}
