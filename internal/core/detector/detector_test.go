package detector

import (
	"math/rand"
	"testing"

	"riskscan/internal/core/catalog"
	"riskscan/internal/core/matcher"
)

func mustDetector(t *testing.T, doc string) *Detector {
	t.Helper()
	c, err := catalog.Parse([]byte(doc), catalog.FormatJSON)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return New(matcher.Compile(c))
}

func assertDisjoint(t *testing.T, occ []Occurrence) {
	t.Helper()
	for i := range occ {
		if occ[i].Start >= occ[i].End {
			t.Fatalf("empty span kept: %+v", occ[i])
		}
		for j := i + 1; j < len(occ); j++ {
			if occ[i].Overlaps(occ[j]) {
				t.Fatalf("overlap: %+v vs %+v", occ[i], occ[j])
			}
		}
		if i > 0 && occ[i-1].Start > occ[i].Start {
			t.Fatalf("not ordered by start at %d", i)
		}
	}
}

func TestScan_EndToEndRecall(t *testing.T) {
	d := mustDetector(t, `{"product_recall":{"keywords":["recall"],"T_star_days":90}}`)
	text := "The company announced a product recall on 2023-03-01 affecting several units."
	occ := d.Scan(text)
	if len(occ) != 1 {
		t.Fatalf("occurrences = %+v", occ)
	}
	o := occ[0]
	if o.EventType != "product_recall" || o.Text != "recall" || text[o.Start:o.End] != "recall" {
		t.Fatalf("occurrence mismatch: %+v", o)
	}
	if o.Origin != matcher.OriginKeyword || o.Def.TStarDays == nil || *o.Def.TStarDays != 90 {
		t.Fatalf("metadata not copied: %+v", o)
	}
}

func TestScan_LongestMatchWins(t *testing.T) {
	d := mustDetector(t, `{
	  "a_short": {"regex_patterns": ["product"]},
	  "b_long":  {"keywords": ["product recall"]}
	}`)
	occ := d.Scan("A product recall began.")
	if len(occ) != 1 || occ[0].EventType != "b_long" {
		t.Fatalf("longer keyword match should beat shorter explicit match: %+v", occ)
	}
}

func TestScan_ExplicitWinsTie(t *testing.T) {
	d := mustDetector(t, `{
	  "a_keyword":  {"keywords": ["recall"]},
	  "b_explicit": {"regex_patterns": ["recall"]}
	}`)
	occ := d.Scan("Recall notice")
	if len(occ) != 1 || occ[0].EventType != "b_explicit" || occ[0].Origin != matcher.OriginExplicit {
		t.Fatalf("explicit origin should win equal length tie: %+v", occ)
	}

	// same type, both origins
	d2 := mustDetector(t, `{"r": {"keywords": ["recall"], "regex_patterns": ["recall"]}}`)
	occ2 := d2.Scan("a recall")
	if len(occ2) != 1 || occ2[0].Origin != matcher.OriginExplicit {
		t.Fatalf("same type tie: %+v", occ2)
	}
}

func TestScan_SortedByStart(t *testing.T) {
	d := mustDetector(t, `{
	  "debt_default": {"keywords": ["event of default"]},
	  "litigation":   {"keywords": ["lawsuit"]}
	}`)
	text := "A lawsuit was filed. Later an event of default occurred, then another lawsuit."
	occ := d.Scan(text)
	if len(occ) != 3 {
		t.Fatalf("occurrences = %+v", occ)
	}
	want := []string{"litigation", "debt_default", "litigation"}
	for i, w := range want {
		if occ[i].EventType != w {
			t.Fatalf("order[%d] = %s, want %s", i, occ[i].EventType, w)
		}
	}
	assertDisjoint(t, occ)
}

func TestScan_EmptyAndNoMatchers(t *testing.T) {
	d := mustDetector(t, `{"r":{"keywords":["recall"]},"none":{}}`)
	if got := d.Scan(""); len(got) != 0 {
		t.Fatalf("empty text: %+v", got)
	}
	for _, o := range d.Scan("recall recall") {
		if o.EventType == "none" {
			t.Fatalf("event type without matchers emitted")
		}
	}
	if got := New(nil).Scan("recall"); len(got) != 0 {
		t.Fatalf("nil table: %+v", got)
	}
}

func TestScan_DropsEmptyMatches(t *testing.T) {
	d := mustDetector(t, `{"opt":{"regex_patterns":["x*"]}}`)
	occ := d.Scan("abc xx def")
	if len(occ) != 1 || occ[0].Text != "xx" {
		t.Fatalf("empty matches must be skipped: %+v", occ)
	}
}

func TestRaw_KeepsOverlaps(t *testing.T) {
	d := mustDetector(t, `{
	  "a": {"keywords": ["product recall"]},
	  "b": {"keywords": ["recall"]}
	}`)
	raw := d.Raw("product recall")
	if len(raw) != 2 {
		t.Fatalf("raw should keep both overlapping hits: %+v", raw)
	}
}

func TestNewWithOptions_Cap(t *testing.T) {
	c, _ := catalog.Parse([]byte(`{"r":{"keywords":["recall"]}}`), catalog.FormatJSON)
	d := NewWithOptions(matcher.Compile(c), Options{MaxRawMatches: 2})
	if got := d.Raw("recall recall recall"); len(got) != 2 {
		t.Fatalf("cap not applied: %d", len(got))
	}
	if d.Table() == nil {
		t.Fatalf("Table() nil")
	}
}

func TestResolve_NonOverlapRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		var raw []Occurrence
		for k := 0; k < 25; k++ {
			s := rng.Intn(100)
			l := 1 + rng.Intn(12)
			raw = append(raw, Occurrence{
				EventType: "t",
				Start:     s,
				End:       s + l,
				Origin:    matcher.Origin(rng.Intn(2)),
			})
		}
		kept := Resolve(raw)
		assertDisjoint(t, kept)
		if len(kept) == 0 {
			t.Fatalf("at least one span must survive")
		}
		// the longest raw span always survives
		longest := 0
		for _, r := range raw {
			longest = max(longest, r.Len())
		}
		found := false
		for _, k := range kept {
			if k.Len() == longest {
				found = true
			}
		}
		if !found {
			t.Fatalf("no kept span has the maximal length %d", longest)
		}
	}
}

func TestResolve_AdjacentSpansBothKept(t *testing.T) {
	kept := Resolve([]Occurrence{
		{Start: 0, End: 5},
		{Start: 5, End: 10},
		{Start: 3, End: 7},
	})
	if len(kept) != 2 || kept[0].Start != 0 || kept[1].Start != 5 {
		t.Fatalf("touching spans do not overlap: %+v", kept)
	}
	if Resolve(nil) != nil {
		t.Fatalf("nil in, nil out")
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	raw := []Occurrence{{Start: 5, End: 6}, {Start: 0, End: 10}}
	_ = Resolve(raw)
	if raw[0].Start != 5 {
		t.Fatalf("input reordered")
	}
}
