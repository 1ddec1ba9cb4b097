package risk

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"riskscan/internal/core/lexicon"
	perr "riskscan/internal/platform/errors"
)

func testLexicon() *lexicon.Lexicon {
	return lexicon.New(
		[]string{"going concern", "material weakness", "event of default"},
		[]string{"net loss", "litigation"},
		[]string{"risk", "may", "could", "adversely"},
		[]string{"forward-looking statements"},
	)
}

func newX() *Extractor { return New(testLexicon(), DefaultThresholds()) }

func TestScore_TwoCriticalWithContext(t *testing.T) {
	x := newX()
	s := "There is a material weakness and an event of default that may affect operations."
	sc, ok := x.Score(s)
	if !ok || sc.Score != 30 {
		t.Fatalf("Score = %+v ok=%v, want 30", sc, ok)
	}
	if !reflect.DeepEqual(sc.Critical, []string{"material weakness", "event of default"}) {
		t.Fatalf("Critical = %v", sc.Critical)
	}
	got := x.Extract(s)
	if len(got) != 1 || got[0].Score != 30 || got[0].Text != s {
		t.Fatalf("Extract = %+v", got)
	}
}

func TestScore_NoContextDropped(t *testing.T) {
	x := newX()
	s := "We identified a material weakness in internal control over reporting."
	if _, ok := x.Score(s); ok {
		t.Fatalf("sentence without a risk context word must not score")
	}
	if got := x.Extract(s); len(got) != 0 {
		t.Fatalf("Extract = %+v", got)
	}
	if _, ok := x.Score("It may rain on the parade tomorrow afternoon."); ok {
		t.Fatalf("context without phrases must not score")
	}
}

func TestScore_Monotonic(t *testing.T) {
	x := newX()
	base := "The net loss may widen as litigation continues"
	prev, _ := x.Score(base + ".")
	for _, add := range []string{" and a material weakness", " with an event of default", " and going concern doubts"} {
		base += add
		sc, ok := x.Score(base + ".")
		if !ok || sc.Score < prev.Score {
			t.Fatalf("adding a critical phrase lowered the score: %d -> %d", prev.Score, sc.Score)
		}
		prev = sc
	}
	if prev.Score != 3*15+2*10 {
		t.Fatalf("final score = %d", prev.Score)
	}
}

func TestExtract_FingerprintDedupAndOrder(t *testing.T) {
	x := newX()
	text := "The net loss may continue for the coming quarters of the year. " +
		"There is a material weakness and an event of default that may affect operations. " +
		"The NET loss may continue, for the coming quarters of the year!"
	got := x.Extract(text)
	if len(got) != 2 {
		t.Fatalf("Extract = %+v", got)
	}
	if got[0].Score != 30 || got[1].Score != 10 {
		t.Fatalf("not ranked by score: %+v", got)
	}
	if !strings.HasPrefix(got[1].Text, "The net loss") {
		t.Fatalf("first of the duplicate pair must be kept: %q", got[1].Text)
	}
	if Fingerprint("The NET loss, may!") != Fingerprint("the net   loss may.") {
		t.Fatalf("fingerprints differ on punctuation/case/space only")
	}
}

func TestExtract_TopNAndStableTies(t *testing.T) {
	x := newX()
	var b strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "Sentence %s reports a net loss that may continue for several quarters. ", strings.Repeat("z", i+1))
	}
	got := x.Extract(b.String())
	if len(got) != 10 {
		t.Fatalf("TopN not applied: %d", len(got))
	}
	if !strings.HasPrefix(got[0].Text, "Sentence z reports") {
		t.Fatalf("ties must keep appearance order: %q", got[0].Text)
	}
	if texts := x.Texts(b.String()); len(texts) != 10 || texts[0] != got[0].Text {
		t.Fatalf("Texts mismatch")
	}
}

func TestExtract_CustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.MinScore = 20
	x := New(testLexicon(), th)
	if got := x.Extract("The net loss may continue for the coming quarters of the year."); len(got) != 0 {
		t.Fatalf("single high phrase must fall under MinScore 20: %+v", got)
	}
	if x.Thresholds().MinScore != 20 {
		t.Fatalf("Thresholds()")
	}
}

func TestExtract_ShortFingerprintDropped(t *testing.T) {
	x := newX()
	// scores, but only 15 letters survive the fingerprint
	if got := x.Extract("Net loss may hit us 1 2."); len(got) != 0 {
		t.Fatalf("short fingerprint kept: %+v", got)
	}
}

func TestIsBoilerplate(t *testing.T) {
	x := newX()
	cases := map[string]bool{
		"This report contains Forward-Looking Statements that may change.": true,
		"Accounts 123456 and 654321 were closed after review by staff":     true,
		"Revenue 2023 2022 2021 1999 up":                                   true,
		"The case number 12345 was dismissed by the court last week":       false,
		"12 34 ab":                                                         false,
		"A plain sentence about litigation risk in general terms":          false,
	}
	for s, want := range cases {
		if got := x.IsBoilerplate(s); got != want {
			t.Fatalf("IsBoilerplate(%q) = %v, want %v", s, got, want)
		}
	}
	if got := x.Extract("Our forward-looking statements note a material weakness that may persist."); len(got) != 0 {
		t.Fatalf("boilerplate reached output: %+v", got)
	}
}

func TestSegment(t *testing.T) {
	got := Segment("Short one. This sentence has exactly six words. revenue was 5.2 million. it fell by a lot over time", 6, 60)
	want := []string{
		"This sentence has exactly six words. revenue was 5.2 million. it fell by a lot over time",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Segment = %q", got)
	}

	got = Segment("The loan is due in full. Provided, however, that the lender may extend the term by notice.", 6, 60)
	if len(got) != 1 || got[0] != "The loan is due in full. provided, however, that the lender may extend the term by notice." {
		t.Fatalf("protected connective split or lost: %q", got)
	}

	got = Segment("Payments continue as agreed. Notwithstanding the above the lender may accelerate all amounts.", 6, 60)
	if len(got) != 1 || !strings.Contains(got[0], "notwithstanding the above") {
		t.Fatalf("notwithstanding must not open a sentence: %q", got)
	}

	long := strings.Repeat("word ", 35) + "end; " + strings.Repeat("more ", 30) + "tail. x y"
	got = Segment(long, 6, 60)
	if len(got) != 2 || !strings.HasSuffix(got[0], "end") || !strings.HasPrefix(got[1], "more") {
		t.Fatalf("long sentence not re-split: %q", got)
	}

	if got := Segment("", 6, 60); len(got) != 0 {
		t.Fatalf("empty text")
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One two! Three?\n\tFour. five. Six")
	want := []string{"One two!", "Three?", "Four. five.", "Six"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitSentences = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 280); got != "short" {
		t.Fatalf("short text changed")
	}
	s := "Alpha beta. " + strings.Repeat("x", 300)
	if got := Truncate(s, 280); got != "Alpha beta." {
		t.Fatalf("cut at last period: %q", got)
	}
	h := Truncate(strings.Repeat("y", 300), 280)
	if h != strings.Repeat("y", 280)+TruncationMarker {
		t.Fatalf("hard cut: len=%d", len(h))
	}
	m := Truncate(strings.Repeat("é", 300), 280)
	if !utf8.ValidString(m) || utf8.RuneCountInString(m) != 280+len(TruncationMarker) {
		t.Fatalf("rune safe hard cut failed")
	}
}

func TestThresholds_Validate(t *testing.T) {
	if err := DefaultThresholds().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	bad := DefaultThresholds()
	bad.MaxWords = 3
	if err := bad.Validate(); !perr.IsCode(err, perr.ErrorCodeConfigInvalid) {
		t.Fatalf("MaxWords < MinWords: got %v", err)
	}
	bad = DefaultThresholds()
	bad.TopN = 0
	if err := bad.Validate(); err == nil {
		t.Fatalf("TopN 0 must fail")
	}
	bad = DefaultThresholds()
	bad.DigitRatio = 1.5
	if err := bad.Validate(); err == nil {
		t.Fatalf("DigitRatio > 1 must fail")
	}
}
