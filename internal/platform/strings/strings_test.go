package strings

import (
	"reflect"
	"testing"
)

func TestOr(t *testing.T) {
	t.Parallel()

	if got := Or("10-K", "N/A"); got != "10-K" {
		t.Fatalf("Or value = %q", got)
	}
	if got := Or("   ", "N/A"); got != "N/A" {
		t.Fatalf("Or blank = %q", got)
	}
}

func TestAppendUnique(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		dst  []string
		xs   []string
		want []string
	}{
		{"nil dst", nil, []string{"a", "b", "a"}, []string{"a", "b"}},
		{"keeps first seen order", []string{"b"}, []string{"a", "b", "c"}, []string{"b", "a", "c"}},
		{"nothing to add", []string{"a"}, nil, []string{"a"}},
	}
	for _, c := range cases {
		got := AppendUnique(c.dst, c.xs...)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: AppendUnique = %#v, want %#v", c.name, got, c.want)
		}
	}
}

func TestLowerTrimmed(t *testing.T) {
	t.Parallel()

	got := LowerTrimmed([]string{" Recall ", "", "RECALL", "probe"})
	want := []string{"recall", "probe"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LowerTrimmed = %#v, want %#v", got, want)
	}
}
