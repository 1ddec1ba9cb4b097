package modkit

import "testing"

type sourcePorts struct {
	Root  string
	Limit int
}

func TestBuild(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		opts      []Option
		wantName  string
		wantPorts any
	}{
		{"defaults", nil, "", nil},
		{"name", []Option{WithName("analyze")}, "analyze", nil},
		{"last name wins", []Option{WithName("analyze"), WithName("events")}, "events", nil},
		{"ports keep concrete type", []Option{WithPorts(sourcePorts{Root: "filings", Limit: 3})}, "", sourcePorts{Root: "filings", Limit: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Build(tc.opts...)
			if b.Name != tc.wantName {
				t.Fatalf("Name = %q, want %q", b.Name, tc.wantName)
			}
			if b.Ports != tc.wantPorts {
				t.Fatalf("Ports = %#v, want %#v", b.Ports, tc.wantPorts)
			}
		})
	}
}
