package modkit

import "testing"

type stub struct{ ports any }

func (s stub) Ports() any   { return s.ports }
func (s stub) Name() string { return "stub" }

var _ Module = stub{}

func TestModule_BuiltFromOptions(t *testing.T) {
	t.Parallel()

	b := Build(WithName("analyze"), WithPorts(stub{ports: 1}))
	var m Module = stub{ports: b.Ports}
	if _, ok := m.Ports().(stub); !ok || b.Name != "analyze" {
		t.Fatalf("unexpected build: %+v", b)
	}
}
