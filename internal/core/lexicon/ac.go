package lexicon

// automaton is an Aho-Corasick matcher over lowercased bytes.
// Transitions are completed into a full DFA at build time so scanning never
// walks failure links

type acState struct {
	next [256]int32
	out  []int // phrase ids ending here, including those reached via suffix links
}

type automaton struct {
	states []acState
}

func newState() acState {
	var s acState
	for i := range s.next {
		s.next[i] = -1
	}
	return s
}

// buildAutomaton indexes phrases by position; empty phrases are skipped
func buildAutomaton(phrases []string) *automaton {
	a := &automaton{states: []acState{newState()}}
	for id, p := range phrases {
		if p == "" {
			continue
		}
		cur := int32(0)
		for i := 0; i < len(p); i++ {
			b := p[i]
			if a.states[cur].next[b] < 0 {
				a.states = append(a.states, newState())
				a.states[cur].next[b] = int32(len(a.states) - 1)
			}
			cur = a.states[cur].next[b]
		}
		a.states[cur].out = append(a.states[cur].out, id)
	}

	fail := make([]int32, len(a.states))
	queue := make([]int32, 0, len(a.states))
	for b := 0; b < 256; b++ {
		if s := a.states[0].next[b]; s > 0 {
			queue = append(queue, s)
		} else {
			a.states[0].next[b] = 0
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		r := queue[qi]
		a.states[r].out = append(a.states[r].out, a.states[fail[r]].out...)
		for b := 0; b < 256; b++ {
			s := a.states[r].next[b]
			if s < 0 {
				a.states[r].next[b] = a.states[fail[r]].next[b]
				continue
			}
			fail[s] = a.states[fail[r]].next[b]
			queue = append(queue, s)
		}
	}
	return a
}

// scan calls fn with the id of every phrase occurrence ending in text; fn returns false to stop
func (a *automaton) scan(text string, fn func(id int) bool) {
	cur := int32(0)
	for i := 0; i < len(text); i++ {
		cur = a.states[cur].next[text[i]]
		for _, id := range a.states[cur].out {
			if !fn(id) {
				return
			}
		}
	}
}
