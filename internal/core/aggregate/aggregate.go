// Package aggregate folds resolved occurrences into one group per event type
package aggregate

import (
	"sort"
	"time"

	"riskscan/internal/core/temporal"
	pstrings "riskscan/internal/platform/strings"
	ptime "riskscan/internal/platform/time"
)

// EventGroup is one event type's roll-up for a filing
type EventGroup struct {
	EventType          string
	EventNature        string
	Description        string
	ConfidenceInterval any
	TStarDays          *int
	LikelyTriggers     []string

	// Members are unique by span, in input order
	Members        []temporal.Resolved
	Representative temporal.Resolved

	StartedOn     *time.Time
	EndsOn        *time.Time
	DaysRemaining *int
	Relation      temporal.Relation
}

// Count returns the number of distinct members
func (g EventGroup) Count() int { return len(g.Members) }

// Aggregate groups rs by event type in order of first appearance.
// Occurrences repeating a span already in the group are folded away
func Aggregate(rs []temporal.Resolved, today time.Time) []EventGroup {
	parts := partition(rs)
	out := make([]EventGroup, 0, len(parts))
	for _, p := range parts {
		if g, ok := fold(p, today); ok {
			out = append(out, g)
		}
	}
	return out
}

// partition splits rs by event type keeping first appearance order,
// dropping members whose span is already present in their partition
func partition(rs []temporal.Resolved) [][]temporal.Resolved {
	type key struct{ start, end int }
	index := map[string]int{}
	seen := map[string]map[key]struct{}{}
	var parts [][]temporal.Resolved
	for _, r := range rs {
		if r.EventType == "" {
			continue
		}
		i, ok := index[r.EventType]
		if !ok {
			i = len(parts)
			index[r.EventType] = i
			parts = append(parts, nil)
			seen[r.EventType] = map[key]struct{}{}
		}
		k := key{r.Start, r.End}
		if _, dup := seen[r.EventType][k]; dup {
			continue
		}
		seen[r.EventType][k] = struct{}{}
		parts[i] = append(parts[i], r)
	}
	return parts
}

func fold(members []temporal.Resolved, today time.Time) (EventGroup, bool) {
	if len(members) == 0 {
		return EventGroup{}, false
	}
	first := members[0].Def
	g := EventGroup{
		EventType:          members[0].EventType,
		EventNature:        first.EventNature,
		Description:        first.Description,
		ConfidenceInterval: first.ConfidenceInterval,
		Members:            members,
		Relation:           temporal.RelationUnknown,
	}

	starts := make([]*time.Time, 0, len(members))
	ends := make([]*time.Time, 0, len(members))
	for _, m := range members {
		g.LikelyTriggers = pstrings.AppendUnique(g.LikelyTriggers, m.Def.LikelyTriggers...)
		starts = append(starts, m.StartedOn)
		ends = append(ends, m.EndsOn)
		if m.Relation.Rank() > g.Relation.Rank() {
			g.Relation = m.Relation
		}
	}
	g.StartedOn = ptime.Earliest(starts...)
	g.EndsOn = ptime.Latest(ends...)
	g.DaysRemaining = temporal.DaysUntil(g.EndsOn, today)

	g.Representative = representative(members)
	g.TStarDays = g.Representative.Def.TStarDays
	return g, true
}

// representative prefers explicit-origin members, then the longest matched text
func representative(members []temporal.Resolved) temporal.Resolved {
	ranked := make([]temporal.Resolved, len(members))
	copy(ranked, members)
	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := ranked[i].Origin.Priority(), ranked[j].Origin.Priority()
		if pi != pj {
			return pi < pj
		}
		return len(ranked[i].Text) > len(ranked[j].Text)
	})
	return ranked[0]
}
