package detector

import "sort"

// spanSet holds disjoint [start,end) spans sorted by start
type spanSet struct {
	spans [][2]int
}

// claim inserts [start,end) unless it overlaps a held span
func (s *spanSet) claim(start, end int) bool {
	i := sort.Search(len(s.spans), func(k int) bool { return s.spans[k][0] >= start })
	if i > 0 && s.spans[i-1][1] > start {
		return false
	}
	if i < len(s.spans) && s.spans[i][0] < end {
		return false
	}
	s.spans = append(s.spans, [2]int{})
	copy(s.spans[i+1:], s.spans[i:])
	s.spans[i] = [2]int{start, end}
	return true
}
