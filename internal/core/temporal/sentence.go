package temporal

import (
	"strings"
	"unicode/utf8"
)

// SentenceWindow is the fallback reach in bytes on each side of a span midpoint
const SentenceWindow = 250

const sentenceStops = ".?!\n"

// TriggerSentence returns the sentence around the midpoint of [start,end).
// Bounds are the nearest stop before the midpoint and the nearest at or after it;
// a side without a stop falls back to window bytes. Results longer than
// 2*window keep their middle part. Nil when the span is invalid or the sentence is blank
func TriggerSentence(text string, start, end, window int) *string {
	if text == "" || start < 0 || end > len(text) || start >= end {
		return nil
	}
	if window <= 0 {
		window = SentenceWindow
	}
	center := (start + end) / 2

	left := strings.LastIndexAny(text[:center], sentenceStops)
	if left < 0 {
		left = max(0, center-window)
	} else {
		left++
	}
	right := strings.IndexAny(text[center:], sentenceStops)
	if right < 0 {
		right = min(len(text), center+window)
	} else {
		right += center + 1
	}
	left, right = snapForward(text, left), snapBack(text, right)
	if left >= right {
		return nil
	}

	sent := strings.TrimSpace(text[left:right])
	if len(sent) > window*2 {
		mid := len(sent) / 2
		from := snapForward(sent, max(0, mid-window))
		to := snapBack(sent, min(len(sent), from+window*2))
		sent = strings.TrimSpace(sent[from:to])
	}
	if sent == "" {
		return nil
	}
	return &sent
}

// snapForward moves i to the next rune start
func snapForward(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}

// snapBack moves i back to the previous rune start so s[:i] stays valid
func snapBack(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
