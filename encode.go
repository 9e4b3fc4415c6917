package bpe

import "strings"

type fragment struct {
	text    string
	id      int
	special bool
}

// splitSpecials cuts text on verbatim, leftmost, non-overlapping occurrences
// of registered special tokens. When two specials start at the same offset
// the longer literal wins. The next occurrence of each special is cached and
// only re-searched once the cursor passes it, so the walk is a single pass.
func splitSpecials(text string, specials *Specials) []fragment {
	if specials.Len() == 0 || text == "" {
		return []fragment{{text: text}}
	}
	next := make([]int, len(specials.names))
	for i, name := range specials.names {
		next[i] = strings.Index(text, name)
	}
	var frags []fragment
	pos := 0
	for pos < len(text) {
		best, bestIdx := -1, -1
		for i, name := range specials.names {
			if next[i] >= 0 && next[i] < pos {
				if j := strings.Index(text[pos:], name); j >= 0 {
					next[i] = pos + j
				} else {
					next[i] = -1
				}
			}
			if next[i] >= 0 && (best < 0 || next[i] < best) {
				best, bestIdx = next[i], i
			}
		}
		if best < 0 {
			frags = append(frags, fragment{text: text[pos:]})
			break
		}
		if best > pos {
			frags = append(frags, fragment{text: text[pos:best]})
		}
		name := specials.names[bestIdx]
		id, _ := specials.ID(name)
		frags = append(frags, fragment{text: name, id: id, special: true})
		pos = best + len(name)
	}
	return frags
}

// Encode converts text to token ids. Registered special tokens are matched
// verbatim and emitted as their reserved id, everything else goes through the
// pre-tokenizer and greedy merging. Every byte has a vocabulary entry, so
// Encode cannot fail and Decode(Encode(text)) always restores text.
func (t *Tokenizer) Encode(text string) []int {
	var ids []int
	for _, frag := range splitSpecials(text, t.specials) {
		if frag.special {
			ids = append(ids, frag.id)
			continue
		}
		for _, chunk := range split(frag.text) {
			ids = append(ids, t.encodeChunk(chunk)...)
		}
	}
	return ids
}

// encodeChunk repeatedly applies the eligible merge with the lowest id, the
// rule learned earliest, until none is left. Lower id means higher priority.
func (t *Tokenizer) encodeChunk(chunk string) []int {
	seq := newSequence([]byte(chunk))
	for seq.Size() >= 2 {
		var best Pair
		id := -1
		seq.RangeStat(func(left, right int) {
			if rank, ok := t.rank[Pair{left, right}]; ok && (id < 0 || rank < id) {
				best = Pair{left, right}
				id = rank
			}
		})
		if id < 0 {
			break
		}
		seq.Merge(best, id)
	}
	return seq.ids
}
