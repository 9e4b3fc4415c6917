package bpe

// sequence is the rewritable id buffer of a single pre-tokenizer chunk. It is
// owned by one training or encoding pass and never shared across chunks.
type sequence struct {
	ids []int
}

func newSequence(data []byte) *sequence {
	ids := make([]int, len(data))
	for i, b := range data {
		ids[i] = int(b)
	}
	return &sequence{ids: ids}
}

func (s *sequence) Size() int {
	return len(s.ids)
}

// RangeStat calls fn for every adjacent id pair in order.
func (s *sequence) RangeStat(fn func(left, right int)) {
	for i := 0; i+1 < len(s.ids); i++ {
		fn(s.ids[i], s.ids[i+1])
	}
}

// Merge replaces every non-overlapping occurrence of pair with id, scanning
// left to right: in X,X,X the first two merge, the third stays.
func (s *sequence) Merge(pair Pair, id int) {
	out := s.ids[:0]
	for i := 0; i < len(s.ids); {
		if i+1 < len(s.ids) && s.ids[i] == pair.Left && s.ids[i+1] == pair.Right {
			out = append(out, id)
			i += 2
			continue
		}
		out = append(out, s.ids[i])
		i++
	}
	s.ids = out
}
