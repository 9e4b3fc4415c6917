package bpe

// Pair is an adjacent id pair inside one chunk.
type Pair struct {
	Left  int
	Right int
}

// Merge is a learned rule rewriting Pair to ID. The merge list ordered by ID
// ascending is the encode-time priority order.
type Merge struct {
	Pair
	ID int
}

func (p Pair) less(o Pair) bool {
	if p.Left == o.Left {
		return p.Right < o.Right
	}
	return p.Left < o.Left
}

// countPairs accumulates the adjacent pair counts of seq into counts,
// keeping whatever was counted before.
func countPairs(seq *sequence, counts map[Pair]int) {
	seq.RangeStat(func(left, right int) {
		counts[Pair{left, right}]++
	})
}

// countAll counts adjacent pairs over all chunks. Counting is fanned out per
// chunk, the merged result is identical to sequential accumulation.
func countAll(seqs []*sequence) map[Pair]int {
	mps := make([]map[Pair]int, len(seqs))
	parallel(seqs, func(i int, seq *sequence) {
		mp := make(map[Pair]int)
		countPairs(seq, mp)
		mps[i] = mp
	})
	return parallelMerge(mps)
}

// bestPair returns the pair with the highest count. Ties break on the
// lexicographically smallest (left, right), so the winner does not depend on
// map iteration order.
func bestPair(counts map[Pair]int) (Pair, int) {
	var best Pair
	freq := -1
	for pair, cnt := range counts {
		if cnt > freq || (cnt == freq && pair.less(best)) {
			best = pair
			freq = cnt
		}
	}
	return best, freq
}
