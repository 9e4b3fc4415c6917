package bpe

import (
	"fmt"
	"runtime"
	"sync"
	"unicode"
)

func parallel(seqs []*sequence, fn func(int, *sequence)) {
	var wg sync.WaitGroup
	wg.Add(len(seqs))
	for i, seq := range seqs {
		go func(i int, seq *sequence) {
			defer wg.Done()
			fn(i, seq)
		}(i, seq)
	}
	wg.Wait()
}

func parallelMerge(arr []map[Pair]int) map[Pair]int {
	type kv struct {
		key Pair
		val int
	}
	ret := make(map[Pair]int)
	var wg sync.WaitGroup
	var m sync.Mutex
	ch := make(chan kv, 1000)
	n := runtime.NumCPU()
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			for p := range ch {
				m.Lock()
				ret[p.key] += p.val
				m.Unlock()
			}
		}()
	}
	for _, mp := range arr {
		for k, v := range mp {
			ch <- kv{k, v}
		}
	}
	close(ch)
	wg.Wait()
	return ret
}

// fmtShow renders token bytes for logs, escaping anything unprintable.
func fmtShow(data []byte) string {
	var ret string
	for _, ch := range string(data) {
		if unicode.IsLetter(ch) ||
			unicode.IsNumber(ch) ||
			unicode.IsPunct(ch) {
			ret += string(ch)
			continue
		}
		ret += fmt.Sprintf("\\u%x", ch)
	}
	return ret
}
