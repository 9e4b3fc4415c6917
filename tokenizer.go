package bpe

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/lwch/logging"
)

// Tokenizer is a byte-level byte-pair-encoding tokenizer. Ids 0-255 are raw
// bytes, ids from 256 up are merges learned by Train in minting order.
// Merges and vocabulary never change after Train or ReadFrom, so a built
// Tokenizer is safe for concurrent Encode and Decode.
type Tokenizer struct {
	merges   []Merge
	rank     map[Pair]int
	vocab    map[int][]byte
	specials *Specials
}

func New() *Tokenizer {
	return &Tokenizer{
		rank:     make(map[Pair]int),
		vocab:    byteVocab(),
		specials: NewSpecials(nil),
	}
}

// Specials is an immutable special-token table. Registration replaces the
// whole value, it is never mutated in place.
type Specials struct {
	byName map[string]int
	byID   map[int]string
	names  []string // longest first, the scan order of the encoder
}

func NewSpecials(tokens map[string]int) *Specials {
	s := &Specials{
		byName: make(map[string]int, len(tokens)),
		byID:   make(map[int]string, len(tokens)),
		names:  make([]string, 0, len(tokens)),
	}
	for name, id := range tokens {
		s.byName[name] = id
		s.byID[id] = name
		s.names = append(s.names, name)
	}
	sort.Slice(s.names, func(i, j int) bool {
		if len(s.names[i]) == len(s.names[j]) {
			return s.names[i] < s.names[j]
		}
		return len(s.names[i]) > len(s.names[j])
	})
	return s
}

func (s *Specials) Len() int {
	return len(s.byName)
}

func (s *Specials) ID(name string) (int, bool) {
	id, ok := s.byName[name]
	return id, ok
}

func (s *Specials) Name(id int) (string, bool) {
	name, ok := s.byID[id]
	return name, ok
}

// RegisterSpecials installs the special-token table. Ids must not overlap
// byte or merge ids; training never touches the table.
func (t *Tokenizer) RegisterSpecials(s *Specials) {
	if s == nil {
		s = NewSpecials(nil)
	}
	t.specials = s
}

func (t *Tokenizer) Specials() *Specials {
	return t.specials
}

// Merges returns the learned rules in priority order.
func (t *Tokenizer) Merges() []Merge {
	ret := make([]Merge, len(t.merges))
	copy(ret, t.merges)
	return ret
}

// VocabSize counts distinct ids across the vocabulary and the special-token
// table.
func (t *Tokenizer) VocabSize() int {
	size := len(t.vocab)
	for id := range t.specials.byID {
		if _, ok := t.vocab[id]; !ok {
			size++
		}
	}
	return size
}

// Train learns up to size-256 merges from text, stopping early when no
// adjacent pair is left. Same text and size always produce the same merges.
func (t *Tokenizer) Train(text string, size int) error {
	if size < 256 {
		return fmt.Errorf("%w, got %d", ErrVocabSize, size)
	}

	chunks := split(text)
	seqs := make([]*sequence, len(chunks))
	for i, chunk := range chunks {
		seqs[i] = newSequence([]byte(chunk))
	}
	logging.Info("train: %s of text, %s chunks",
		humanize.Bytes(uint64(len(text))), humanize.Comma(int64(len(seqs))))

	merges := make([]Merge, 0, size-256)
	rank := make(map[Pair]int, size-256)
	vocab := byteVocab()
	for i := 0; i < size-256; i++ {
		counts := countAll(seqs)
		if len(counts) == 0 {
			logging.Info("train: no pairs left after %d merges", i)
			break
		}
		pair, freq := bestPair(counts)
		id := 256 + i
		parallel(seqs, func(_ int, seq *sequence) {
			seq.Merge(pair, id)
		})
		merges = append(merges, Merge{Pair: pair, ID: id})
		rank[pair] = id
		vocab[id] = concat(vocab[pair.Left], vocab[pair.Right])
		logging.Info("round %d: merge (%s, %s) -> %d, freq %s",
			i+1, fmtShow(vocab[pair.Left]), fmtShow(vocab[pair.Right]),
			id, humanize.Comma(int64(freq)))
	}

	t.merges = merges
	t.rank = rank
	t.vocab = vocab
	return nil
}

// TrainFiles trains on the concatenated contents of the given UTF-8 text
// files.
func (t *Tokenizer) TrainFiles(files []string, size int) error {
	var sb strings.Builder
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		logging.Info("train: %s, %s", file, humanize.Bytes(uint64(len(data))))
		sb.Write(data)
	}
	return t.Train(sb.String(), size)
}

func concat(left, right []byte) []byte {
	ret := make([]byte, 0, len(left)+len(right))
	ret = append(ret, left...)
	return append(ret, right...)
}
