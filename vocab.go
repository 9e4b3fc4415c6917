package bpe

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

func byteVocab() map[int][]byte {
	vocab := make(map[int][]byte, 256)
	for i := 0; i < 256; i++ {
		vocab[i] = []byte{byte(i)}
	}
	return vocab
}

// buildVocab reconstructs the id -> bytes table from merge rules applied in
// ascending id order. Byte strings are materialized once here so lookups
// never walk the merge chain.
func buildVocab(merges []Merge) (map[int][]byte, error) {
	vocab := byteVocab()
	for _, m := range merges {
		left, ok := vocab[m.Left]
		if !ok {
			return nil, &ConsistencyError{Merge: m, ID: m.Left}
		}
		right, ok := vocab[m.Right]
		if !ok {
			return nil, &ConsistencyError{Merge: m, ID: m.Right}
		}
		vocab[m.ID] = concat(left, right)
	}
	return vocab, nil
}

// persisted is the serialized tokenizer state. The merge array is ordered by
// priority, ids are implicit as 256+index, so the format cannot lose the
// merge order.
type persisted struct {
	Merges        [][2]int       `json:"merges"`
	SpecialTokens map[string]int `json:"special_tokens,omitempty"`
}

func (t *Tokenizer) WriteTo(w io.Writer) (int64, error) {
	doc := persisted{
		Merges:        make([][2]int, len(t.merges)),
		SpecialTokens: make(map[string]int, t.specials.Len()),
	}
	for i, m := range t.merges {
		doc.Merges[i] = [2]int{m.Left, m.Right}
	}
	for name, id := range t.specials.byName {
		doc.SpecialTokens[name] = id
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

func (t *Tokenizer) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	var doc persisted
	if err := json.Unmarshal(data, &doc); err != nil {
		return int64(len(data)), fmt.Errorf("parse tokenizer state: %w", err)
	}
	merges := make([]Merge, len(doc.Merges))
	rank := make(map[Pair]int, len(doc.Merges))
	for i, pair := range doc.Merges {
		merges[i] = Merge{Pair: Pair{pair[0], pair[1]}, ID: 256 + i}
		rank[merges[i].Pair] = merges[i].ID
	}
	vocab, err := buildVocab(merges)
	if err != nil {
		return int64(len(data)), err
	}
	t.merges = merges
	t.rank = rank
	t.vocab = vocab
	t.specials = NewSpecials(doc.SpecialTokens)
	return int64(len(data)), nil
}

func (t *Tokenizer) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = t.WriteTo(f)
	return err
}

func (t *Tokenizer) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = t.ReadFrom(f)
	return err
}
