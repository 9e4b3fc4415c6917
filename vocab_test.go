package bpe

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVocab(t *testing.T) {
	vocab, err := buildVocab([]Merge{
		{Pair: Pair{97, 98}, ID: 256},
		{Pair: Pair{256, 99}, ID: 257},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), vocab[256])
	assert.Equal(t, []byte("abc"), vocab[257])
	assert.Equal(t, []byte{0}, vocab[0])
	assert.Equal(t, []byte{255}, vocab[255])
}

func TestBuildVocabConsistency(t *testing.T) {
	_, err := buildVocab([]Merge{
		{Pair: Pair{300, 97}, ID: 256},
	})
	require.Error(t, err)
	var consistency *ConsistencyError
	require.True(t, errors.As(err, &consistency))
	assert.Equal(t, 300, consistency.ID)
}

func TestPersistRoundTrip(t *testing.T) {
	src := New()
	require.NoError(t, src.Train(trainText, 300))
	src.RegisterSpecials(NewSpecials(map[string]int{
		"<|recipe_start|>": 2047,
		"<|recipe_end|>":   2046,
	}))

	var buf bytes.Buffer
	_, err := src.WriteTo(&buf)
	require.NoError(t, err)

	dst := New()
	_, err = dst.ReadFrom(&buf)
	require.NoError(t, err)

	require.Empty(t, cmp.Diff(src.Merges(), dst.Merges()))
	require.Equal(t, src.VocabSize(), dst.VocabSize())

	id, ok := dst.Specials().ID("<|recipe_start|>")
	require.True(t, ok)
	assert.Equal(t, 2047, id)

	text := "Cream the butter<|recipe_end|>"
	require.Equal(t, src.Encode(text), dst.Encode(text))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokenizer.json")

	src := New()
	require.NoError(t, src.Train("aaabdaaabac", 259))
	require.NoError(t, src.Save(path))

	dst := New()
	require.NoError(t, dst.Load(path))
	require.Equal(t, []int{258, 100, 258, 97, 99}, dst.Encode("aaabdaaabac"))
}

func TestReadFromCorrupt(t *testing.T) {
	// merge referencing ids that do not exist yet
	tk := New()
	_, err := tk.ReadFrom(strings.NewReader(`{"merges":[[300,301]]}`))
	require.Error(t, err)
	var consistency *ConsistencyError
	require.True(t, errors.As(err, &consistency))

	// not even JSON
	_, err = New().ReadFrom(strings.NewReader("not json"))
	require.Error(t, err)
}
