package bpe

import "github.com/dlclark/regexp2"

// Pre-tokenizer pattern. Matches contractions ('s, 'd, 'll, 've, 're),
// words with an optional single leading non-letter (e.g. " word", ".word"),
// individual digits, punctuation runs with optional leading space and
// trailing line breaks, isolated line breaks, and whitespace runs.
//
// regexp2 has no possessive quantifiers, so the possessive `?+`/`++` of the
// reference pattern become atomic groups. Merges are never learned or applied
// across the chunk boundaries this pattern produces.
const splitPattern = `'(?i:[sdmt]|ll|ve|re)|(?>[^\r\n\p{L}\p{N}]?)\p{L}+|\p{N}| ?(?>[^\s\p{L}\p{N}]+)[\r\n]*|\s*[\r\n]|\s+(?!\S)|\s+`

var splitRE = regexp2.MustCompile(splitPattern, 0)

// split divides text into pre-tokenizer chunks. The chunks cover every byte
// of the input in order, so joining them restores the original text.
func split(text string) []string {
	var chunks []string
	m, err := splitRE.FindStringMatch(text)
	for err == nil && m != nil {
		chunks = append(chunks, m.String())
		m, err = splitRE.FindNextMatch(m)
	}
	// the pattern accepts any non-empty string, FindStringMatch only
	// errors on timeouts which are not configured here
	if err != nil {
		panic(err)
	}
	return chunks
}
