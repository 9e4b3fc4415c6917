package bpe

import "unicode/utf8"

// Decode converts token ids back to text. Ids outside the vocabulary and the
// special-token table abort the whole call with UnknownTokenError. Invalid
// UTF-8 in the reassembled bytes is not an error, each maximal invalid
// subsequence becomes one U+FFFD so the result is always displayable.
func (t *Tokenizer) Decode(ids []int) (string, error) {
	var buf []byte
	for _, id := range ids {
		if b, ok := t.vocab[id]; ok {
			buf = append(buf, b...)
			continue
		}
		if name, ok := t.specials.Name(id); ok {
			buf = append(buf, name...)
			continue
		}
		return "", &UnknownTokenError{ID: id}
	}
	return replaceInvalid(buf), nil
}

func replaceInvalid(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var ret []byte
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			ret = append(ret, "�"...)
			data = data[invalidLen(data):]
			continue
		}
		ret = append(ret, data[:size]...)
		data = data[size:]
	}
	return string(ret)
}

// invalidLen returns the length of the maximal invalid subsequence at the
// start of data: the lead byte plus every following byte that is still a
// valid continuation for its position. A lone continuation byte or a bad
// lead counts as a single-byte subsequence.
func invalidLen(data []byte) int {
	b := data[0]
	var size int
	var lo, hi byte
	switch {
	case b < 0xc2: // continuation byte or overlong lead
		return 1
	case b < 0xe0:
		size, lo, hi = 2, 0x80, 0xbf
	case b == 0xe0:
		size, lo, hi = 3, 0xa0, 0xbf
	case b == 0xed:
		size, lo, hi = 3, 0x80, 0x9f
	case b < 0xf0:
		size, lo, hi = 3, 0x80, 0xbf
	case b == 0xf0:
		size, lo, hi = 4, 0x90, 0xbf
	case b < 0xf4:
		size, lo, hi = 4, 0x80, 0xbf
	case b == 0xf4:
		size, lo, hi = 4, 0x80, 0x8f
	default: // 0xf5..0xff can never lead a sequence
		return 1
	}
	n := 1
	for ; n < size && n < len(data); n++ {
		if data[n] < lo || data[n] > hi {
			break
		}
		// only the first continuation byte has a narrowed range
		lo, hi = 0x80, 0xbf
	}
	return n
}
