package bpe

import (
	"errors"
	"fmt"
)

// ErrVocabSize is returned by Train when the requested vocabulary size is
// below 256, the floor imposed by the raw byte ids.
var ErrVocabSize = errors.New("vocab size must be at least 256")

// ConsistencyError reports a merge rule referencing a token id that does not
// exist yet, which means the persisted merge list is corrupt or out of order.
type ConsistencyError struct {
	Merge Merge
	ID    int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("merge (%d, %d) -> %d references unknown id %d",
		e.Merge.Left, e.Merge.Right, e.Merge.ID, e.ID)
}

// UnknownTokenError reports a decode request for an id that is neither in the
// vocabulary nor registered as a special token.
type UnknownTokenError struct {
	ID int
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown token id: %d", e.ID)
}
