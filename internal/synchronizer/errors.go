package synchronizer

import (
	"fmt"
	"strings"
)

type BlockFailure struct {
	BlockID string
	Order   int
	Err     error
}

// SaveError reports a batch where at least one block write failed. The
// other writes of the batch did reach the backend.
type SaveError struct {
	Op       string
	PageID   uint64
	Total    int
	Failures []BlockFailure
}

func (e *SaveError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s blocks of page %d: %d of %d block writes failed", e.Op, e.PageID, len(e.Failures), e.Total)
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "; block %s (order %d): %v", f.BlockID, f.Order, f.Err)
	}
	return b.String()
}

func (e *SaveError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Succeeded is the number of block writes that reached the backend.
func (e *SaveError) Succeeded() int {
	return e.Total - len(e.Failures)
}
