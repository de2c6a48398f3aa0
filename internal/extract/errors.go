package extract

import (
	"errors"
	"fmt"
)

// ErrHeaderNotFound reports that no table in the document contains any
// header term. A document without its header table cannot be
// meaningfully extracted; the batch driver skips it and moves on.
var ErrHeaderNotFound = errors.New("no table contains any header term")

// MalformedScanError reports that a positional scan exceeded its bound
// without terminating. The scan guard trips only on malformed input;
// the affected document is skipped, never the whole run.
type MalformedScanError struct {
	Term     string
	Position int
}

func (e *MalformedScanError) Error() string {
	return fmt.Sprintf("scan for term %q exceeded its bound at position %d", e.Term, e.Position)
}

// scanGuard bounds a positional scan to a small multiple of the
// sequence length being scanned.
type scanGuard struct {
	remaining int
	term      string
}

// scanBoundFactor is how many times longer than the scanned sequence a
// scan may run before it is treated as malformed.
const scanBoundFactor = 4

func newScanGuard(term string, length int) *scanGuard {
	return &scanGuard{remaining: scanBoundFactor * (length + 1), term: term}
}

// tick consumes one scan step, failing once the bound is exhausted.
func (g *scanGuard) tick(position int) error {
	g.remaining--
	if g.remaining < 0 {
		return &MalformedScanError{Term: g.term, Position: position}
	}
	return nil
}
