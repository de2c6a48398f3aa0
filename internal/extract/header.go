package extract

import "strings"

// LocateHeader finds the header table in the block sequence and
// extracts label to value pairs positionally. The result maps each
// header term's canonical spelling to its value, fully populated with
// empty strings for labels the table does not carry.
//
// Returns ErrHeaderNotFound when no table contains any header term by
// exact or deep match. The first satisfying table wins; documents are
// assumed to place header metadata once, near the top.
func LocateHeader(blocks []Block, terms []Term) (map[string]string, error) {
	table, ok := findHeaderTable(blocks, terms)
	if !ok {
		return nil, ErrHeaderNotFound
	}

	// Work on a fresh flattened copy so the block sequence itself is
	// never mutated.
	cells := table.Cells()

	// Canonicalize every cell that is itself a header term spelling,
	// collapsing variants like "DISTRICT/REGION" so the positional
	// lookup below can key on the canonical string.
	for i, cell := range cells {
		for _, term := range terms {
			if term.Matches(cell) {
				cells[i] = term.Main()
				break
			}
		}
	}

	fields := make(map[string]string, len(terms))
	for _, term := range terms {
		fields[term.Main()] = ""
		guard := newScanGuard(term.Main(), len(cells))
		for i, cell := range cells {
			if err := guard.tick(i); err != nil {
				return nil, err
			}
			if cell != term.Main() {
				continue
			}
			// The value is the cell immediately following the label.
			if i+1 < len(cells) {
				fields[term.Main()] = strings.TrimSpace(cells[i+1])
			}
			break
		}
	}
	return fields, nil
}

// findHeaderTable scans for the first table containing any header term.
// The exact pass over all tables runs first; the deep pass only runs
// when the exact pass finds nothing, so a table with a cleanly spelled
// header always beats an earlier table with a loose cell.
func findHeaderTable(blocks []Block, terms []Term) (Table, bool) {
	match := func(cell string, exact bool) bool {
		for _, term := range terms {
			if exact && term.MatchesExact(cell) {
				return true
			}
			if !exact && term.MatchesDeep(cell) {
				return true
			}
		}
		return false
	}

	for _, exact := range []bool{true, false} {
		for _, b := range blocks {
			table, ok := b.(Table)
			if !ok {
				continue
			}
			for _, cell := range table.Cells() {
				if match(cell, exact) {
					return table, true
				}
			}
		}
	}
	return Table{}, false
}
