package extract

import "strings"

// LocateSections finds the content of each section term in the block
// sequence, in the caller-specified document order. The result is
// fully populated; a term that matches nothing gets an empty string,
// which is never a fatal condition.
//
// The only error is a MalformedScanError from a tripped scan guard,
// which skips the whole document.
func LocateSections(blocks []Block, terms []Term) (map[string]string, error) {
	values := make(map[string]string, len(terms))
	for _, term := range terms {
		value, err := locateSection(blocks, term, terms)
		if err != nil {
			return nil, err
		}
		values[term.Main()] = value
	}
	return values, nil
}

// locateSection resolves one term against the block sequence using the
// three matching tiers: exact paragraph match, deep match over
// paragraphs and table cells, then prefix match for paragraphs that
// carry the label and its value together.
func locateSection(blocks []Block, term Term, all []Term) (string, error) {
	// A paragraph heading exactly matching the term means its content
	// is the next block.
	for i, b := range blocks {
		p, ok := b.(Paragraph)
		if !ok {
			continue
		}
		if term.MatchesExact(p.Text) {
			return followingValue(blocks, i), nil
		}
	}

	// Deep pass, in document order. The term can appear as a loosely
	// spelled paragraph or as a table cell in malformed documents; a
	// matched table may hold several sections concatenated and gets
	// sliced up between known terms.
	for i, b := range blocks {
		switch block := b.(type) {
		case Paragraph:
			if term.MatchesDeep(block.Text) {
				return followingValue(blocks, i), nil
			}
		case Table:
			cells := block.Cells()
			for _, cell := range cells {
				if term.MatchesDeep(cell) {
					return sliceTable(cells, term, all)
				}
			}
		}
	}

	// Label and value sharing one paragraph: "Subject: Physics".
	for i, b := range blocks {
		p, ok := b.(Paragraph)
		if !ok {
			continue
		}
		if term.HasPrefix(p.Text) {
			if rest := term.Strip(p.Text); rest != "" {
				return rest, nil
			}
			return followingValue(blocks, i), nil
		}
	}

	return "", nil
}

// followingValue returns the content owned by a paragraph heading at
// index i: the next block's table text or paragraph text.
func followingValue(blocks []Block, i int) string {
	if i+1 >= len(blocks) {
		return ""
	}
	switch next := blocks[i+1].(type) {
	case Table:
		return joinCells(next.Cells())
	case Paragraph:
		return next.Text
	}
	return ""
}

// sliceTable recovers one section's text from a table that may hold
// several sections as consecutive rows. The value is every cell
// strictly between the term's own cell and the first later cell where
// any different term matches, or to the table's end when no later term
// appears. Real documents give no structural hint for these
// boundaries; the other known terms are the only delimiter available.
func sliceTable(cells []string, term Term, all []Term) (string, error) {
	pos := -1
	for i, cell := range cells {
		if term.MatchesDeep(cell) {
			pos = i
			break
		}
	}
	if pos < 0 {
		// The caller saw a deep match in this table, so the term must
		// be here; treat disagreement as a malformed document.
		return "", &MalformedScanError{Term: term.Main(), Position: 0}
	}

	end := len(cells)
	guard := newScanGuard(term.Main(), len(cells))
	for i := pos + 1; i < len(cells); i++ {
		if err := guard.tick(i); err != nil {
			return "", err
		}
		if matchesOtherTerm(cells[i], term, all) {
			end = i
			break
		}
	}

	return joinCells(cells[pos+1 : end]), nil
}

// matchesOtherTerm reports whether cell deep-matches any term in the
// full term set other than current.
func matchesOtherTerm(cell string, current Term, all []Term) bool {
	for _, t := range all {
		if t.Is(current.Main()) {
			continue
		}
		if t.MatchesDeep(cell) {
			return true
		}
	}
	return false
}

// joinCells newline-joins the non-empty trimmed cell texts.
func joinCells(cells []string) string {
	var parts []string
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		parts = append(parts, c)
	}
	return strings.Join(parts, "\n")
}
