package docx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// WordprocessingML main namespace. Elements are matched on local name
// plus this namespace so math or drawing elements that reuse short
// names like "t" are not mistaken for text runs.
const nsWordML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// ParseBody streams the OOXML tokens of a word/document.xml payload and
// returns the ordered content nodes of the document body. Paragraphs
// and tables are kept; other body children are skipped.
func ParseBody(r io.Reader) ([]Node, error) {
	dec := xml.NewDecoder(r)

	var body []Node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document xml: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch {
		case isWordElement(se.Name, "p"):
			p, err := parseParagraph(dec)
			if err != nil {
				return nil, err
			}
			body = append(body, p)
		case isWordElement(se.Name, "tbl"):
			t, err := parseTable(dec)
			if err != nil {
				return nil, err
			}
			body = append(body, t)
		}
	}
	return body, nil
}

func isWordElement(name xml.Name, local string) bool {
	return name.Local == local && (name.Space == "" || name.Space == nsWordML)
}

// parseParagraph consumes tokens until the matching </w:p>, collecting
// the character data of every <w:t> run.
func parseParagraph(dec *xml.Decoder) (ParagraphNode, error) {
	var p ParagraphNode
	inText := false
	var run []byte

	for {
		tok, err := dec.Token()
		if err != nil {
			return p, fmt.Errorf("parse paragraph: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if isWordElement(t.Name, "t") {
				inText = true
				run = run[:0]
			}
		case xml.CharData:
			if inText {
				run = append(run, t...)
			}
		case xml.EndElement:
			if isWordElement(t.Name, "t") {
				p.Runs = append(p.Runs, string(run))
				inText = false
			}
			if isWordElement(t.Name, "p") {
				return p, nil
			}
		}
	}
}

// parseTable consumes tokens until the matching </w:tbl>. Nested
// tables inside cells recurse through parseCell, so each invocation
// only ever sees its own end tag.
func parseTable(dec *xml.Decoder) (TableNode, error) {
	var tbl TableNode
	for {
		tok, err := dec.Token()
		if err != nil {
			return tbl, fmt.Errorf("parse table: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if isWordElement(t.Name, "tr") {
				row, err := parseRow(dec)
				if err != nil {
					return tbl, err
				}
				tbl.Rows = append(tbl.Rows, row)
			}
		case xml.EndElement:
			if isWordElement(t.Name, "tbl") {
				return tbl, nil
			}
		}
	}
}

func parseRow(dec *xml.Decoder) (TableRow, error) {
	var row TableRow
	for {
		tok, err := dec.Token()
		if err != nil {
			return row, fmt.Errorf("parse table row: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if isWordElement(t.Name, "tc") {
				cell, err := parseCell(dec)
				if err != nil {
					return row, err
				}
				row.Cells = append(row.Cells, cell)
			}
		case xml.EndElement:
			if isWordElement(t.Name, "tr") {
				return row, nil
			}
		}
	}
}

func parseCell(dec *xml.Decoder) (TableCell, error) {
	var cell TableCell
	for {
		tok, err := dec.Token()
		if err != nil {
			return cell, fmt.Errorf("parse table cell: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isWordElement(t.Name, "p"):
				p, err := parseParagraph(dec)
				if err != nil {
					return cell, err
				}
				cell.Nodes = append(cell.Nodes, p)
			case isWordElement(t.Name, "tbl"):
				nested, err := parseTable(dec)
				if err != nil {
					return cell, err
				}
				cell.Nodes = append(cell.Nodes, nested)
			}
		case xml.EndElement:
			if isWordElement(t.Name, "tc") {
				return cell, nil
			}
		}
	}
}
