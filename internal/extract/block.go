package extract

import (
	"log"
	"strings"

	"docextract/internal/docx"
)

// Block is one paragraph or one table as it appears in document
// reading order. The block sequence is what the header and section
// locators search; it is never mutated after construction.
type Block interface {
	block()
}

// Paragraph is the run-concatenated text of one non-blank paragraph.
type Paragraph struct {
	Text string
}

func (Paragraph) block() {}

// Table holds the two-column rows of one table. Rows keep the
// concatenated text of their first and second cell; columns beyond the
// second are dropped at build time.
type Table struct {
	Rows [][2]string
}

func (Table) block() {}

// Cells returns the table's cell text flattened in row-major,
// cell-major order. The locators do their positional work on this
// sequence.
func (t Table) Cells() []string {
	cells := make([]string, 0, len(t.Rows)*2)
	for _, row := range t.Rows {
		cells = append(cells, row[0], row[1])
	}
	return cells
}

// BuildBlocks walks the ordered content nodes of one document and
// produces its block sequence. Blank paragraphs and empty tables are
// dropped; block order matches the linear reading order of the source.
func BuildBlocks(body []docx.Node) []Block {
	var blocks []Block
	for _, n := range body {
		switch node := n.(type) {
		case docx.ParagraphNode:
			text := node.Text()
			if strings.TrimSpace(text) == "" {
				continue
			}
			blocks = append(blocks, Paragraph{Text: text})
		case docx.TableNode:
			rows := flattenTable(node)
			if len(rows) == 0 {
				continue
			}
			blocks = append(blocks, Table{Rows: rows})
		default:
			log.Printf("skipping unhandled document node %T", n)
		}
	}
	return blocks
}

// flattenTable turns a table node into two-column rows. Nested tables
// contribute their own flattened rows to the parent's row list,
// depth-first; nested structure is not preserved. Rows where both
// cells are empty are omitted.
func flattenTable(t docx.TableNode) [][2]string {
	var rows [][2]string
	for _, row := range t.Rows {
		var cols [2]string
		var nested [][2]string
		for i, cell := range row.Cells {
			for _, n := range cell.Nodes {
				switch node := n.(type) {
				case docx.ParagraphNode:
					if i > 1 {
						log.Printf("ignoring column %d: %q, only 2 columns are supported",
							i, node.Text())
						continue
					}
					cols[i] += node.Text()
				case docx.TableNode:
					if i > 1 {
						log.Printf("ignoring column %d: nested table, only 2 columns are supported", i)
						continue
					}
					nested = append(nested, flattenTable(node)...)
				}
			}
		}
		if cols[0] != "" || cols[1] != "" {
			rows = append(rows, cols)
		}
		rows = append(rows, nested...)
	}
	return rows
}
