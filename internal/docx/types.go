package docx

import "strings"

// Node is one content node of the document body in reading order.
// The concrete types are ParagraphNode and TableNode; anything else in
// the source XML (structured document tags, section properties) is
// skipped during parsing.
type Node interface {
	node()
}

// ParagraphNode holds the text runs of one paragraph in document order.
// Non-text run content such as images and fields is ignored.
type ParagraphNode struct {
	Runs []string
}

func (ParagraphNode) node() {}

// Text returns the run-concatenated paragraph text.
func (p ParagraphNode) Text() string {
	return strings.Join(p.Runs, "")
}

// TableNode holds the rows of one table. Cells may themselves contain
// nested tables; nesting is preserved here and flattened later by the
// block builder.
type TableNode struct {
	Rows []TableRow
}

func (TableNode) node() {}

// TableRow holds the cells of one table row.
type TableRow struct {
	Cells []TableCell
}

// TableCell holds the ordered content nodes of one cell.
type TableCell struct {
	Nodes []Node
}
