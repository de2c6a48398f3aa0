package extract

// Record is one extracted document, immutable once assembled:
// the header fields, the section values, and the source identifier.
type Record struct {
	Header   map[string]string
	Sections map[string]string
	File     string
}

// Assemble builds the record for one document. No validation happens
// here; the locators already guarantee every field is present, possibly
// empty.
func Assemble(header, sections map[string]string, file string) Record {
	return Record{Header: header, Sections: sections, File: file}
}

// Row produces the fixed-order output row: header values in header
// term order, section values in section term order, then the source
// file identifier as the final column.
func (r Record) Row(ts TermSet) []string {
	row := make([]string, 0, len(ts.Headers)+len(ts.Sections)+1)
	for _, t := range ts.Headers {
		row = append(row, r.Header[t.Main()])
	}
	for _, t := range ts.Sections {
		row = append(row, r.Sections[t.Main()])
	}
	row = append(row, r.File)
	return row
}

// HeaderRow produces the column names matching Row's order, ending
// with "File".
func HeaderRow(ts TermSet) []string {
	row := make([]string, 0, len(ts.Headers)+len(ts.Sections)+1)
	for _, t := range ts.Headers {
		row = append(row, t.Label())
	}
	for _, t := range ts.Sections {
		row = append(row, t.Label())
	}
	row = append(row, "File")
	return row
}
