package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TermSet is the process-wide constant term configuration for one run:
// the header labels in output order and the section terms in the order
// they appear in the documents. The section order matters; it is the
// tie-break when several sections share one physical table.
type TermSet struct {
	Headers  []Term
	Sections []Term
}

// DefaultTermSet returns the term configuration for moderation report
// documents. The alias lists are curated from spellings observed in
// real documents.
func DefaultTermSet() TermSet {
	return TermSet{
		Headers: []Term{
			NewTerm("PROVINCE",
				"PROVINCE:", "Province", "Province:").WithLabel("Province"),
			NewTerm("DISTRICT",
				"DISTRICT:", "District", "District:",
				"DISTRICT/REGION", "NAME OF DISTRICT", "DISTRICT 1").WithLabel("District"),
			NewTerm("SCHOOL",
				"SCHOOL:", "School", "School:",
				"List of Moderated Schools",
				"The schools that were moderated are",
				"The schools that were moderated are:").WithLabel("School"),
			NewTerm("SUBJECT",
				"SUBJECT:", "Subject", "Subject:").WithLabel("Subject"),
		},
		Sections: []Term{
			NewTerm("IDENTIFICATION OF IRREGULARITIES",
				"IDENTIFICATION OF NON-COMPLIANCE / IRREGULARITIES",
				"SECTION F:  IDENTIFICATION OF NON-COMPLIANCE / IRREGULARITIES"),
			NewTerm("AREAS OF GOOD PRACTICE / INNOVATION",
				"Areas of good practice / Innovation"),
			NewTerm("AREAS THAT REQUIRE INTERVENTION AND SUPPORT"),
			NewTerm("RECOMMENDATIONS",
				"RECOMMENDATIONS FOR IMPROVEMENT"),
			NewTerm("CONCLUSION"),
		},
	}
}

// termFile is the YAML shape of a term-set override file.
type termFile struct {
	Headers  []termEntry `yaml:"headers"`
	Sections []termEntry `yaml:"sections"`
}

type termEntry struct {
	Main    string   `yaml:"main"`
	Label   string   `yaml:"label"`
	Aliases []string `yaml:"aliases"`
}

// LoadTermSet reads a term-set override from a YAML file. The file
// replaces both lists wholesale; section order in the file is taken as
// document order.
func LoadTermSet(path string) (TermSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TermSet{}, fmt.Errorf("read term file: %w", err)
	}

	var tf termFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return TermSet{}, fmt.Errorf("parse term file %s: %w", path, err)
	}

	ts := TermSet{
		Headers:  make([]Term, 0, len(tf.Headers)),
		Sections: make([]Term, 0, len(tf.Sections)),
	}
	for _, e := range tf.Headers {
		t, err := e.term()
		if err != nil {
			return TermSet{}, fmt.Errorf("term file %s: %w", path, err)
		}
		ts.Headers = append(ts.Headers, t)
	}
	for _, e := range tf.Sections {
		t, err := e.term()
		if err != nil {
			return TermSet{}, fmt.Errorf("term file %s: %w", path, err)
		}
		ts.Sections = append(ts.Sections, t)
	}

	if err := ts.Validate(); err != nil {
		return TermSet{}, fmt.Errorf("term file %s: %w", path, err)
	}
	return ts, nil
}

func (e termEntry) term() (Term, error) {
	if e.Main == "" {
		return Term{}, fmt.Errorf("term entry is missing a main spelling")
	}
	t := NewTerm(e.Main, e.Aliases...)
	if e.Label != "" {
		t = t.WithLabel(e.Label)
	}
	return t, nil
}

// Validate checks that the term set can drive an extraction run.
func (ts TermSet) Validate() error {
	if len(ts.Headers) == 0 {
		return fmt.Errorf("term set has no header terms")
	}
	if len(ts.Sections) == 0 {
		return fmt.Errorf("term set has no section terms")
	}
	seen := make(map[string]bool, len(ts.Headers)+len(ts.Sections))
	for _, t := range append(append([]Term{}, ts.Headers...), ts.Sections...) {
		if seen[t.Main()] {
			return fmt.Errorf("duplicate term %q", t.Main())
		}
		seen[t.Main()] = true
	}
	return nil
}
