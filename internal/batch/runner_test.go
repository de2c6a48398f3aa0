package batch

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docextract/internal/extract"
)

const maxTestFileSize = 50 * 1024 * 1024

// writeReport builds a docx moderation report with the standard header
// table and one narrative paragraph per section.
func writeReport(t *testing.T, dir, name, province, district, school, subject string, sections map[string]string) string {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<w:tbl>`)
	for _, pair := range [][2]string{
		{"PROVINCE", province},
		{"DISTRICT", district},
		{"SCHOOL", school},
		{"SUBJECT", subject},
	} {
		fmt.Fprintf(&body,
			`<w:tr><w:tc><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:tc></w:tr>`,
			pair[0], pair[1])
	}
	body.WriteString(`</w:tbl>`)

	for _, heading := range []string{
		"IDENTIFICATION OF IRREGULARITIES",
		"AREAS OF GOOD PRACTICE / INNOVATION",
		"AREAS THAT REQUIRE INTERVENTION AND SUPPORT",
		"RECOMMENDATIONS",
		"CONCLUSION",
	} {
		fmt.Fprintf(&body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, heading)
		fmt.Fprintf(&body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, sections[heading])
	}

	xml := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(xml))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func standardSections(conclusion string) map[string]string {
	return map[string]string{
		"IDENTIFICATION OF IRREGULARITIES":            "None observed.",
		"AREAS OF GOOD PRACTICE / INNOVATION":         "Marking guideline discussions were thorough.",
		"AREAS THAT REQUIRE INTERVENTION AND SUPPORT": "Storage of scripts needs attention.",
		"RECOMMENDATIONS":                             "Schedule a follow-up visit.",
		"CONCLUSION":                                  conclusion,
	}
}

func TestRunnerRun(t *testing.T) {
	dir := t.TempDir()
	one := writeReport(t, dir, "one.docx",
		"Western Cape", "West Coast", "Hopefield High", "Physical Sciences",
		standardSections("Moderation was successful."))
	two := writeReport(t, dir, "two.docx",
		"Gauteng", "Tshwane South", "Zitikeni Secondary", "Mathematics",
		standardSections("Compliance was satisfactory."))

	var diag bytes.Buffer
	r := NewRunner(extract.DefaultTermSet(), maxTestFileSize, 2, log.New(&diag, "", 0))

	var out bytes.Buffer
	sum, err := r.Run(context.Background(), []string{one, two}, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Processed)
	assert.Equal(t, 0, sum.Skipped)
	assert.Empty(t, diag.String())

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Province", "District", "School", "Subject",
		"IDENTIFICATION OF IRREGULARITIES",
		"AREAS OF GOOD PRACTICE / INNOVATION",
		"AREAS THAT REQUIRE INTERVENTION AND SUPPORT",
		"RECOMMENDATIONS",
		"CONCLUSION",
		"File",
	}, rows[0])

	assert.Equal(t, "Western Cape", rows[1][0])
	assert.Equal(t, "Physical Sciences", rows[1][3])
	assert.Equal(t, "None observed.", rows[1][4])
	assert.Equal(t, "Moderation was successful.", rows[1][8])
	assert.Equal(t, one, rows[1][9])

	assert.Equal(t, "Gauteng", rows[2][0])
	assert.Equal(t, two, rows[2][9])
}

func TestRunnerOutputOrderFollowsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("report-%d.docx", i)
		paths = append(paths, writeReport(t, dir, name,
			fmt.Sprintf("Province %d", i), "D", "S", "Subj",
			standardSections("Done.")))
	}

	r := NewRunner(extract.DefaultTermSet(), maxTestFileSize, 4, log.New(io.Discard, "", 0))

	var out bytes.Buffer
	sum, err := r.Run(context.Background(), paths, &out)
	require.NoError(t, err)
	require.Equal(t, 8, sum.Processed)

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 9)
	for i := 0; i < 8; i++ {
		assert.Equal(t, fmt.Sprintf("Province %d", i), rows[i+1][0])
		assert.Equal(t, paths[i], rows[i+1][9])
	}
}

func TestRunnerSkipsBrokenDocuments(t *testing.T) {
	dir := t.TempDir()
	good := writeReport(t, dir, "good.docx",
		"Limpopo", "Vhembe", "Mbilwi Secondary", "Accounting",
		standardSections("Fine."))

	// Not a ZIP container at all.
	bad := filepath.Join(dir, "bad.docx")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))

	missing := filepath.Join(dir, "absent.docx")

	var diag bytes.Buffer
	r := NewRunner(extract.DefaultTermSet(), maxTestFileSize, 1, log.New(&diag, "", 0))

	var out bytes.Buffer
	sum, err := r.Run(context.Background(), []string{bad, good, missing}, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Processed)
	assert.Equal(t, 2, sum.Skipped)

	assert.Contains(t, diag.String(), "skipped "+bad)
	assert.Contains(t, diag.String(), "skipped "+missing)

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, good, rows[1][9])
}

func TestRunnerSkipsDocumentWithoutHeaderTable(t *testing.T) {
	dir := t.TempDir()

	// A valid container whose body has no header table.
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body><w:p><w:r><w:t>just prose</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	path := filepath.Join(dir, "plain.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	var diag bytes.Buffer
	r := NewRunner(extract.DefaultTermSet(), maxTestFileSize, 1, log.New(&diag, "", 0))

	var out bytes.Buffer
	sum, err := r.Run(context.Background(), []string{path}, &out)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Processed)
	assert.Equal(t, 1, sum.Skipped)
	assert.Contains(t, diag.String(), "skipped "+path)
}

func TestRunnerEmptyInput(t *testing.T) {
	r := NewRunner(extract.DefaultTermSet(), maxTestFileSize, 2, log.New(io.Discard, "", 0))

	var out bytes.Buffer
	sum, err := r.Run(context.Background(), nil, &out)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestRunnerCanceledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeReport(t, dir, "one.docx",
		"P", "D", "S", "Subj", standardSections("Done."))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(extract.DefaultTermSet(), maxTestFileSize, 1, log.New(io.Discard, "", 0))
	_, err := r.Run(ctx, []string{path}, io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}
