// Package batch drives extraction over a set of documents. Each
// document is an independent unit of work: its block sequence, header
// result, and section result share nothing with other documents, so
// the pool needs no coordination beyond collecting results.
package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"

	"golang.org/x/sync/errgroup"

	"docextract/internal/docx"
	"docextract/internal/extract"
)

// Runner processes documents on a bounded worker pool and writes one
// CSV row per successfully extracted document.
type Runner struct {
	terms     extract.TermSet
	validator *docx.Validator
	workers   int
	diag      *log.Logger
}

// Summary reports what a run did.
type Summary struct {
	Processed int
	Skipped   int
}

// NewRunner creates a runner. diag receives one line per skipped
// document with the reason; pass a logger writing to io.Discard to
// silence it.
func NewRunner(terms extract.TermSet, maxFileSize int64, workers int, diag *log.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		terms:     terms,
		validator: docx.NewValidator(maxFileSize),
		workers:   workers,
		diag:      diag,
	}
}

// result is one document's outcome, indexed so output order follows
// input order regardless of worker scheduling.
type result struct {
	record extract.Record
	err    error
}

// Run extracts every document in paths and writes the CSV to out,
// header row first. A failed document is logged and skipped; only a
// broken output writer or a canceled context aborts the run.
func (r *Runner) Run(ctx context.Context, paths []string, out io.Writer) (Summary, error) {
	w := csv.NewWriter(out)
	if err := w.Write(extract.HeaderRow(r.terms)); err != nil {
		return Summary{}, fmt.Errorf("write header row: %w", err)
	}

	results := make([]result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := r.processOne(path)
			results[i] = result{record: rec, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	var sum Summary
	for i, res := range results {
		if res.err != nil {
			r.diag.Printf("skipped %s: %v", paths[i], res.err)
			sum.Skipped++
			continue
		}
		if err := w.Write(res.record.Row(r.terms)); err != nil {
			return sum, fmt.Errorf("write record for %s: %w", paths[i], err)
		}
		sum.Processed++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return sum, fmt.Errorf("flush output: %w", err)
	}
	return sum, nil
}

// processOne runs the full pipeline for a single document. Every error
// here is document-scoped: the caller records it and continues with
// the next document.
func (r *Runner) processOne(path string) (extract.Record, error) {
	if err := r.validator.ValidateFile(path); err != nil {
		return extract.Record{}, err
	}

	var rec extract.Record
	err := docx.Extract(path, func(doc *docx.Document) error {
		blocks := extract.BuildBlocks(doc.Body())

		header, err := extract.LocateHeader(blocks, r.terms.Headers)
		if err != nil {
			return err
		}
		sections, err := extract.LocateSections(blocks, r.terms.Sections)
		if err != nil {
			return err
		}

		rec = extract.Assemble(header, sections, doc.Path())
		return nil
	})
	if err != nil {
		return extract.Record{}, err
	}
	return rec, nil
}
