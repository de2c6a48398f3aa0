package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"docextract/internal/batch"
	"docextract/internal/config"
	"docextract/internal/docx"
	"docextract/internal/extract"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the configured level
func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		// Non-debug runs keep only the diagnostics stream and the run
		// summary; per-node parser chatter goes nowhere.
		log.SetOutput(io.Discard)
	}
}

// openDiagnostics returns the logger that records skipped documents,
// plus a close function for the backing file when one was configured.
func openDiagnostics(cfg *config.Config) (*log.Logger, func(), error) {
	if cfg.ErrLogFile == "" {
		return log.New(os.Stderr, "", log.LstdFlags), func() {}, nil
	}
	f, err := os.Create(cfg.ErrLogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("create diagnostics file: %w", err)
	}
	return log.New(f, "", log.LstdFlags), func() { _ = f.Close() }, nil
}

// loadTerms returns the term configuration for this run.
func loadTerms(cfg *config.Config) (extract.TermSet, error) {
	if cfg.TermsFile == "" {
		return extract.DefaultTermSet(), nil
	}
	return extract.LoadTermSet(cfg.TermsFile)
}

// collectPaths resolves the input documents from either a directory
// walk or a path list file.
func collectPaths(cfg *config.Config) ([]string, error) {
	finder := docx.NewFinder(cfg.MaxFileSize)
	if cfg.InputIsList {
		return finder.ReadListFile(cfg.DataDir)
	}
	return finder.FindInDirectory(cfg.DataDir)
}

func run(cfg *config.Config) error {
	terms, err := loadTerms(cfg)
	if err != nil {
		return err
	}

	paths, err := collectPaths(cfg)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no docx files found in %s", cfg.DataDir)
	}
	fmt.Fprintf(os.Stderr, "Found %d docx files\n", len(paths))

	diag, closeDiag, err := openDiagnostics(cfg)
	if err != nil {
		return err
	}
	defer closeDiag()

	out, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := batch.NewRunner(terms, cfg.MaxFileSize, cfg.Workers, diag)
	sum, err := runner.Run(ctx, paths, out)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Wrote %d records to %s (%d skipped)\n",
		sum.Processed, cfg.OutputFile, sum.Skipped)
	return nil
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "doc-extract: %v\n", err)
		os.Exit(1)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("doc-extract\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
