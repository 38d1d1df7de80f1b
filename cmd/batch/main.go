// Command batch extracts fields from a directory of plain-text invoice
// files and writes one CSV or XLSX report for the whole run.
// Usage: go run ./cmd/batch -in ./invoices [-out ./reports] [-format xlsx]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"invext/internal/config"
	"invext/internal/domain"
	"invext/internal/engine"
	"invext/internal/export"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	inDir := flag.String("in", "", "directory of .txt invoice files (required)")
	outDir := flag.String("out", "", "output directory (default from config)")
	format := flag.String("format", "", "output format, csv or xlsx (default from config)")
	workers := flag.Int("workers", 0, "parse concurrency (default from config)")
	flag.Parse()

	if *inDir == "" {
		flag.Usage()
		return fmt.Errorf("-in is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *outDir == "" {
		*outDir = cfg.Batch.OutputDir
	}
	if *format == "" {
		*format = cfg.Batch.OutputFormat
	}
	if *workers <= 0 {
		*workers = cfg.Batch.Concurrency
	}
	if *format != "csv" && *format != "xlsx" {
		return fmt.Errorf("format %q: want csv or xlsx", *format)
	}

	eng, err := engine.New(cfg.Extractor)
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	files, err := listTextFiles(*inDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .txt files in %s", *inDir)
	}

	jobID := uuid.New().String()
	log.Printf("batch %s: %d files, %d workers", jobID, len(files), *workers)

	rows := parseAll(eng, files, *workers)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", *outDir, err)
	}
	outPath := filepath.Join(*outDir, export.BuildFilename("batch_"+jobID[:8], *format))
	if err := writeReport(outPath, *format, rows); err != nil {
		return err
	}

	flagged := 0
	for _, r := range rows {
		if r.Result.NeedsReview {
			flagged++
		}
	}
	log.Printf("batch %s: wrote %s (%d documents, %d flagged for review)",
		jobID, outPath, len(rows), flagged)
	return nil
}

func listTextFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// parseAll fans the files out over a fixed worker pool. Results land in
// a slice indexed by file position, so the report order matches the
// sorted input order no matter how workers interleave.
func parseAll(eng *engine.Engine, files []string, workers int) []export.Row {
	rows := make([]export.Row, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rows[i] = parseOne(eng, files[i])
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return rows
}

func parseOne(eng *engine.Engine, path string) export.Row {
	name := strings.TrimSuffix(filepath.Base(path), ".txt")

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("WARN: skipping %s: %v", path, err)
		return export.Row{Name: name, Result: engine.Result{
			Fields:      domain.NewFieldMap(),
			Source:      domain.StrategyUnresolved,
			NeedsReview: true,
		}}
	}

	result := eng.Parse(context.Background(), strings.Split(string(raw), "\n"))
	return export.Row{Name: name, Result: result}
}

func writeReport(path, format string, rows []export.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if format == "xlsx" {
		if err := export.WriteXLSX(f, rows); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}

	if _, err := f.Write(export.BOM); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w := export.NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.WriteRows(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
