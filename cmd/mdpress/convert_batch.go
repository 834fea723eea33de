package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/config"
)

// Sentinel errors for batch conversion.
var (
	ErrBatchFailed        = errors.New("conversion failed")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// fileToConvert pairs a markdown input with its output path.
type fileToConvert struct {
	InputPath  string
	OutputPath string
}

// conversionResult holds the outcome of a single conversion.
type conversionResult struct {
	InputPath  string
	OutputPath string
	PageCount  int
	Err        error
	Duration   time.Duration
}

// inputBuilder builds the conversion input for one file.
type inputBuilder func(path string) (mdpress.Input, error)

// runConvertBatch converts every discovered file through the converter pool.
func runConvertBatch(ctx context.Context, paths []string, flags *convertFlags, cfg *config.Config, logger *zap.Logger, env *Environment) error {
	files, err := discoverFiles(paths, flags.output, flags.preview)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, strings.Join(paths, ", "))
	}

	size := mdpress.ResolvePoolSize(cfg.Render.Workers)
	if size > len(files) {
		size = len(files)
	}
	pool := env.NewPool(size, converterOptions(cfg, logger)...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converter pool", zap.Error(err))
		}
	}()

	profile := profileFromConfig(cfg)
	build := func(path string) (mdpress.Input, error) {
		return buildConvertInput(path, flags, profile, cfg.TOC.Title)
	}

	results := convertBatch(ctx, pool, files, build, flags.preview)
	if failed := printResults(results, flags.common.quiet, env); failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrBatchFailed, failed, len(results))
	}
	return nil
}

// convertBatch processes files concurrently, one worker per pooled converter.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []fileToConvert, build inputBuilder, preview bool) []conversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]conversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire(ctx)
			if err != nil {
				for idx := range jobs {
					results[idx] = conversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = conversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], build, preview)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile converts one file and writes its output.
func convertFile(ctx context.Context, conv Converter, f fileToConvert, build inputBuilder, preview bool) (result conversionResult) {
	start := time.Now()
	result = conversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	defer func() { result.Duration = time.Since(start) }()

	input, err := build(f.InputPath)
	if err != nil {
		result.Err = err
		return result
	}

	out, err := conv.Convert(ctx, input)
	if err != nil {
		result.Err = err
		return result
	}
	result.PageCount = out.PageCount

	data := out.PDF
	if preview {
		data = []byte(out.Document.HTML)
	}
	result.Err = writeOutput(f.OutputPath, data)
	return result
}

// printResults reports each conversion and returns the number of failures.
func printResults(results []conversionResult, quiet bool, env *Environment) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if !quiet {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		}
	}

	if !quiet {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	return failed
}

// discoverFiles expands the inputs into files to convert. Directories are
// walked recursively for .md and .markdown files; explicit files are taken
// as given.
func discoverFiles(paths []string, outputDir string, preview bool) ([]fileToConvert, error) {
	var files []fileToConvert
	for _, input := range paths {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadMarkdown, err)
		}

		if !info.IsDir() {
			files = append(files, fileToConvert{
				InputPath:  input,
				OutputPath: batchOutputPath(input, outputDir, "", preview),
			})
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !isMarkdownFile(path) {
				return nil
			}
			files = append(files, fileToConvert{
				InputPath:  path,
				OutputPath: batchOutputPath(path, outputDir, input, preview),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// batchOutputPath places the output next to the input, or under outputDir
// mirroring the input's position below baseDir.
func batchOutputPath(inputPath, outputDir, baseDir string, preview bool) string {
	out := resolveOutputPath(inputPath, "", preview)
	if outputDir == "" {
		return out
	}

	name := filepath.Base(out)
	if baseDir != "" {
		if rel, err := filepath.Rel(baseDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), name)
		}
	}
	return filepath.Join(outputDir, name)
}

func isMarkdownFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// validateWorkers checks that the worker count is within pool bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdpress.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdpress.MaxPoolSize)
	}
	return nil
}
