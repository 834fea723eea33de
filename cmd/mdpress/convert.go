package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpress"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrUsage        = errors.New("invalid usage")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// filePermissions is rw-r--r--: owner read+write, others read.
const filePermissions = 0o644

// runConvert converts markdown files to PDF, or to preview HTML. A single
// file is converted in place; several files or directories go through the
// converter pool.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}

	cfg, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	if err := applyTimeout(cfg, flags.timeout); err != nil {
		return err
	}
	if flags.changed("skip-code-fences") {
		cfg.Glyphs.SkipCodeFences = flags.profile.skipCodeFences
	}

	logger, err := newLogger(flags.common, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !isSingleFile(positional) {
		if flags.changed("workers") {
			if err := validateWorkers(flags.workers); err != nil {
				return err
			}
			cfg.Render.Workers = flags.workers
		}
		return runConvertBatch(ctx, positional, flags, cfg, logger, env)
	}
	inputPath := positional[0]

	input, err := buildConvertInput(inputPath, flags, profileFromConfig(cfg), cfg.TOC.Title)
	if err != nil {
		return err
	}

	conv, err := env.NewConverter(converterOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	result, err := conv.Convert(ctx, input)
	if err != nil {
		return err
	}

	outputPath := resolveOutputPath(inputPath, flags.output, flags.preview)
	data := result.PDF
	if flags.preview {
		data = []byte(result.Document.HTML)
	}
	if err := writeOutput(outputPath, data); err != nil {
		return err
	}

	logger.Debug("converted",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("pages", result.PageCount))

	if !flags.common.quiet {
		if flags.preview {
			fmt.Fprintf(env.Stdout, "%s -> %s\n", inputPath, outputPath)
		} else {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages)\n", inputPath, outputPath, result.PageCount)
		}
	}
	return nil
}

// isSingleFile reports whether the inputs name one path that is not a
// directory. A missing path counts as a file so the read error surfaces.
func isSingleFile(paths []string) bool {
	if len(paths) != 1 {
		return false
	}
	info, err := os.Stat(paths[0])
	return err != nil || !info.IsDir()
}

// buildConvertInput reads the file and layers config defaults, front matter
// and flags, in that order.
func buildConvertInput(path string, flags *convertFlags, profile mdpress.StyleProfile, tocTitle string) (mdpress.Input, error) {
	source, err := os.ReadFile(path) // #nosec G304 -- path is the user's input file
	if err != nil {
		return mdpress.Input{}, fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	meta, body, err := parseFrontMatter(source)
	if err != nil {
		return mdpress.Input{}, fmt.Errorf("%s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return mdpress.Input{}, fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	input := mdpress.Input{
		Markdown:  body,
		Profile:   profile,
		Title:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		TOCTitle:  tocTitle,
		SourceDir: filepath.Dir(absPath),
	}
	if flags.preview {
		input.Mode = mdpress.ModePreview
	}

	meta.apply(&input)
	applyProfileFlags(&input, flags)

	return input, nil
}

// applyProfileFlags overrides input fields with flags set on the command line.
func applyProfileFlags(in *mdpress.Input, flags *convertFlags) {
	p := flags.profile
	if flags.changed("title") {
		in.Title = flags.title
	}
	if flags.changed("font") {
		in.Profile.FontFamily = p.font
	}
	if flags.changed("size") {
		in.Profile.SizeLevel = p.size
	}
	if flags.changed("spacing") {
		in.Profile.Spacing = mdpress.Spacing(p.spacing)
	}
	if flags.changed("toc") {
		in.Profile.IncludeIndex = p.toc
	}
	if flags.changed("toc-title") {
		in.TOCTitle = p.tocTitle
	}
	if flags.changed("page-breaks") {
		in.Profile.AddPageBreaks = p.pageBreaks
	}
	if flags.changed("auto-width-tables") {
		in.Profile.AutoWidthTables = p.autoWidthTables
	}
}

// resolveOutputPath returns the explicit output or the input path with its
// extension replaced by .pdf (.html in preview).
func resolveOutputPath(inputPath, output string, preview bool) string {
	if output != "" {
		return output
	}
	ext := ".pdf"
	if preview {
		ext = ".html"
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ext
}

// writeOutput writes data, creating the parent directory if needed.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil { // #nosec G306 -- output is meant to be shared
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
