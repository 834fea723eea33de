package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	assetPath string
	quiet     bool
	verbose   bool
}

// profileFlags holds style profile flags. Only flags set on the command line
// override config and front matter.
type profileFlags struct {
	font            string
	size            int
	spacing         string
	toc             bool
	tocTitle        string
	pageBreaks      bool
	autoWidthTables bool
	skipCodeFences  bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	profile profileFlags
	output  string
	title   string
	timeout string
	preview bool
	workers int

	changed func(name string) bool
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common  commonFlags
	addr    string
	workers int
	timeout string

	changed func(name string) bool
}

// fontsFlags holds all flags for the fonts command.
type fontsFlags struct {
	common  commonFlags
	jsonOut bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path (env MDPRESS_CONFIG)")
	fs.StringVar(&f.assetPath, "asset-path", "", "asset directory with fonts/ and styles (env MDPRESS_ASSETS)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "development logging at debug level")
}

// addProfileFlags adds style profile flags to a FlagSet.
func addProfileFlags(fs *flag.FlagSet, f *profileFlags) {
	fs.StringVarP(&f.font, "font", "f", "", "font family (see 'mdpress fonts')")
	fs.IntVarP(&f.size, "size", "s", 0, "size level 1-5 (9, 12, 14, 16, 20px)")
	fs.StringVar(&f.spacing, "spacing", "", "line spacing: default, compact, spacious")
	fs.BoolVar(&f.toc, "toc", false, "add a table of contents")
	fs.StringVar(&f.tocTitle, "toc-title", "", "table of contents heading")
	fs.BoolVar(&f.pageBreaks, "page-breaks", false, "page break before every top-level heading but the first")
	fs.BoolVar(&f.autoWidthTables, "auto-width-tables", true, "size tables to their content")
	fs.BoolVar(&f.skipCodeFences, "skip-code-fences", false, "leave fenced code untouched by glyph sanitization")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseError wraps flag errors as usage errors, keeping --help distinct.
func parseError(err error) error {
	if err == flag.ErrHelp {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := newFlagSet("convert", stderr, printConvertUsage)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file, or output directory for several inputs")
	fs.StringVar(&f.title, "title", "", "document title")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.preview, "preview", false, "write the preview HTML instead of a PDF")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel conversions for several inputs (0 = auto)")

	addCommonFlags(fs, &f.common)
	addProfileFlags(fs, &f.profile)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	f.changed = fs.Changed

	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	fs := newFlagSet("serve", stderr, printServeUsage)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8080)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "browser pool size (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, parseError(err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}
	f.changed = fs.Changed

	return f, nil
}

// parseFontsFlags parses fonts command flags.
func parseFontsFlags(args []string, stderr io.Writer) (*fontsFlags, error) {
	fs := newFlagSet("fonts", stderr, printFontsUsage)
	f := &fontsFlags{}

	fs.BoolVar(&f.jsonOut, "json", false, "print JSON")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, parseError(err)
	}
	return f, nil
}
