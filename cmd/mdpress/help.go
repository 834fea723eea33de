package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpress <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to PDF or preview HTML")
	fmt.Fprintln(w, "  serve      Run the HTTP API")
	fmt.Fprintln(w, "  fonts      List font families")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpress help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "      --asset-path <dir>     Asset directory (fonts/, styles)")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Debug logging")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpress convert <file.md|dir>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to PDF. Directories are searched recursively for")
	fmt.Fprintln(w, ".md and .markdown files. Front matter keys font, size, spacing,")
	fmt.Fprintln(w, "toc, pageBreaks, autoWidthTables and title override the config file;")
	fmt.Fprintln(w, "flags override both.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>        Output file (directory for several inputs)")
	fmt.Fprintln(w, "      --preview              Write preview HTML, skip PDF")
	fmt.Fprintln(w, "      --title <s>            Document title")
	fmt.Fprintln(w, "  -t, --timeout <d>          PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel conversions (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Style:")
	fmt.Fprintln(w, "  -f, --font <family>        Font family")
	fmt.Fprintln(w, "  -s, --size <n>             Size level 1-5")
	fmt.Fprintln(w, "      --spacing <s>          default, compact, spacious")
	fmt.Fprintln(w, "      --toc                  Table of contents")
	fmt.Fprintln(w, "      --toc-title <s>        Table of contents heading")
	fmt.Fprintln(w, "      --page-breaks          Break before top-level headings")
	fmt.Fprintln(w, "      --auto-width-tables    Size tables to content (default true)")
	fmt.Fprintln(w, "      --skip-code-fences     Keep glyphs inside fenced code")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpress serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP API:")
	fmt.Fprintln(w, "  POST /generate-pdf           JSON request -> PDF attachment")
	fmt.Fprintln(w, "  POST /generate-pdf-preview   JSON request -> HTML")
	fmt.Fprintln(w, "  GET  /fonts                  Font families")
	fmt.Fprintln(w, "  GET  /healthz                Liveness")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <addr>          Listen address (default :8080)")
	fmt.Fprintln(w, "  -w, --workers <n>          Browser pool size (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>          PDF generation timeout")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printFontsUsage prints usage for the fonts command.
func printFontsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpress fonts [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List known font families. Families marked * have all four files")
	fmt.Fprintln(w, "under the asset directory and are embedded in documents.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "fonts":
		printFontsUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpress version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdpress help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
