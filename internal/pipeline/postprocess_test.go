package pipeline

// Notes:
// - x/net/html renders void elements as <br/> and escapes quotes in text as
//   &#34; and &#39;, so expectations on rendered markup use those forms.
// - Break opportunities are checked on withBreakOpportunities directly; the
//   tree tests only check where they are applied.

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Code blocks
// ---------------------------------------------------------------------------

func TestPostProcess_CodeBlocks(t *testing.T) {
	t.Parallel()

	tests := []postProcessCase{
		{
			name:         "pre with code gets inline style",
			html:         "<pre><code>x := 1</code></pre>",
			opts:         PostProcessOptions{Monospace: "Menlo"},
			wantContains: []string{`<pre style="` + PreStyle("Menlo") + `"><code>x := 1</code></pre>`},
		},
		{
			name:       "pre without code untouched",
			html:       "<pre>plain</pre>",
			wantAbsent: []string{"style="},
		},
		{
			name:         "break opportunities inside pre",
			html:         "<pre><code>f(a, b)</code></pre>",
			opts:         PostProcessOptions{BreakOpportunities: true},
			wantContains: []string{"f(\u200ba,\u200b b)"},
		},
		{
			name:       "no break opportunities when disabled",
			html:       "<pre><code>f(a, b)</code></pre>",
			wantAbsent: []string{"\u200b"},
		},
		{
			name:       "no break opportunities outside pre",
			html:       "<p>f(a, b) <code>g(c, d)</code></p>",
			opts:       PostProcessOptions{BreakOpportunities: true},
			wantAbsent: []string{"\u200b"},
		},
		{
			name:         "code newlines preserved",
			html:         "<pre><code>a\nb</code></pre>",
			wantContains: []string{"a\nb"},
			wantAbsent:   []string{"<br"},
		},
	}

	runPostProcessCases(t, tests)
}

func TestPreStyle(t *testing.T) {
	t.Parallel()

	got := PreStyle("Meslo")
	for _, want := range []string{"white-space: pre-wrap", "font-family: Meslo, monospace", "background-color: #f5f7f9"} {
		if !strings.Contains(got, want) {
			t.Errorf("PreStyle() missing %q in %q", want, got)
		}
	}
	if !strings.Contains(PreStyle(""), "font-family: Courier, monospace") {
		t.Errorf("PreStyle(\"\") should fall back to Courier")
	}
}

func TestWithBreakOpportunities(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 50)
	wide := strings.Repeat("é", 41)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "no punctuation", input: "x := y", want: "x := y"},
		{name: "after comma and semicolon", input: "a,b;c", want: "a,\u200bb;\u200bc"},
		{name: "after opening brackets", input: "f([{", want: "f(\u200b[\u200b{\u200b"},
		{name: "closing brackets untouched", input: ")]}", want: ")]}"},
		{name: "short quote untouched", input: `s := "abc"`, want: `s := "abc"`},
		{name: "long double quote split", input: `"` + long + `"`, want: `"` + long[:25] + "\u200b" + long[25:] + `"`},
		{name: "long single quote split", input: `'` + long + `'`, want: `'` + long[:25] + "\u200b" + long[25:] + `'`},
		{name: "split on rune boundary", input: `"` + wide + `"`, want: `"` + strings.Repeat("é", 20) + "\u200b" + strings.Repeat("é", 21) + `"`},
		{name: "exactly forty runes untouched", input: `"` + long[:40] + `"`, want: `"` + long[:40] + `"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := withBreakOpportunities(tt.input); got != tt.want {
				t.Errorf("withBreakOpportunities(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Lists and line breaks
// ---------------------------------------------------------------------------

func TestPostProcess_NestedLists(t *testing.T) {
	t.Parallel()

	tests := []postProcessCase{
		{
			name: "depth tagged",
			html: "<ul><li>a<ul><li>b<ol><li>c</li></ol></li></ul></li></ul>",
			wantContains: []string{
				`<ul><li>a<ul class="nested-list" data-level="1">`,
				`<ol class="nested-list" data-level="2">`,
			},
		},
		{
			name:       "sibling lists stay top-level",
			html:       "<ul><li>a</li></ul><ol><li>b</li></ol>",
			wantAbsent: []string{"nested-list", "data-level"},
		},
		{
			name:         "existing class kept",
			html:         `<ul><li><ul class="x"><li>b</li></ul></li></ul>`,
			wantContains: []string{`class="x nested-list"`},
		},
		{
			name:         "depth resets after a list closes",
			html:         "<ul><li><ul><li>b</li></ul></li></ul><ul><li><ul><li>d</li></ul></li></ul>",
			wantAbsent:   []string{`data-level="2"`, `data-level="3"`},
			wantContains: []string{`data-level="1"`},
		},
	}

	runPostProcessCases(t, tests)
}

func TestPostProcess_LineBreaks(t *testing.T) {
	t.Parallel()

	tests := []postProcessCase{
		{
			name:         "adjacent paragraphs separated",
			html:         "<p>a</p><p>b</p>",
			wantContains: []string{"<p>a</p>\n\n<p>b</p>"},
		},
		{
			name:         "single newline between paragraphs widened",
			html:         "<p>a</p>\n<p>b</p>",
			wantContains: []string{"<p>a</p>\n\n<p>b</p>"},
		},
		{
			name:         "newline inside text becomes br",
			html:         "<p>line1\nline2</p>",
			wantContains: []string{"<p>line1<br/>\nline2</p>"},
		},
		{
			name:       "blank line not doubled with br",
			html:       "<p>a\n\nb</p>",
			wantAbsent: []string{"<br"},
		},
		{
			name:       "trailing newline kept as text",
			html:       "<p>a\n</p>",
			wantAbsent: []string{"<br"},
		},
		{
			name:       "whitespace between list items untouched",
			html:       "<ul>\n<li>a</li>\n<li>b</li>\n</ul>",
			wantAbsent: []string{"<br"},
		},
		{
			name:         "existing br kept single",
			html:         "<p>a<br>\nb</p>",
			wantContains: []string{"a<br/>\nb"},
			wantAbsent:   []string{"<br/><br/>"},
		},
	}

	runPostProcessCases(t, tests)
}

// ---------------------------------------------------------------------------
// Headings, page breaks and assets
// ---------------------------------------------------------------------------

func TestPostProcess_Headings(t *testing.T) {
	t.Parallel()

	tests := []postProcessCase{
		{
			name: "ids assigned in document order",
			html: "<h1>Intro</h1><h2>Intro</h2><h3>Café</h3><h4>Deep</h4>",
			opts: PostProcessOptions{HeadingIDs: true},
			wantContains: []string{
				`<h1 id="intro">`,
				`<h2 id="intro-1">`,
				`<h3 id="cafe">`,
				`<h4>Deep</h4>`,
			},
		},
		{
			name:       "ids not assigned when disabled",
			html:       "<h1>Intro</h1>",
			wantAbsent: []string{"id="},
		},
		{
			name:         "empty slug uses hash",
			html:         "<h2>日本</h2>",
			opts:         PostProcessOptions{HeadingIDs: true},
			wantContains: []string{`id="` + hashID("日本") + `"`},
		},
		{
			name: "every h1 after the first breaks the page",
			html: `<h1>A</h1><h2>x</h2><h1>B</h1><h1 class="x">C</h1>`,
			opts: PostProcessOptions{PageBreaks: true},
			wantContains: []string{
				"<h1>A</h1>",
				`<h1 class="page-break-heading">B</h1>`,
				`<h1 class="x page-break-heading">C</h1>`,
			},
		},
		{
			name:       "no page breaks when disabled",
			html:       "<h1>A</h1><h1>B</h1>",
			wantAbsent: []string{"page-break-heading"},
		},
	}

	runPostProcessCases(t, tests)
}

func TestPostProcess_AssetDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := PostProcess(`<p><img src="img/a.png"><img src="https://x.test/b.png"></p>`,
		PostProcessOptions{AssetDir: dir})
	if err != nil {
		t.Fatalf("PostProcess() unexpected error: %v", err)
	}

	if !strings.Contains(got, `src="file://`) || !strings.Contains(got, `img/a.png"`) {
		t.Errorf("relative image not rewritten:\n%s", got)
	}
	if !strings.Contains(got, `src="https://x.test/b.png"`) {
		t.Errorf("absolute URL should be unchanged:\n%s", got)
	}
}

func TestPostProcess_FragmentStaysFragment(t *testing.T) {
	t.Parallel()

	got, err := PostProcess("<p>x</p>", PostProcessOptions{HeadingIDs: true, PageBreaks: true})
	if err != nil {
		t.Fatalf("PostProcess() unexpected error: %v", err)
	}
	if strings.Contains(got, "<html") || strings.Contains(got, "<body") {
		t.Errorf("fragment wrapped in document:\n%s", got)
	}
}

func TestTreePostProcessor_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &TreePostProcessor{}
	_, err := p.PostProcess(ctx, "<p>x</p>", PostProcessOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("PostProcess() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type postProcessCase struct {
	name         string
	html         string
	opts         PostProcessOptions
	wantContains []string
	wantAbsent   []string
}

func runPostProcessCases(t *testing.T, tests []postProcessCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := PostProcess(tt.html, tt.opts)
			if err != nil {
				t.Fatalf("PostProcess() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("PostProcess() missing %q in:\n%s", want, got)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("PostProcess() should not contain %q in:\n%s", absent, got)
				}
			}
		})
	}
}
