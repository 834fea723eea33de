package fonts

import (
	"testing"
)

func TestDefaultCatalog_Order(t *testing.T) {
	t.Parallel()

	want := []string{
		"Inter", "AlbertSans", "HankenGrotesk", "Jost", "Spartan", "Formera",
		"Archivo", "Manrope", "Barlow", "OpenSans", "Lato", "NunitoSans",
		"IBMPlexSans", "Roboto", "SourceSansPro", "WorkSans", "MesloLGS",
		"SourceCodePro", "Helvetica", "Times-Roman", "Courier",
	}

	got := DefaultCatalog()
	if len(got) != len(want) {
		t.Fatalf("DefaultCatalog() has %d families, want %d", len(got), len(want))
	}
	for i, d := range got {
		if d.Family != want[i] {
			t.Errorf("DefaultCatalog()[%d] = %q, want %q", i, d.Family, want[i])
		}
		if d.Stack == "" {
			t.Errorf("family %q has empty stack", d.Family)
		}
	}
}

func TestCatalog_Lookup(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()

	tests := []struct {
		name       string
		family     string
		wantOK     bool
		wantItalic string
		wantMono   bool
	}{
		{name: "woff2 family", family: "Inter", wantOK: true, wantItalic: "Inter-Italic.woff2"},
		{name: "irregular italic names", family: "SourceSansPro", wantOK: true, wantItalic: "SourceSansPro-It.ttf"},
		{name: "opentype italics", family: "SourceCodePro", wantOK: true, wantItalic: "SourceCodePro-Italic.otf", wantMono: true},
		{name: "reused variant files", family: "Spartan", wantOK: true, wantItalic: "LeagueSpartan-Regular.ttf"},
		{name: "builtin", family: "Courier", wantOK: true},
		{name: "case sensitive", family: "inter", wantOK: false},
		{name: "unknown", family: "Comic Sans", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, ok := c.Lookup(tt.family)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.family, ok, tt.wantOK)
			}
			if d.Italic != tt.wantItalic {
				t.Errorf("Lookup(%q).Italic = %q, want %q", tt.family, d.Italic, tt.wantItalic)
			}
			if d.Monospace != tt.wantMono {
				t.Errorf("Lookup(%q).Monospace = %v, want %v", tt.family, d.Monospace, tt.wantMono)
			}
		})
	}
}

func TestDescriptor_Faces(t *testing.T) {
	t.Parallel()

	d, _ := DefaultCatalog().Lookup("Roboto")
	faces := d.Faces()
	if len(faces) != 4 {
		t.Fatalf("Faces() returned %d faces, want 4", len(faces))
	}

	want := []Face{
		{File: "Roboto-Regular.ttf", Weight: "normal", Style: "normal"},
		{File: "Roboto-Bold.ttf", Weight: "bold", Style: "normal"},
		{File: "Roboto-Italic.ttf", Weight: "normal", Style: "italic"},
		{File: "Roboto-BoldItalic.ttf", Weight: "bold", Style: "italic"},
	}
	for i := range want {
		if faces[i] != want[i] {
			t.Errorf("Faces()[%d] = %+v, want %+v", i, faces[i], want[i])
		}
	}

	builtin, _ := DefaultCatalog().Lookup("Helvetica")
	if !builtin.Builtin() {
		t.Error("Helvetica.Builtin() = false, want true")
	}
	if builtin.Faces() != nil {
		t.Errorf("builtin Faces() = %v, want nil", builtin.Faces())
	}
}

func TestDescriptor_Files_Dedup(t *testing.T) {
	t.Parallel()

	d, _ := DefaultCatalog().Lookup("Formera")
	files := d.Files()
	if len(files) != 1 || files[0] != "Formera-Regular.ttf" {
		t.Errorf("Files() = %v, want [Formera-Regular.ttf]", files)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file string
		want string
	}{
		{"Inter-Regular.woff2", "woff2"},
		{"Inter-Regular.woff", "woff"},
		{"SourceCodePro-Italic.otf", "opentype"},
		{"Roboto-Bold.ttf", "truetype"},
		{"Roboto-Bold.TTF", "truetype"},
		{"noext", "truetype"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			if got := Format(tt.file); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}
