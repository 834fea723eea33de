// Package assets provides the stylesheets and font files used when building
// print documents. Assets can be loaded from embedded files or a custom
// directory on disk.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in theme)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in theme stylesheet. It carries no font
// files, so a binary without an asset directory renders with the CSS fallback
// stacks only.
//
// FilesystemLoader allows users to provide custom assets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the primary loader used by the converter. It tries the
// custom FilesystemLoader first, falling back to EmbeddedLoader if the asset
// is not found. This enables overriding specific stylesheets while keeping
// defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── theme.css            # Base theme, injected verbatim
//	│   └── code-highlight.css   # Optional syntax highlighting sheet
//	└── fonts/
//	    └── {file}               # Font variant files (e.g. Inter-Regular.woff2)
//
// # Security
//
// Asset and font names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
