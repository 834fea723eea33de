package fonts

import (
	"sync"

	"go.uber.org/zap"
)

// Locator answers whether a font file is available.
// assets.AssetResolver satisfies it.
type Locator interface {
	HasFont(file string) bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithCatalog replaces the default family table.
func WithCatalog(c Catalog) Option {
	return func(r *Registry) {
		r.catalog = c
	}
}

// WithLogger sets the logger used to report families that fail registration.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// Registry is the read-only view of a catalog plus the set of families whose
// files are all present. Registration happens once, on first use.
// A Registry is safe for concurrent use.
type Registry struct {
	catalog Catalog
	locator Locator
	logger  *zap.Logger

	once       sync.Once
	registered map[string]bool
	monospace  string
}

// NewRegistry creates a registry probing files through locator.
// A nil locator registers no file-backed family.
func NewRegistry(locator Locator, opts ...Option) *Registry {
	r := &Registry{
		catalog: DefaultCatalog(),
		locator: locator,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// register records every family whose four variant files exist and picks the
// monospace family. Safe to call repeatedly; only the first call probes.
func (r *Registry) register() {
	r.once.Do(func() {
		r.registered = make(map[string]bool, len(r.catalog))
		for _, d := range r.catalog {
			if d.Builtin() || r.locator == nil {
				continue
			}
			if missing := r.missingFiles(d); len(missing) > 0 {
				r.logger.Debug("font family not registered",
					zap.String("family", d.Family),
					zap.Strings("missing", missing))
				continue
			}
			r.registered[d.Family] = true
			if d.Monospace && r.monospace == "" {
				r.monospace = d.Family
			}
		}
		if r.monospace == "" {
			r.monospace = FallbackMonospace
			r.logger.Debug("no monospace family registered, using fallback",
				zap.String("family", FallbackMonospace))
		}
	})
}

func (r *Registry) missingFiles(d Descriptor) []string {
	var missing []string
	for _, f := range d.Files() {
		if !r.locator.HasFont(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Known reports whether the family is in the catalog, registered or not.
func (r *Registry) Known(family string) bool {
	_, ok := r.catalog.Lookup(family)
	return ok
}

// Available reports whether @font-face rules can be emitted for the family.
func (r *Registry) Available(family string) bool {
	r.register()
	return r.registered[family]
}

// Descriptor returns the catalog entry for a family.
func (r *Registry) Descriptor(family string) (Descriptor, bool) {
	return r.catalog.Lookup(family)
}

// Stack returns the CSS font stack for a family, or FallbackStack when the
// family is unknown.
func (r *Registry) Stack(family string) string {
	if d, ok := r.catalog.Lookup(family); ok && d.Stack != "" {
		return d.Stack
	}
	return FallbackStack
}

// Monospace returns the family used for code: the first registered monospace
// candidate in catalog order, else FallbackMonospace.
func (r *Registry) Monospace() string {
	r.register()
	return r.monospace
}

// Families lists every known family in catalog order.
func (r *Registry) Families() []string {
	names := make([]string, 0, len(r.catalog))
	for _, d := range r.catalog {
		names = append(names, d.Family)
	}
	return names
}

// Registered lists the families with all files present, in catalog order.
func (r *Registry) Registered() []string {
	r.register()
	var names []string
	for _, d := range r.catalog {
		if r.registered[d.Family] {
			names = append(names, d.Family)
		}
	}
	return names
}
