package fold

import "github.com/yaklabco/gofold/pkg/marker"

// Provider computes folding ranges for documents using a fixed marker list.
// The list is compiled once at construction; FoldingRanges may be called from
// any number of goroutines.
type Provider struct {
	markers []marker.Marker
}

// NewProvider returns a provider for already compiled markers. The slice is
// copied.
func NewProvider(markers []marker.Marker) *Provider {
	own := make([]marker.Marker, len(markers))
	copy(own, markers)
	return &Provider{markers: own}
}

// NewProviderFromSpecs compiles specs with compiler and returns a provider.
// A nil compiler compiles RE2. Specs that fail to compile are dropped.
func NewProviderFromSpecs(compiler *marker.Compiler, specs ...marker.Spec) *Provider {
	if compiler == nil {
		compiler = marker.NewCompiler(marker.DialectRE2)
	}
	return &Provider{markers: compiler.Compile(specs...)}
}

// Markers returns a copy of the compiled marker list in priority order.
func (p *Provider) Markers() []marker.Marker {
	out := make([]marker.Marker, len(p.markers))
	copy(out, p.markers)
	return out
}

// Len returns the number of compiled markers.
func (p *Provider) Len() int {
	return len(p.markers)
}

// FoldingRanges scans doc and returns a fresh range list owned by the caller.
func (p *Provider) FoldingRanges(doc Document) []Range {
	return Scan(p.markers, doc)
}
