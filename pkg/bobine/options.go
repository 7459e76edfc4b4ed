// Package bobine builds GC and pyrolysis reports from an experiment
// directory.
package bobine

import (
	"log/slog"

	"github.com/lucas-science/bobine/pkg/bobine/parser"
)

// Options configures source discovery and parsing.
type Options struct {
	// Layout maps each source to its directory under the data root.
	Layout parser.Layout
	// ComponentBlocks is the block policy of online "By Component" blocks.
	ComponentBlocks parser.BlockParams
	// PermanentBlocks is the block policy of permanent-gas blocks.
	PermanentBlocks parser.BlockParams
	// OfflineMaxRows caps the peaks read from one offline run; 0 means no cap.
	OfflineMaxRows int
	// Logger receives progress and degradation messages.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns the acquisition software conventions.
func DefaultOptions() Options {
	return Options{
		Layout:          parser.DefaultLayout(),
		ComponentBlocks: parser.ComponentBlockParams(),
		PermanentBlocks: parser.PermanentBlockParams(),
		OfflineMaxRows:  200,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// withDefaults fills the unset fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Layout == (parser.Layout{}) {
		o.Layout = d.Layout
	}
	if len(o.ComponentBlocks.HeaderOffsets) == 0 {
		o.ComponentBlocks = d.ComponentBlocks
	}
	if len(o.PermanentBlocks.HeaderOffsets) == 0 {
		o.PermanentBlocks = d.PermanentBlocks
	}
	return o
}
