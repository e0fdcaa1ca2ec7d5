package decoder

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/fakebitmap/pkg/bitmap"
	"github.com/Faultbox/fakebitmap/pkg/hints"
)

// Engine defaults.
var (
	DefaultSize   = bitmap.Dimensions{Width: 100, Height: 100}
	DefaultConfig = bitmap.ConfigARGB8888
)

// Engine resolves the size and pixel format of a synthetic bitmap.
//
// The zero value has no hints and uses DefaultSize and DefaultConfig.
type Engine struct {
	Hints         *hints.Registry
	DefaultSize   bitmap.Dimensions
	DefaultConfig bitmap.Config
	Logger        *zap.Logger
}

// NewEngine creates an engine over reg with the default size and config.
// A nil reg gets a fresh registry.
func NewEngine(reg *hints.Registry) *Engine {
	if reg == nil {
		reg = hints.NewRegistry()
	}
	return &Engine{
		Hints:         reg,
		DefaultSize:   DefaultSize,
		DefaultConfig: DefaultConfig,
		Logger:        zap.NewNop(),
	}
}

// Synthesize builds a bitmap for key.
//
// Size comes from the hint registered for key, else fallback, else the
// engine default, and is then divided by opts.SampleSize. When opts is
// non-nil its OutWidth and OutHeight receive the final size.
// Any string is a key, including "": an empty buffer still has an identity.
func (e *Engine) Synthesize(key string, opts *bitmap.Options, fallback *bitmap.Dimensions) *bitmap.Bitmap {
	return e.synthesize(key, true, opts, fallback)
}

// SynthesizeAnonymous builds a bitmap for a source with no identity key.
// Hints are never consulted and the description is the plain "Bitmap".
func (e *Engine) SynthesizeAnonymous(opts *bitmap.Options, fallback *bitmap.Dimensions) *bitmap.Bitmap {
	return e.synthesize("", false, opts, fallback)
}

func (e *Engine) synthesize(key string, keyed bool, opts *bitmap.Options, fallback *bitmap.Dimensions) *bitmap.Bitmap {
	size, resolvedBy := e.resolve(key, keyed, fallback)

	sampleSize := 1
	if opts != nil {
		sampleSize = opts.SampleSize
	}
	size = size.Scale(sampleSize)
	size.Width = max(1, size.Width)
	size.Height = max(1, size.Height)

	cfg := e.defaultConfig()
	if opts != nil && opts.PreferredConfig != bitmap.ConfigUnspecified {
		cfg = opts.PreferredConfig
	}

	if opts != nil {
		opts.OutWidth = size.Width
		opts.OutHeight = size.Height
		opts.OutMimeType = ""
	}

	bm := &bitmap.Bitmap{
		Description: describe(key, keyed, opts),
		Config:      cfg,
		Width:       size.Width,
		Height:      size.Height,
	}

	e.logger().Debug("synthesized bitmap",
		zap.String("key", key),
		zap.Bool("keyed", keyed),
		zap.String("resolved_by", resolvedBy),
		zap.Int("width", bm.Width),
		zap.Int("height", bm.Height),
		zap.Stringer("config", cfg),
	)
	return bm
}

func (e *Engine) resolve(key string, keyed bool, fallback *bitmap.Dimensions) (bitmap.Dimensions, string) {
	if keyed && e.Hints != nil {
		if d, ok := e.Hints.Get(key); ok {
			return d, "hint"
		}
	}
	if fallback != nil {
		return *fallback, "fallback"
	}
	size := e.DefaultSize
	if size.Width < 1 || size.Height < 1 {
		size = DefaultSize
	}
	return size, "default"
}

func (e *Engine) defaultConfig() bitmap.Config {
	if e.DefaultConfig == bitmap.ConfigUnspecified {
		return DefaultConfig
	}
	return e.DefaultConfig
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// describe renders "Bitmap for <key> with options <a>, <b>".
func describe(key string, keyed bool, opts *bitmap.Options) string {
	var sb strings.Builder
	sb.WriteString("Bitmap")
	if keyed {
		sb.WriteString(" for ")
		sb.WriteString(key)
	}

	if opts == nil {
		return sb.String()
	}

	var active []string
	if opts.JustDecodeBounds {
		active = append(active, "inJustDecodeBounds")
	}
	if opts.SampleSize > 1 {
		active = append(active, "inSampleSize="+strconv.Itoa(opts.SampleSize))
	}
	if len(active) > 0 {
		sb.WriteString(" with options ")
		sb.WriteString(strings.Join(active, ", "))
	}
	return sb.String()
}
