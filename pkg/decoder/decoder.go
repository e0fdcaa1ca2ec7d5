// Package decoder is a deterministic stand-in for an image-decoding API.
//
// Decode calls never touch pixel data. Each input kind is reduced to an
// identity key, the key's size is resolved from registered hints, a sniffed
// header (streams only) or a fixed default, and a placeholder bitmap is
// returned that records where it came from.
//
// Tests register hints with the ProvideDimensionHint* methods and call
// ResetAllHints between cases. A Decoder is not safe for concurrent use.
package decoder

import (
	"io"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/fakebitmap/pkg/bitmap"
	"github.com/Faultbox/fakebitmap/pkg/hints"
	"github.com/Faultbox/fakebitmap/pkg/sniff"
)

const ninePatchMarker = ".9."

// Decoder exposes the decode entry points and the test-setup interface.
type Decoder struct {
	engine    *Engine
	resources ResourceResolver
	sniffer   sniff.Sniffer
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithRegistry shares an existing hint registry.
func WithRegistry(reg *hints.Registry) Option {
	return func(d *Decoder) {
		if reg != nil {
			d.engine.Hints = reg
		}
	}
}

// WithLogger sets the logger used for synthesis events.
func WithLogger(l *zap.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.engine.Logger = l
		}
	}
}

// WithSniffer replaces the header sniffer used for anonymous streams.
func WithSniffer(s sniff.Sniffer) Option {
	return func(d *Decoder) {
		if s != nil {
			d.sniffer = s
		}
	}
}

// WithResources sets the resolver for resource names.
func WithResources(r ResourceResolver) Option {
	return func(d *Decoder) {
		if r != nil {
			d.resources = r
		}
	}
}

// WithDefaultSize overrides the size used when nothing else is known.
func WithDefaultSize(size bitmap.Dimensions) Option {
	return func(d *Decoder) {
		if size.Width > 0 && size.Height > 0 {
			d.engine.DefaultSize = size
		}
	}
}

// WithDefaultConfig overrides the pixel format used when none is preferred.
func WithDefaultConfig(cfg bitmap.Config) Option {
	return func(d *Decoder) {
		if cfg != bitmap.ConfigUnspecified {
			d.engine.DefaultConfig = cfg
		}
	}
}

// New creates a Decoder with its own hint registry, an empty resource table
// and an image-registry-backed sniffer.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		engine:    NewEngine(nil),
		resources: ResourceTable{},
		sniffer:   sniff.NewImageSniffer(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Engine returns the underlying resolution engine.
func (d *Decoder) Engine() *Engine {
	return d.engine
}

// Hints returns the hint registry.
func (d *Decoder) Hints() *hints.Registry {
	return d.engine.Hints
}

// DecodeResource decodes the resource with the given id. Resources whose
// name contains ".9." come back as nine-patches.
func (d *Decoder) DecodeResource(id int, opts *bitmap.Options) *bitmap.Bitmap {
	name := d.resources.ResourceName(id)
	bm := d.engine.Synthesize(hints.ResourceKey(name), opts, nil)
	bm.Source = bitmap.ResourceSource{ID: id}
	if strings.Contains(name, ninePatchMarker) {
		bm.NinePatchChunk = []byte{}
	}
	return bm
}

// DecodeFile decodes the file at path. The file is never opened.
func (d *Decoder) DecodeFile(path string, opts *bitmap.Options) *bitmap.Bitmap {
	bm := d.engine.Synthesize(hints.FileKey(path), opts, nil)
	bm.Source = bitmap.FileSource{Path: path}
	return bm
}

// DecodeBytes decodes data[offset:offset+length]. Out-of-range offset and
// length are clamped to the buffer.
func (d *Decoder) DecodeBytes(data []byte, offset, length int, opts *bitmap.Options) *bitmap.Bitmap {
	offset, length = clampRange(data, offset, length)
	bm := d.engine.Synthesize(bytesKey(data, offset, length), opts, nil)
	bm.Source = bitmap.BytesSource{Data: data}
	return bm
}

// DecodeByteArray decodes all of data.
func (d *Decoder) DecodeByteArray(data []byte, opts *bitmap.Options) *bitmap.Bitmap {
	return d.DecodeBytes(data, 0, len(data), opts)
}

// DecodeStream decodes r.
//
// A NamedStream (or any reader whose String form is "stream for <name>") is
// keyed by name and never read, even when the name is empty. Other streams
// are sniffed for their real header size; an unrecognized header falls back
// to the default size. A read failure while sniffing is returned and no
// bitmap is produced.
func (d *Decoder) DecodeStream(r io.Reader, opts *bitmap.Options) (*bitmap.Bitmap, error) {
	key, named := streamKey(r)
	if named {
		bm := d.engine.Synthesize(key, opts, nil)
		bm.Source = bitmap.StreamSource{Reader: r}
		return bm, nil
	}

	var (
		fallback *bitmap.Dimensions
		format   string
	)
	if r != nil {
		dims, f, ok, err := d.sniffer.Sniff(r)
		if err != nil {
			return nil, err
		}
		if ok {
			fallback = &dims
			format = f
		}
	}

	bm := d.engine.SynthesizeAnonymous(opts, fallback)
	if opts != nil {
		opts.OutMimeType = sniff.MimeType(format)
	}
	bm.Source = bitmap.StreamSource{Reader: r}
	return bm, nil
}

// ProvideDimensionHint registers a hint under a raw identity key.
func (d *Decoder) ProvideDimensionHint(key string, width, height int) {
	d.engine.Hints.Put(key, bitmap.Dimensions{Width: width, Height: height})
}

// ProvideDimensionHintForURI registers a hint for content loaded from u.
// A nil u is ignored.
func (d *Decoder) ProvideDimensionHintForURI(u *url.URL, width, height int) {
	if u == nil {
		return
	}
	d.ProvideDimensionHint(hints.URIKey(u), width, height)
}

// ProvideDimensionHintForResource registers a hint for resource id.
func (d *Decoder) ProvideDimensionHintForResource(id, width, height int) {
	d.ProvideDimensionHint(d.resourceKey(id), width, height)
}

// ProvideDimensionHintForFile registers a hint for the file at path.
func (d *Decoder) ProvideDimensionHintForFile(path string, width, height int) {
	d.ProvideDimensionHint(hints.FileKey(path), width, height)
}

// ResetAllHints clears every registered hint.
func (d *Decoder) ResetAllHints() {
	d.engine.Hints.Clear()
}

func (d *Decoder) resourceKey(id int) string {
	return hints.ResourceKey(d.resources.ResourceName(id))
}
