// Package bitmap defines the synthetic decoded-image model produced by the fake decoder.
package bitmap

import (
	"fmt"
	"io"
	"strings"
)

// Config is the pixel format of a decoded bitmap.
type Config int

// Pixel formats. ConfigUnspecified means "use the engine default".
const (
	ConfigUnspecified Config = iota
	ConfigAlpha8
	ConfigRGB565
	ConfigARGB4444
	ConfigARGB8888
	ConfigRGBAF16
	ConfigHardware
)

var configNames = map[Config]string{
	ConfigUnspecified: "UNSPECIFIED",
	ConfigAlpha8:      "ALPHA_8",
	ConfigRGB565:      "RGB_565",
	ConfigARGB4444:    "ARGB_4444",
	ConfigARGB8888:    "ARGB_8888",
	ConfigRGBAF16:     "RGBA_F16",
	ConfigHardware:    "HARDWARE",
}

// String returns the canonical name, e.g. "ARGB_8888".
func (c Config) String() string {
	if name, ok := configNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Config(%d)", int(c))
}

// ParseConfig converts a pixel format name into a Config.
// Matching is case-insensitive; an empty name yields ConfigUnspecified.
func ParseConfig(name string) (Config, error) {
	if name == "" {
		return ConfigUnspecified, nil
	}
	for c, n := range configNames {
		if strings.EqualFold(n, name) {
			return c, nil
		}
	}
	return ConfigUnspecified, fmt.Errorf("unknown pixel format %q", name)
}

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// String returns "WxH".
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Scale divides both axes by sampleSize, clamping each to at least 1.
// A sampleSize of 1 or less returns d unchanged.
func (d Dimensions) Scale(sampleSize int) Dimensions {
	if sampleSize <= 1 {
		return d
	}
	return Dimensions{
		Width:  max(1, d.Width/sampleSize),
		Height: max(1, d.Height/sampleSize),
	}
}

// Options mirrors the decode options accepted by a real decoder.
// The Out* fields are written back by the decoder.
type Options struct {
	PreferredConfig  Config
	SampleSize       int
	JustDecodeBounds bool

	OutWidth    int
	OutHeight   int
	OutMimeType string
}

// Bitmap is the placeholder returned in place of a decoded image.
type Bitmap struct {
	Description string
	Config      Config
	Width       int
	Height      int

	// Source records which decode call produced the bitmap.
	Source Source

	// NinePatchChunk is non-nil for nine-patch resources. It is always
	// empty; only its presence is meaningful.
	NinePatchChunk []byte
}

// String returns the description.
func (b *Bitmap) String() string {
	return b.Description
}

// IsNinePatch reports whether the bitmap carries a nine-patch chunk.
func (b *Bitmap) IsNinePatch() bool {
	return b.NinePatchChunk != nil
}

// Size returns the bitmap dimensions.
func (b *Bitmap) Size() Dimensions {
	return Dimensions{Width: b.Width, Height: b.Height}
}

// CreatedFromResID returns the resource id the bitmap was decoded from.
func (b *Bitmap) CreatedFromResID() (int, bool) {
	s, ok := b.Source.(ResourceSource)
	return s.ID, ok
}

// CreatedFromPath returns the file path the bitmap was decoded from.
func (b *Bitmap) CreatedFromPath() (string, bool) {
	s, ok := b.Source.(FileSource)
	return s.Path, ok
}

// CreatedFromBytes returns the buffer the bitmap was decoded from.
func (b *Bitmap) CreatedFromBytes() ([]byte, bool) {
	s, ok := b.Source.(BytesSource)
	return s.Data, ok
}

// CreatedFromStream returns the stream the bitmap was decoded from.
func (b *Bitmap) CreatedFromStream() (io.Reader, bool) {
	s, ok := b.Source.(StreamSource)
	return s.Reader, ok
}

// Source is the provenance marker of a Bitmap. Exactly one implementation is
// set per bitmap.
type Source interface {
	source()
}

// ResourceSource marks a bitmap decoded from a resource id.
type ResourceSource struct{ ID int }

// FileSource marks a bitmap decoded from a file path.
type FileSource struct{ Path string }

// BytesSource marks a bitmap decoded from a byte buffer.
type BytesSource struct{ Data []byte }

// StreamSource marks a bitmap decoded from a stream.
type StreamSource struct{ Reader io.Reader }

func (ResourceSource) source() {}
func (FileSource) source()     {}
func (BytesSource) source()    {}
func (StreamSource) source()   {}
