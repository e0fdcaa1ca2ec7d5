// Package sniff recovers real image dimensions from header bytes without
// decoding pixels.
package sniff

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"

	// Registered format readers.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/fakebitmap/pkg/bitmap"
	"github.com/Faultbox/fakebitmap/pkg/formats"
)

// ErrSniff wraps any I/O failure raised while probing a stream.
var ErrSniff = errors.New("sniffing image header")

// Sniffer reads an image header from r.
//
// An unrecognized format is not an error: Sniff returns ok == false.
// Errors are reserved for I/O failures and are never a reason to fall back.
type Sniffer interface {
	Sniff(r io.Reader) (dims bitmap.Dimensions, format string, ok bool, err error)
}

// Func adapts a function to the Sniffer interface.
type Func func(r io.Reader) (bitmap.Dimensions, string, bool, error)

// Sniff calls f(r).
func (f Func) Sniff(r io.Reader) (bitmap.Dimensions, string, bool, error) {
	return f(r)
}

// Nop never recognizes anything and never reads from the stream.
var Nop Sniffer = Func(func(io.Reader) (bitmap.Dimensions, string, bool, error) {
	return bitmap.Dimensions{}, "", false, nil
})

// ImageSniffer consults every format registered with package image, then
// falls back to a TGA header probe.
//
// The stream is read from its current position and is left advanced past
// the header; callers needing the bytes again must pass an independent reader.
type ImageSniffer struct{}

// NewImageSniffer returns a Sniffer backed by the image format registry.
func NewImageSniffer() *ImageSniffer {
	return &ImageSniffer{}
}

// Sniff implements Sniffer.
func (s *ImageSniffer) Sniff(r io.Reader) (bitmap.Dimensions, string, bool, error) {
	br := bufio.NewReader(r)

	cfg, format, err := image.DecodeConfig(br)
	switch {
	case err == nil:
		return accept(cfg, format)
	case formats.IsUnrecognized(err):
		return bitmap.Dimensions{}, "", false, nil
	case !errors.Is(err, image.ErrFormat):
		return bitmap.Dimensions{}, format, false, fmt.Errorf("%w: %s header: %w", ErrSniff, formatName(format), err)
	}

	// image.DecodeConfig only peeks when no magic matches, so the TGA
	// header is still at the front of br.
	hdr, err := br.Peek(formats.TGAHeaderSize)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return bitmap.Dimensions{}, "", false, nil
		}
		return bitmap.Dimensions{}, "", false, fmt.Errorf("%w: %w", ErrSniff, err)
	}
	cfg, err = formats.ParseTGAHeader(hdr)
	if err != nil {
		return bitmap.Dimensions{}, "", false, nil
	}
	return accept(cfg, "tga")
}

func accept(cfg image.Config, format string) (bitmap.Dimensions, string, bool, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return bitmap.Dimensions{}, "", false, nil
	}
	return bitmap.Dimensions{Width: cfg.Width, Height: cfg.Height}, format, true, nil
}

func formatName(format string) string {
	if format == "" {
		return "image"
	}
	return format
}

// MimeType maps a registered format name to its MIME type.
// Unknown formats map to "".
func MimeType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	case "webp":
		return "image/webp"
	case "tga":
		return "image/x-tga"
	case "spr":
		return "image/x-spr"
	default:
		return ""
	}
}
