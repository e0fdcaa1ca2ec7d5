package formats

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// ErrNotTGA is returned when a header is not a supported TGA header.
var ErrNotTGA = errors.New("not a supported TGA header")

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// TGAHeaderSize is the length of the fixed TGA header.
const TGAHeaderSize = 18

// ParseTGAHeader reads the size out of an 18-byte TGA header.
// TGA has no magic number, so only uncompressed and RLE true-color images
// at 24 or 32 bits per pixel are accepted; anything else is ErrNotTGA.
func ParseTGAHeader(hdr []byte) (image.Config, error) {
	if len(hdr) < TGAHeaderSize {
		return image.Config{}, fmt.Errorf("%w: header too short", ErrNotTGA)
	}

	colorMapType := hdr[1]
	imageType := hdr[2]
	width := int(hdr[12]) | int(hdr[13])<<8
	height := int(hdr[14]) | int(hdr[15])<<8
	bpp := int(hdr[16])

	if colorMapType != 0 {
		return image.Config{}, fmt.Errorf("%w: color-mapped", ErrNotTGA)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return image.Config{}, fmt.Errorf("%w: image type %d", ErrNotTGA, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return image.Config{}, fmt.Errorf("%w: bit depth %d", ErrNotTGA, bpp)
	}
	if width == 0 || height == 0 {
		return image.Config{}, fmt.Errorf("%w: zero size", ErrNotTGA)
	}

	return image.Config{ColorModel: color.RGBAModel, Width: width, Height: height}, nil
}

// DecodeTGAConfig reads a TGA header from r.
func DecodeTGAConfig(r io.Reader) (image.Config, error) {
	hdr := make([]byte, TGAHeaderSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return image.Config{}, fmt.Errorf("%w: header too short", ErrNotTGA)
		}
		return image.Config{}, err
	}
	return ParseTGAHeader(hdr)
}
