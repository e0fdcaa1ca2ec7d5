// Package formats provides header readers for image formats the standard
// library does not know about. Importing it registers SPR with package image.
package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// SPR format errors.
var (
	ErrInvalidSPRMagic       = errors.New("invalid SPR magic: expected 'SP'")
	ErrUnsupportedSPRVersion = errors.New("unsupported SPR version")
	ErrTruncatedSPRData      = errors.New("truncated SPR data")
	ErrEmptySPR              = errors.New("SPR contains no images")
)

// SPRVersions lists the sprite versions with a readable header.
// Version 1.0 relies on the system palette and is not among them.
var SPRVersions = []SPRVersion{
	{Major: 1, Minor: 1},
	{Major: 2, Minor: 0},
	{Major: 2, Minor: 1},
}

func init() {
	// One exact magic per version so that arbitrary text starting with "SP"
	// never reaches the SPR reader.
	for _, v := range SPRVersions {
		image.RegisterFormat("spr", v.magic(), DecodeSPR, DecodeSPRConfig)
	}
}

// IsUnrecognized reports whether err means the bytes are not an image of a
// supported format, as opposed to a damaged or unreadable one.
func IsUnrecognized(err error) bool {
	return errors.Is(err, ErrInvalidSPRMagic) ||
		errors.Is(err, ErrUnsupportedSPRVersion) ||
		errors.Is(err, ErrEmptySPR) ||
		errors.Is(err, ErrNotTGA)
}

// SPRVersion represents the SPR file version.
type SPRVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v SPRVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// magic is the 4-byte file prefix, version stored as Minor, Major.
func (v SPRVersion) magic() string {
	return string([]byte{'S', 'P', v.Minor, v.Major})
}

func (v SPRVersion) supported() bool {
	for _, s := range SPRVersions {
		if s == v {
			return true
		}
	}
	return false
}

// sprHeader is everything before the first frame.
type sprHeader struct {
	Version        SPRVersion
	IndexedCount   uint16
	TrueColorCount uint16
}

func readSPRHeader(r io.Reader) (sprHeader, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return sprHeader{}, fmt.Errorf("%w: reading magic", ErrTruncatedSPRData)
	}
	if magic[0] != 'S' || magic[1] != 'P' {
		return sprHeader{}, ErrInvalidSPRMagic
	}

	h := sprHeader{Version: SPRVersion{Major: magic[3], Minor: magic[2]}}
	if !h.Version.supported() {
		return sprHeader{}, fmt.Errorf("%w: %s", ErrUnsupportedSPRVersion, h.Version)
	}

	if err := binary.Read(r, binary.LittleEndian, &h.IndexedCount); err != nil {
		return sprHeader{}, fmt.Errorf("%w: reading indexed count", ErrTruncatedSPRData)
	}
	if h.Version.Major >= 2 {
		if err := binary.Read(r, binary.LittleEndian, &h.TrueColorCount); err != nil {
			return sprHeader{}, fmt.Errorf("%w: reading true-color count", ErrTruncatedSPRData)
		}
	}
	return h, nil
}

// readFrameSize reads a frame's width and height. Blank frames
// (0 or 0xFFFF on either axis) report as 1x1.
func readFrameSize(r io.Reader) (w, h int, err error) {
	var size [2]uint16
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return 0, 0, fmt.Errorf("%w: reading frame size", ErrTruncatedSPRData)
	}
	if size[0] == 0 || size[1] == 0 || size[0] == 0xFFFF || size[1] == 0xFFFF {
		return 1, 1, nil
	}
	return int(size[0]), int(size[1]), nil
}

// DecodeSPRConfig returns the size of the first frame of an SPR sprite
// without reading pixel data.
func DecodeSPRConfig(r io.Reader) (image.Config, error) {
	h, err := readSPRHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	if h.IndexedCount == 0 && h.TrueColorCount == 0 {
		return image.Config{}, ErrEmptySPR
	}
	w, ht, err := readFrameSize(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: w, Height: ht}, nil
}

// DecodeSPR returns a transparent image the size of the first frame.
// Pixel data is never read.
func DecodeSPR(r io.Reader) (image.Image, error) {
	cfg, err := DecodeSPRConfig(r)
	if err != nil {
		return nil, err
	}
	return image.NewNRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)), nil
}
