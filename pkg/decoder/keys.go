package decoder

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"
)

const (
	namedStreamPrefix = "stream for "
	byteArrayPrefix   = "byte array, checksum: "
)

// NamedStream is a reader that carries an identity. Decoding it uses the
// name as the identity key instead of sniffing the header.
type NamedStream struct {
	io.Reader
	name string
}

// NewNamedStream wraps r under name.
func NewNamedStream(name string, r io.Reader) *NamedStream {
	if r == nil {
		r = strings.NewReader("")
	}
	return &NamedStream{Reader: r, name: name}
}

// Name returns the stream name.
func (s *NamedStream) Name() string {
	return s.name
}

// String returns "stream for <name>".
func (s *NamedStream) String() string {
	return namedStreamPrefix + s.name
}

// streamKey returns the identity of a stream that describes itself as
// "stream for <name>". ok is false for anonymous streams; an empty name is
// still an identity.
func streamKey(r io.Reader) (key string, ok bool) {
	s, isStringer := r.(fmt.Stringer)
	if !isStringer {
		return "", false
	}
	name, found := strings.CutPrefix(s.String(), namedStreamPrefix)
	if !found {
		return "", false
	}
	return name, true
}

// clampRange bounds offset and length to data.
func clampRange(data []byte, offset, length int) (int, int) {
	offset = min(max(offset, 0), len(data))
	length = min(max(length, 0), len(data)-offset)
	return offset, length
}

// bytesKey returns the identity of data[offset:offset+length]: the text
// itself when it is printable ASCII, else its CRC-32. Partial ranges get a
// " bytes <offset>..<length>" suffix.
func bytesKey(data []byte, offset, length int) string {
	chunk := data[offset : offset+length]

	var key string
	if isPrintableASCII(chunk) {
		key = string(chunk)
	} else {
		key = fmt.Sprintf("%s%d", byteArrayPrefix, crc32.ChecksumIEEE(chunk))
	}

	if offset != 0 || length != len(data) {
		key += fmt.Sprintf(" bytes %d..%d", offset, length)
	}
	return key
}

func isPrintableASCII(b []byte) bool {
	for _, c := range b {
		switch {
		case c >= 0x20 && c <= 0x7e:
		case c == '\t', c == '\n', c == '\r':
		default:
			return false
		}
	}
	return true
}
