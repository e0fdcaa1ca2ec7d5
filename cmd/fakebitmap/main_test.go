package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/fakebitmap/internal/config"
	"github.com/Faultbox/fakebitmap/pkg/bitmap"
	"github.com/Faultbox/fakebitmap/pkg/sniff"
)

const testConfig = `
decoder:
  default_width: 64
  default_height: 32
hints:
  - file: img.png
    width: 400
    height: 200
  - resource: 7
    width: 9
    height: 9
resources:
  7: drawable/seven
logging:
  level: error
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fakebitmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))
	t.Cleanup(func() {
		_ = config.FlagSet().Set("config", "")
	})
	return path
}

func pngFile(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestNewDecoder(t *testing.T) {
	res := 7
	cfg := config.Default()
	cfg.Resources = map[int]string{7: "drawable/seven"}
	cfg.Hints = []config.HintConfig{
		{Key: "raw", Width: 1, Height: 2},
		{File: "a.png", Width: 3, Height: 4},
		{URI: "content://x/1", Width: 5, Height: 6},
		{Resource: &res, Width: 7, Height: 8},
	}

	d, err := newDecoder(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"content://x/1", "file:a.png", "raw", "resource:drawable/seven"}, d.Hints().Keys())
	assert.Equal(t, bitmap.Dimensions{Width: 3, Height: 4}, d.DecodeFile("a.png", nil).Size())
	assert.Equal(t, bitmap.Dimensions{Width: 7, Height: 8}, d.DecodeResource(7, nil).Size())
	assert.Equal(t, bitmap.Dimensions{Width: 5, Height: 6}, d.DecodeByteArray([]byte("content://x/1"), nil).Size())
	assert.Equal(t, bitmap.Dimensions{Width: 1, Height: 2}, d.DecodeByteArray([]byte("raw"), nil).Size())
	assert.Equal(t, 4, d.Hints().Len())
}

func TestNewDecoder_BadFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Decoder.DefaultFormat = "CMYK"

	_, err := newDecoder(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestApplyHints_BadURI(t *testing.T) {
	cfg := config.Default()
	cfg.Hints = []config.HintConfig{{URI: "://missing-scheme", Width: 1, Height: 1}}

	_, err := newDecoder(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestCmdDescribe(t *testing.T) {
	path := writeConfig(t)

	var out bytes.Buffer
	err := cmdDescribe([]string{"--config", path, "--sample-size", "2", "--bounds", "img.png", "other.png"}, nil, &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Bitmap for file:img.png with options inJustDecodeBounds, inSampleSize=2\t200x100\tARGB_8888", lines[0])
	assert.Equal(t, "Bitmap for file:other.png with options inJustDecodeBounds, inSampleSize=2\t32x16\tARGB_8888", lines[1])
}

func TestCmdDescribe_Stdin(t *testing.T) {
	path := writeConfig(t)

	var out bytes.Buffer
	err := cmdDescribe([]string{"--config", path, "--format", "rgb_565", "-"}, bytes.NewReader(pngFile(t, 12, 8)), &out)
	require.NoError(t, err)
	assert.Equal(t, "Bitmap\t12x8\tRGB_565\timage/png\n", out.String())
}

func TestCmdDescribe_StdinFile(t *testing.T) {
	path := writeConfig(t)
	img := filepath.Join(t.TempDir(), "piped.png")
	require.NoError(t, os.WriteFile(img, pngFile(t, 7, 9), 0644))

	f, err := os.Open(img)
	require.NoError(t, err)
	defer f.Close()

	var out bytes.Buffer
	require.NoError(t, cmdDescribe([]string{"--config", path, "-"}, f, &out))
	assert.Equal(t, "Bitmap\t7x9\tARGB_8888\timage/png\n", out.String())
}

func TestCmdDescribe_NoArgs(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, cmdDescribe(nil, nil, &out))
}

func TestSniffFile(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "img.png")
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(img, pngFile(t, 3, 5), 0644))
	require.NoError(t, os.WriteFile(txt, []byte("just some plain text in a file"), 0644))

	var out bytes.Buffer
	s := sniff.NewImageSniffer()
	require.NoError(t, sniffFile(s, img, &out))
	require.NoError(t, sniffFile(s, txt, &out))
	assert.Error(t, sniffFile(s, filepath.Join(dir, "missing.png"), &out))

	assert.Equal(t, img+"\tpng\t3x5\n"+txt+"\tunrecognized\n", out.String())
}

func TestCmdHints(t *testing.T) {
	path := writeConfig(t)

	var out bytes.Buffer
	require.NoError(t, cmdHints([]string{"--config", path}, &out))
	assert.Equal(t, "file:img.png\t400x200\nresource:drawable/seven\t9x9\n(2 hints)\n", out.String())
}

func TestCmdInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "fakebitmap.yaml")

	var out bytes.Buffer
	require.NoError(t, cmdInit([]string{path}, &out))
	assert.Contains(t, out.String(), path)

	_, err := os.Stat(path)
	require.NoError(t, err)

	// Refuses to overwrite
	assert.Error(t, cmdInit([]string{path}, &out))
}
