package bitmap

import (
	"bytes"
	"testing"
)

func TestDimensionsScale(t *testing.T) {
	tests := []struct {
		name       string
		in         Dimensions
		sampleSize int
		want       Dimensions
	}{
		{"no sampling", Dimensions{101, 101}, 1, Dimensions{101, 101}},
		{"zero sample size", Dimensions{40, 20}, 0, Dimensions{40, 20}},
		{"negative sample size", Dimensions{40, 20}, -3, Dimensions{40, 20}},
		{"halve", Dimensions{101, 101}, 2, Dimensions{50, 50}},
		{"clamp to one", Dimensions{1, 1}, 2, Dimensions{1, 1}},
		{"clamp one axis", Dimensions{100, 3}, 4, Dimensions{25, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Scale(tt.sampleSize)
			if got != tt.want {
				t.Errorf("Scale(%d) of %s = %s, want %s", tt.sampleSize, tt.in, got, tt.want)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig("rgb_565")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != ConfigRGB565 {
		t.Errorf("expected RGB_565, got %s", c)
	}

	c, err = ParseConfig("")
	if err != nil || c != ConfigUnspecified {
		t.Errorf("expected unspecified for empty name, got %s, %v", c, err)
	}

	if _, err := ParseConfig("CMYK"); err == nil {
		t.Error("expected error for unknown pixel format")
	}
}

func TestConfigString(t *testing.T) {
	if ConfigARGB8888.String() != "ARGB_8888" {
		t.Errorf("expected ARGB_8888, got %s", ConfigARGB8888)
	}
	if Config(99).String() != "Config(99)" {
		t.Errorf("unexpected name for unknown config: %s", Config(99))
	}
}

func TestBitmapSources(t *testing.T) {
	data := []byte{1, 2, 3}
	b := &Bitmap{Source: BytesSource{Data: data}}

	got, ok := b.CreatedFromBytes()
	if !ok || !bytes.Equal(got, data) {
		t.Errorf("expected bytes source %v, got %v (ok=%v)", data, got, ok)
	}
	if _, ok := b.CreatedFromResID(); ok {
		t.Error("bytes bitmap should not report a resource id")
	}
	if _, ok := b.CreatedFromPath(); ok {
		t.Error("bytes bitmap should not report a path")
	}
	if _, ok := b.CreatedFromStream(); ok {
		t.Error("bytes bitmap should not report a stream")
	}

	b = &Bitmap{Source: ResourceSource{ID: 42}}
	if id, ok := b.CreatedFromResID(); !ok || id != 42 {
		t.Errorf("expected resource id 42, got %d (ok=%v)", id, ok)
	}
}
