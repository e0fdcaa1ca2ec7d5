package main

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/Faultbox/fakebitmap/internal/config"
	"github.com/Faultbox/fakebitmap/pkg/bitmap"
	"github.com/Faultbox/fakebitmap/pkg/decoder"
)

// newDecoder builds a decoder from cfg and preloads its hints.
func newDecoder(cfg *config.Config, log *zap.Logger) (*decoder.Decoder, error) {
	format, err := bitmap.ParseConfig(cfg.Decoder.DefaultFormat)
	if err != nil {
		return nil, err
	}

	d := decoder.New(
		decoder.WithLogger(log),
		decoder.WithResources(decoder.ResourceTable(cfg.Resources)),
		decoder.WithDefaultSize(bitmap.Dimensions{
			Width:  cfg.Decoder.DefaultWidth,
			Height: cfg.Decoder.DefaultHeight,
		}),
		decoder.WithDefaultConfig(format),
	)

	if err := applyHints(d, cfg.Hints); err != nil {
		return nil, err
	}
	log.Debug("decoder ready", zap.Int("hints", d.Hints().Len()))
	return d, nil
}

// applyHints registers configured hints through the test-setup interface.
func applyHints(d *decoder.Decoder, hs []config.HintConfig) error {
	for i, h := range hs {
		switch {
		case h.Key != "":
			d.ProvideDimensionHint(h.Key, h.Width, h.Height)
		case h.File != "":
			d.ProvideDimensionHintForFile(h.File, h.Width, h.Height)
		case h.URI != "":
			u, err := url.Parse(h.URI)
			if err != nil {
				return fmt.Errorf("hint %d: %w", i, err)
			}
			d.ProvideDimensionHintForURI(u, h.Width, h.Height)
		case h.Resource != nil:
			d.ProvideDimensionHintForResource(*h.Resource, h.Width, h.Height)
		default:
			return fmt.Errorf("hint %d: no target", i)
		}
	}
	return nil
}
