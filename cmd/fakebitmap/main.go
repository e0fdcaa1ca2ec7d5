// fakebitmap shows what the fake decoder would return for a set of images.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Faultbox/fakebitmap/internal/config"
	"github.com/Faultbox/fakebitmap/internal/logger"
	"github.com/Faultbox/fakebitmap/pkg/bitmap"
	"github.com/Faultbox/fakebitmap/pkg/decoder"
	"github.com/Faultbox/fakebitmap/pkg/sniff"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "describe", "d":
		err = cmdDescribe(args, os.Stdin, os.Stdout)
	case "sniff", "s":
		err = cmdSniff(args, os.Stdout)
	case "hints":
		err = cmdHints(args, os.Stdout)
	case "init":
		err = cmdInit(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `fakebitmap - fake image decoder inspector

Usage:
  fakebitmap <command> [options]

Commands:
  describe [--sample-size N] [--bounds] [--format F] <file|->...
                          Show the bitmap the fake decoder returns
  sniff <file>...         Show real header dimensions
  hints                   List configured dimension hints
  init [path]             Write a default config file

Global options:
  --config PATH           Config file (default ./fakebitmap.yaml)
  --debug                 Debug logging
  --default-width N, --default-height N, --default-format F

Examples:
  fakebitmap describe --sample-size 4 res/drawable/icon.png
  cat photo.jpg | fakebitmap describe -
  fakebitmap sniff photo.jpg logo.webp`)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.AddFlagSet(config.FlagSet())
	return fs
}

// setup loads config, initializes logging and builds a decoder.
func setup() (*decoder.Decoder, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	return newDecoder(cfg, logger.Log)
}

func cmdDescribe(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := newFlagSet("describe")
	sampleSize := fs.Int("sample-size", 1, "Down-sampling divisor")
	bounds := fs.Bool("bounds", false, "Decode bounds only")
	format := fs.String("format", "", "Preferred pixel format")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: fakebitmap describe [options] <file|->...")
	}

	preferred, err := bitmap.ParseConfig(*format)
	if err != nil {
		return err
	}

	d, err := setup()
	if err != nil {
		return err
	}

	for _, path := range fs.Args() {
		opts := &bitmap.Options{
			PreferredConfig:  preferred,
			SampleSize:       *sampleSize,
			JustDecodeBounds: *bounds,
		}

		var bm *bitmap.Bitmap
		if path == "-" {
			// Stdin has no name, so its header is sniffed.
			bm, err = d.DecodeStream(stdin, opts)
			if err != nil {
				return fmt.Errorf("decoding stdin: %w", err)
			}
		} else {
			bm = d.DecodeFile(path, opts)
		}

		logger.Debug("described", zap.String("input", path), zap.Stringer("size", bm.Size()))
		fmt.Fprintf(stdout, "%s\t%s\t%s", bm.Description, bm.Size(), bm.Config)
		if opts.OutMimeType != "" {
			fmt.Fprintf(stdout, "\t%s", opts.OutMimeType)
		}
		fmt.Fprintln(stdout)
	}

	hits, misses := d.Hints().Stats()
	logger.Debug("hint lookups", zap.Int("hits", hits), zap.Int("misses", misses))
	return nil
}

func cmdSniff(args []string, stdout io.Writer) error {
	fs := newFlagSet("sniff")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: fakebitmap sniff <file>...")
	}
	if _, err := setup(); err != nil {
		return err
	}

	s := sniff.NewImageSniffer()
	for _, path := range fs.Args() {
		if err := sniffFile(s, path, stdout); err != nil {
			return err
		}
	}
	return nil
}

func sniffFile(s sniff.Sniffer, path string, stdout io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dims, format, ok, err := s.Sniff(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if !ok {
		fmt.Fprintf(stdout, "%s\tunrecognized\n", path)
		return nil
	}
	fmt.Fprintf(stdout, "%s\t%s\t%s\n", path, format, dims)
	return nil
}

func cmdHints(args []string, stdout io.Writer) error {
	fs := newFlagSet("hints")
	if err := fs.Parse(args); err != nil {
		return err
	}
	d, err := setup()
	if err != nil {
		return err
	}

	keys := d.Hints().Keys()
	for _, k := range keys {
		dims, _ := d.Hints().Get(k)
		fmt.Fprintf(stdout, "%s\t%s\n", k, dims)
	}
	fmt.Fprintf(stdout, "(%d hints)\n", len(keys))
	return nil
}

func cmdInit(args []string, stdout io.Writer) error {
	fs := newFlagSet("init")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := config.DefaultPath()
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := config.Default().SaveTo(path); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}
