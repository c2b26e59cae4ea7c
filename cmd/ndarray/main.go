// Package main provides the ndarray command line tool.
//
// Usage:
//
//	ndarray version
//	ndarray inspect -f arrays.hcl
//	ndarray inspect -f snapshot.cbor
//	ndarray layout -kind packed_increasing -order 2 -extents 3
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/born-ml/ndarray/internal/codec"
	"github.com/born-ml/ndarray/internal/config"
	"github.com/born-ml/ndarray/internal/layout"
)

const version = "v0.1.0-dev"

var errUsage = errors.New("usage error")

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			log.Error().Err(err).Msg("ndarray failed")
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(out, "ndarray %s\n", version)
		return nil
	case "inspect":
		return runInspect(args[1:], out)
	case "layout":
		return runLayout(args[1:], out)
	case "help", "-h", "--help":
		usage(out)
		return nil
	default:
		usage(out)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func usage(out io.Writer) {
	fmt.Fprintf(out, "ndarray %s\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  inspect    Describe an HCL array configuration or a CBOR snapshot")
	fmt.Fprintln(out, "  layout     Print the storage order of a layout")
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func runInspect(args []string, out io.Writer) error {
	fs := newFlagSet("inspect", out)
	path := fs.String("f", "", "HCL configuration or .cbor snapshot")
	verbose := fs.Bool("v", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *path == "" {
		fs.Usage()
		return fmt.Errorf("%w: -f is required", errUsage)
	}
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if filepath.Ext(*path) == ".cbor" {
		return inspectSnapshot(*path, out)
	}
	return inspectConfig(*path, out)
}

func inspectSnapshot(path string, out io.Writer) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	h, err := codec.Describe(b)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(out, "dtype=%s layout=%s order=%d extents=%v size=%d", h.DType, h.Layout, h.Order, h.Extents, h.Size)
	if h.Efficient {
		fmt.Fprint(out, " efficient_shape=true")
	}
	fmt.Fprintln(out)
	return nil
}

func inspectConfig(path string, out io.Writer) error {
	f, err := config.Load(path)
	if err != nil {
		return err
	}
	for i := range f.Arrays {
		d := &f.Arrays[i]
		cfg, err := d.Resolve()
		if err != nil {
			return err
		}
		n, err := d.Size()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s size=%d bytes=%d\n", d.Name, cfg, n, n*cfg.DType().Size())
	}
	return nil
}

func runLayout(args []string, out io.Writer) error {
	fs := newFlagSet("layout", out)
	kindName := fs.String("kind", "dense", "Layout: dense, packed_increasing or packed_decreasing")
	order := fs.Int("order", 2, "Array order")
	extentList := fs.String("extents", "3,3", "Comma separated extents (one value for packed layouts)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	kind, err := layout.ParseKind(*kindName)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *order < 1 {
		return fmt.Errorf("%w: order %d", errUsage, *order)
	}
	extents, err := parseExtents(*extentList)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if err := layout.Shape(extents).Validate(); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	switch {
	case kind.IsPacked() && len(extents) != 1:
		return fmt.Errorf("%w: packed layouts take one extent, got %d", errUsage, len(extents))
	case !kind.IsPacked() && len(extents) != *order:
		return fmt.Errorf("%w: %d extents for order %d", errUsage, len(extents), *order)
	}

	size, err := layout.CheckedSize(kind, *order, extents)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	fmt.Fprintf(out, "%s order=%d extents=%v size=%d\n", kind, *order, extents, size)
	layout.Walk(kind, *order, extents, func(idx []int, off int) bool {
		fmt.Fprintf(out, "%v -> %d\n", idx, off)
		return true
	})
	return nil
}

func parseExtents(s string) ([]int, error) {
	var extents []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("extent %q: %w", field, err)
		}
		extents = append(extents, n)
	}
	return extents, nil
}
