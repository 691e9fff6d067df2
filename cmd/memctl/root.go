package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bootmem/memkit/internal/physmem"
	"github.com/bootmem/memkit/memblock"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	bottomUp  bool
	spaceSpec string
)

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Replay and inspect early-boot physical-memory ledgers",
	Long: `memctl drives the memkit physical-memory ledger from the command line.
It replays YAML scenarios of add/reserve/remove/free operations against a
fresh ledger, optionally backed by a simulated physical address space, and
prints the resulting region tables.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug tracing of ledger internals")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&bottomUp, "bottom-up", false, "Search free space lowest-address-first")
	rootCmd.PersistentFlags().
		StringVar(&spaceSpec, "space", "", "Simulated physical space as BASE:SIZE (e.g. 0x100000:16MB)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLedger builds a ledger from the global flags. The returned cleanup
// releases the simulated space, if one was requested.
func newLedger() (*memblock.Ledger, func(), error) {
	opts := []memblock.Option{memblock.WithBottomUp(bottomUp)}
	cleanup := func() {}

	if verbose {
		log := logrus.New()
		log.SetLevel(logrus.DebugLevel)
		opts = append(opts, memblock.WithLogger(log))
	}
	if spaceSpec != "" {
		base, size, err := parseSpaceSpec(spaceSpec)
		if err != nil {
			return nil, nil, err
		}
		sp, err := physmem.New(base, size)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, memblock.WithSpace(sp))
		cleanup = func() { _ = sp.Release() }
	}
	return memblock.New(opts...), cleanup, nil
}

func parseSpaceSpec(spec string) (memblock.PhysAddr, memblock.Size, error) {
	basePart, sizePart, ok := strings.Cut(spec, ":")
	if !ok {
		return 0, 0, fmt.Errorf("--space must be BASE:SIZE, got %q", spec)
	}
	base, err := parseAddr(basePart)
	if err != nil {
		return 0, 0, fmt.Errorf("--space base: %w", err)
	}
	size, err := parseSize(sizePart)
	if err != nil {
		return 0, 0, fmt.Errorf("--space size: %w", err)
	}
	return base, size, nil
}

// parseAddr accepts decimal or 0x-prefixed hex addresses.
func parseAddr(s string) (memblock.PhysAddr, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return memblock.PhysAddr(v), nil
}

// parseSize accepts human-readable sizes ("64KB", "1.5GB") and plain or
// 0x-prefixed numbers.
func parseSize(s string) (memblock.Size, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return memblock.Size(v), nil
	}
	var ds datasize.ByteSize
	if err := ds.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("bad size %q: %w", s, err)
	}
	return memblock.Size(ds.Bytes()), nil
}

// printInfo prints an info message unless in quiet mode.
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
