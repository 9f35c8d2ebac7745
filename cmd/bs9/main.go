// Command bs9 is the command-line front end for the 6809/6309 two-pass
// cross-assembler: it binds the flags in internal/engine.Options, drives a
// run, and turns any queued STORE directives into BIN or S-record output.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/motoxas/bs09/internal/asmerr"
	"github.com/motoxas/bs09/internal/engine"
	"github.com/motoxas/bs09/internal/isa"
	"github.com/motoxas/bs09/internal/listing"
	"github.com/motoxas/bs09/internal/srec"
)

var (
	flagDebug    bool
	flagDefines  []string
	flagIgnore   bool
	flagPreset   int
	flagMotorola bool
	flagLiNo     bool
	flagOptimize bool
	flagPreproc  bool
	flagQuiet    bool
	flagSkipHex  bool
)

var rootCmd = &cobra.Command{
	Use:          "bs9 [flags] source[.as9]",
	Short:        "Two-pass cross-assembler for the 6809/6309",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runAssemble,
}

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&flagDebug, "debug", "d", false, "write a symbol-table and locked-byte dump to Debug.lst")
	f.StringArrayVarP(&flagDefines, "define", "D", nil, "define a locked symbol: name[=expr] (repeatable)")
	f.BoolVarP(&flagIgnore, "ignore-case", "i", false, "fold symbols case-insensitively")
	f.IntVarP(&flagPreset, "preset", "l", -1, "preset the 64K ROM image to byte N (0-255)")
	f.BoolVarP(&flagMotorola, "motorola", "m", false, "Motorola-style operand syntax: a blank ends the field")
	f.BoolVarP(&flagLiNo, "line-numbers", "n", false, "prefix listing lines with their source line number")
	f.BoolVarP(&flagOptimize, "optimize", "o", false, "enable the peephole optimizer, write basename.opt hints")
	f.BoolVarP(&flagPreproc, "preprocess", "p", false, "write macro-expanded source to basename.pp")
	f.BoolVarP(&flagQuiet, "quiet", "q", false, "suppress the banner and summary")
	f.BoolVarP(&flagSkipHex, "strip-hex", "x", false, "strip leading hex-dump columns before reassembly")
}

// exitCode is set by runAssemble (the error count, or 1 for a usage/IO
// failure) and consulted by main after cobra's Execute returns, since the
// assembler's exit convention — exit code equals error count — does not fit
// cobra's own error-means-exit-1 behavior.
var exitCode int

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func runAssemble(cmd *cobra.Command, args []string) error {
	src := args[0]
	if filepath.Ext(src) == "" {
		src += ".as9"
	}
	base := strings.TrimSuffix(src, filepath.Ext(src))

	colorOn := term.IsTerminal(int(os.Stdout.Fd()))

	if !flagQuiet {
		banner := "Bit Shift Assembler"
		if colorOn {
			banner = aurora.Bold(banner).String()
		}
		fmt.Println(banner)
	}

	lst, err := os.Create(base + ".lst")
	if err != nil {
		return fmt.Errorf("creating listing: %w", err)
	}
	defer lst.Close()

	opt := engine.Options{
		CPU:           isa.CPU6809,
		Optimize:      flagOptimize,
		WithLiNo:      flagLiNo,
		FoldCase:      flagIgnore,
		MotorolaStyle: flagMotorola,
		SkipHex:       flagSkipHex,
		ListWriter:    lst,
	}

	var pp *os.File
	if flagPreproc {
		pp, err = os.Create(base + ".pp")
		if err != nil {
			return fmt.Errorf("creating preprocessed source: %w", err)
		}
		defer pp.Close()
		opt.PreprocessWriter = pp
	}

	var optf *os.File
	if flagOptimize {
		optf, err = os.Create(base + ".opt")
		if err != nil {
			return fmt.Errorf("creating optimizer hints: %w", err)
		}
		defer optf.Close()
		opt.OptHintWriter = optf
	}

	a := engine.New(opt)

	if flagPreset >= 0 {
		if flagPreset > 255 {
			fmt.Fprintf(os.Stderr, "illegal value %d for -l, must be 0-255\n", flagPreset)
			exitCode = 1
			return nil
		}
		a.PresetROM(byte(flagPreset))
	}

	for _, d := range flagDefines {
		name, expr, _ := strings.Cut(d, "=")
		if err := a.DefineSymbol(name, expr); err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitCode = 1
			return nil
		}
	}

	runErr := a.Run(src)

	for _, diag := range a.Diagnostics() {
		printDiagnostic(diag, colorOn)
	}

	if flagDebug {
		if err := writeDebugDump(a); err != nil {
			fmt.Fprintf(os.Stderr, "writing Debug.lst: %v\n", err)
		}
	}

	errCount := len(a.Diagnostics())
	if runErr != nil && errCount == 0 {
		// A structural failure (bad include, I/O error) that never made it
		// into the diagnostic list still has to count against the exit code.
		fmt.Fprintln(os.Stderr, runErr)
		errCount = 1
	}

	if errCount == 0 {
		if err := writeStoreRequests(a); err != nil {
			fmt.Fprintf(os.Stderr, "writing STORE output: %v\n", err)
			errCount++
		}
	}

	if !flagQuiet {
		fmt.Printf("%d error(s)\n", errCount)
	}
	exitCode = errCount
	return nil
}

func printDiagnostic(d asmerr.Diagnostic, colorOn bool) {
	msg := d.Error()
	if colorOn {
		msg = aurora.Red(msg).String()
	}
	fmt.Fprintln(os.Stdout, msg)
}

func writeStoreRequests(a *engine.Assembler) error {
	rom, _ := a.ROM()
	for _, req := range a.StoreRequests() {
		f, err := os.Create(req.Path)
		if err != nil {
			return err
		}
		seg := srec.Segment{
			Addr:     uint32(req.Start),
			Data:     rom[req.Start : req.Start+req.Length],
			ExecAddr: req.Entry,
		}
		if req.SRec {
			err = srec.WriteSRecord(f, seg)
		} else {
			err = srec.WriteRaw(f, seg, req.Entry >= 0)
		}
		closeErr := f.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			return closeErr
		}
	}
	return nil
}

func writeDebugDump(a *engine.Assembler) error {
	f, err := os.Create("Debug.lst")
	if err != nil {
		return err
	}
	defer f.Close()

	syms := a.Symbols().All()
	listing.SortByAddress(syms)
	fmt.Fprintln(f, "--- symbol table ---")
	fmt.Fprint(f, spew.Sdump(syms))

	rom, locked := a.ROM()
	fmt.Fprintln(f, "--- locked byte ranges ---")
	start := -1
	for i := 0; i <= len(locked); i++ {
		inRange := i < len(locked) && locked[i]
		if inRange && start < 0 {
			start = i
		} else if !inRange && start >= 0 {
			fmt.Fprintf(f, "%04X-%04X: % X\n", uint16(start), uint16(i-1), rom[start:i])
			start = -1
		}
	}
	return nil
}
