// Command dis8086 disassembles an 8086 instruction stream read from a flat
// binary file, printing NASM-style assembly with interleaved labels and
// register-simulator trace lines (spec.md §6).
package main

import (
	"errors"
	"os"

	"github.com/retrodis/dis8086/buildinfo"
	"github.com/retrodis/dis8086/diag"
	"github.com/retrodis/dis8086/disasm"
	"github.com/retrodis/dis8086/log"
	"github.com/retrodis/dis8086/x86"
	"github.com/spf13/cobra"
)

// version, commit, and date are overridden at build time via -ldflags.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "dis8086 <file>",
		Short:   "Disassemble an 8086 binary instruction stream",
		Args:    cobra.ExactArgs(1),
		Version: buildinfo.Version(version, commit, date),
		RunE:    run,
		// The diag logger has already written the one diagnostic line
		// spec.md §7 calls for by the time RunE returns an error; cobra's
		// own usage/error printing would duplicate or clutter it.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run opens the input file and drives the decode/emit pipeline. Decode-time
// anomalies are logged at DebugLevel and stay invisible by default, per
// spec.md §6's "no flags" design; the one failure that can end the run is
// reported as a single "error: <message>" line on stderr (spec.md §7), and
// the function returns a non-nil error only to make cobra exit non-zero —
// the diagnostic text itself is already written by then.
func run(cmd *cobra.Command, args []string) error {
	logger := log.New()
	diagLogger := log.NewWithConfig(log.Config{
		Handler: diag.NewHandler(os.Stderr),
	})

	file, err := os.Open(args[0])
	if err != nil {
		diagLogger.Error(err.Error())
		return err
	}
	defer logger.Closer(file, "closing input file")

	runErr := disasm.Run(file, os.Stdout, logger)
	if runErr != nil {
		diagLogger.Error(describeRunErr(runErr))
		return runErr
	}
	return nil
}

// describeRunErr renders runErr the way spec.md §7 expects: the bare
// underlying message, without the pipeline's own wrapping context.
func describeRunErr(runErr error) string {
	var undecodable *x86.UndecodableOpcodeError
	if errors.As(runErr, &undecodable) {
		return undecodable.Error()
	}
	if errors.Is(runErr, x86.ErrTruncated) {
		return x86.ErrTruncated.Error()
	}
	return runErr.Error()
}
