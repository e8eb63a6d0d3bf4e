package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/evalscript/evalscript/ambient"
	"github.com/evalscript/evalscript/evaluator"
	"github.com/evalscript/evalscript/lexer"
	"github.com/evalscript/evalscript/parser"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var executeSnippets []string

// runCmd mirrors the root command's own default action: the CLI's
// flags and positional argument work with or without the "run" word.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an evalscript program",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.RunE = runScript

	for _, fs := range []*cobra.Command{rootCmd, runCmd} {
		fs.Flags().StringArrayVarP(&executeSnippets, "execute", "e", nil, "evaluate inline source instead of (or in addition to) a file; repeatable")
	}
}

// runScript implements the driver contract: read the file (stripping a
// shebang line), run every -e snippet first against a single shared
// evaluator and ambient context, then the file, and report a non-zero
// exit via the returned error on any uncaught evaluator fault.
func runScript(_ *cobra.Command, args []string) error {
	ev := evaluator.New(ambient.NewContext())
	ran := false

	for _, src := range executeSnippets {
		ran = true
		if err := runSource(ev, src); err != nil {
			return err
		}
	}

	if len(args) == 1 {
		ran = true
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		if err := runSource(ev, stripShebang(string(content))); err != nil {
			return err
		}
	}

	if !ran {
		// Piped input still works without a file argument: `cat prog.js |
		// evalscript`. An interactive terminal gets the usage error instead
		// of a silently hanging read.
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("provide a source file, -e/--execute <source>, or piped input")
		}
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		return runSource(ev, stripShebang(string(content)))
	}
	return nil
}

func runSource(ev *evaluator.Evaluator, src string) error {
	l := lexer.New(src)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return fmt.Errorf("parse error: %w", errs[0])
	}

	result := ev.Run(prog)
	if result.Kind == evaluator.Throw {
		return fmt.Errorf("uncaught exception: %s", result.Value.String())
	}
	fmt.Println(result.Value.String())
	return nil
}

func stripShebang(src string) string {
	if !strings.HasPrefix(src, "#!") {
		return src
	}
	if idx := strings.IndexByte(src, '\n'); idx >= 0 {
		return src[idx+1:]
	}
	return ""
}
