package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"scriptbox/internal/scripterr"
	"scriptbox/pkg/script"

	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file or expression",
	Long: `Execute a script from a file or an inline expression.

Examples:
  # Run a script file
  scriptbox run script.sb

  # Evaluate an inline expression
  scriptbox run -e "println(1 + 2 * 3)"

  # Run with an AST dump (for debugging)
  scriptbox run --dump-ast script.sb`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := scriptInput(evalExpr, args)
	if err != nil {
		return err
	}

	en := script.New(script.WithMaxStackDepth(cfg.MaxStackDepth), script.WithStdlib(cfg.Stdlib))

	prog, err := en.Parse(input)
	if err != nil {
		return reportScriptError(filename, err)
	}

	if dumpAST {
		fmt.Println("AST:")
		dumpNode(prog.Root, 0)
		fmt.Println()
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[running %s]\n", filename)
	}

	if _, err := en.EvalProgram(context.Background(), prog); err != nil {
		return reportScriptError(filename, err)
	}
	return nil
}

// scriptInput resolves the script source from -e or a file argument.
func scriptInput(evalExpr string, args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

// reportScriptError prefixes every error with filename; a
// scripterr.AssertionFailure is additionally reported as "assertion
// failed: <msg>", while ParseError and RuntimeError keep their own text.
func reportScriptError(filename string, err error) error {
	var parseErr *scripterr.ParseError
	var assertErr *scripterr.AssertionFailure
	switch {
	case errors.As(err, &parseErr):
		return fmt.Errorf("%s: %w", filename, parseErr)
	case errors.As(err, &assertErr):
		return fmt.Errorf("%s: assertion failed: %s", filename, assertErr.Msg)
	default:
		return fmt.Errorf("%s: %w", filename, err)
	}
}
