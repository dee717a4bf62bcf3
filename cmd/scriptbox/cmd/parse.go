package cmd

import (
	"fmt"
	"io"
	"os"

	"scriptbox/internal/ast"
	"scriptbox/pkg/script"

	"github.com/spf13/cobra"
)

var parseExpression bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a script and print its AST",
	Long: `Parse script source and display the Abstract Syntax Tree.

If no file is provided, reads from stdin. Use -e to parse a single
expression from the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression from the command line")
}

func runParse(_ *cobra.Command, args []string) error {
	var input string

	switch {
	case parseExpression:
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input = args[0]
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	en := script.New()
	prog, err := en.Parse(input)
	if err != nil {
		return reportScriptError("<parse>", err)
	}

	fmt.Println("Abstract Syntax Tree:")
	fmt.Println("=====================")
	dumpNode(prog.Root, 0)
	return nil
}

// dumpNode prints node's shape, recursing into its children. The switch
// covers every internal/ast node kind directly rather than relying on a
// generic String() method.
func dumpNode(node ast.Node, indent int) {
	pad := func(n int) string {
		s := ""
		for i := 0; i < n; i++ {
			s += "  "
		}
		return s
	}
	p := pad(indent)

	switch n := node.(type) {
	case *ast.Noop:
		fmt.Printf("%sNoop\n", p)
	case *ast.Lit:
		fmt.Printf("%sLit: %#v\n", p, n.Payload)
	case *ast.Ident:
		fmt.Printf("%sIdent: %s (decl=%v)\n", p, n.Name, n.IsDecl)
	case *ast.Binary:
		fmt.Printf("%sBinary (%s)\n", p, n.Op)
		dumpNode(n.L, indent+1)
		dumpNode(n.R, indent+1)
	case *ast.Unary:
		fmt.Printf("%sUnary (op=%d)\n", p, n.Op)
		dumpNode(n.X, indent+1)
	case *ast.Statements:
		fmt.Printf("%sStatements (%d)\n", p, len(n.Stmts))
		for _, s := range n.Stmts {
			dumpNode(s, indent+1)
		}
	case *ast.Scope:
		fmt.Printf("%sScope\n", p)
		dumpNode(n.Body, indent+1)
	case *ast.If:
		fmt.Printf("%sIf\n", p)
		fmt.Printf("%s  Cond:\n", p)
		dumpNode(n.Cond, indent+2)
		fmt.Printf("%s  Then:\n", p)
		dumpNode(n.Then, indent+2)
		if n.Else != nil {
			fmt.Printf("%s  Else:\n", p)
			dumpNode(n.Else, indent+2)
		}
	case *ast.While:
		fmt.Printf("%sWhile\n", p)
		dumpNode(n.Cond, indent+1)
		dumpNode(n.Body, indent+1)
	case *ast.For:
		fmt.Printf("%sFor\n", p)
		dumpNode(n.Init, indent+1)
		dumpNode(n.Cond, indent+1)
		dumpNode(n.Step, indent+1)
		dumpNode(n.Body, indent+1)
	case *ast.VectorDecl:
		fmt.Printf("%sVectorDecl (%d elems)\n", p, len(n.Elems))
		for _, e := range n.Elems {
			dumpNode(e, indent+1)
		}
	case *ast.VectorAccess:
		fmt.Printf("%sVectorAccess\n", p)
		dumpNode(n.Container, indent+1)
		dumpNode(n.Index, indent+1)
	case *ast.GlobalCall:
		fmt.Printf("%sGlobalCall: %s (%d args)\n", p, n.Name, len(n.Args))
		for _, a := range n.Args {
			dumpNode(a, indent+1)
		}
	case *ast.MemberCall:
		fmt.Printf("%sMemberCall: %s (%d args)\n", p, n.Name, len(n.Args))
		dumpNode(n.Inst, indent+1)
		for _, a := range n.Args {
			dumpNode(a, indent+1)
		}
	case *ast.MemberVar:
		fmt.Printf("%sMemberVar: %s\n", p, n.Name)
		dumpNode(n.Inst, indent+1)
	default:
		fmt.Printf("%s%T\n", p, node)
	}
}
