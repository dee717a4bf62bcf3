package parser

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"scriptbox/internal/ast"
	"scriptbox/internal/lexer"

	"github.com/gkampitakis/go-snaps/snaps"
)

// dumpTree renders node's shape as indented text, so a snapshot catches any
// incidental precedence/associativity regression in the tree shape a
// representative program parses to.
func dumpTree(node ast.Node, indent int, sb *strings.Builder) {
	pad := strings.Repeat("  ", indent)
	switch n := node.(type) {
	case *ast.Noop:
		fmt.Fprintf(sb, "%sNoop\n", pad)
	case *ast.Lit:
		fmt.Fprintf(sb, "%sLit(%#v)\n", pad, n.Payload)
	case *ast.Ident:
		fmt.Fprintf(sb, "%sIdent(%s decl=%v)\n", pad, n.Name, n.IsDecl)
	case *ast.Binary:
		fmt.Fprintf(sb, "%sBinary(%s)\n", pad, n.Op)
		dumpTree(n.L, indent+1, sb)
		dumpTree(n.R, indent+1, sb)
	case *ast.Unary:
		fmt.Fprintf(sb, "%sUnary(%d)\n", pad, n.Op)
		dumpTree(n.X, indent+1, sb)
	case *ast.Statements:
		fmt.Fprintf(sb, "%sStatements\n", pad)
		for _, s := range n.Stmts {
			dumpTree(s, indent+1, sb)
		}
	case *ast.Scope:
		fmt.Fprintf(sb, "%sScope\n", pad)
		dumpTree(n.Body, indent+1, sb)
	case *ast.If:
		fmt.Fprintf(sb, "%sIf\n", pad)
		dumpTree(n.Cond, indent+1, sb)
		dumpTree(n.Then, indent+1, sb)
		if n.Else != nil {
			dumpTree(n.Else, indent+1, sb)
		}
	case *ast.While:
		fmt.Fprintf(sb, "%sWhile\n", pad)
		dumpTree(n.Cond, indent+1, sb)
		dumpTree(n.Body, indent+1, sb)
	case *ast.For:
		fmt.Fprintf(sb, "%sFor\n", pad)
		dumpTree(n.Init, indent+1, sb)
		dumpTree(n.Cond, indent+1, sb)
		dumpTree(n.Step, indent+1, sb)
		dumpTree(n.Body, indent+1, sb)
	case *ast.VectorDecl:
		fmt.Fprintf(sb, "%sVectorDecl\n", pad)
		for _, e := range n.Elems {
			dumpTree(e, indent+1, sb)
		}
	case *ast.VectorAccess:
		fmt.Fprintf(sb, "%sVectorAccess\n", pad)
		dumpTree(n.Container, indent+1, sb)
		dumpTree(n.Index, indent+1, sb)
	case *ast.GlobalCall:
		fmt.Fprintf(sb, "%sGlobalCall(%s)\n", pad, n.Name)
		for _, a := range n.Args {
			dumpTree(a, indent+1, sb)
		}
	default:
		fmt.Fprintf(sb, "%s%T\n", pad, node)
	}
}

func snapshotParse(t *testing.T, src string) string {
	t.Helper()
	p := New(lexer.New(src))
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var sb strings.Builder
	dumpTree(prog.Root, 0, &sb)
	return sb.String()
}

func TestSnapshotArithmeticPrecedence(t *testing.T) {
	snaps.MatchSnapshot(t, snapshotParse(t, "var c = a + b * 2 - c / 2"))
}

func TestSnapshotCompoundAssignDesugaring(t *testing.T) {
	snaps.MatchSnapshot(t, snapshotParse(t, "s += \"lo \""))
}

func TestSnapshotIfElseIfChain(t *testing.T) {
	snaps.MatchSnapshot(t, snapshotParse(t, "if (a<0) a=10 else if (a>0) a=10 else a=5"))
}

func TestSnapshotNestedForLoop(t *testing.T) {
	snaps.MatchSnapshot(t, snapshotParse(t, "for (var a=0; a<c; ++a) { for (var b=0; b<c; ++b) count += 1 }"))
}

func TestSnapshotVectorLiteralNestedIndexing(t *testing.T) {
	snaps.MatchSnapshot(t, snapshotParse(t, `v = ["Hey!", [true, 2], [1.3]]
a = v[1][0]`))
}

// TestMain lets go-snaps prune obsolete snapshot entries after the package's
// tests finish, the standard go-snaps harness shape.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
