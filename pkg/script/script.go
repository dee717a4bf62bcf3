// Package script is the embedding façade a host program imports: it wraps
// internal/runtime.Engine, internal/parser, and internal/builtins behind a
// small, reflection-friendly API.
package script

import (
	"context"
	"io"
	"reflect"

	"scriptbox/internal/ast"
	"scriptbox/internal/builtins"
	"scriptbox/internal/lexer"
	"scriptbox/internal/parser"
	"scriptbox/internal/runtime"
	"scriptbox/internal/scripterr"
	"scriptbox/internal/types"
	"scriptbox/internal/value"
)

// Engine is the public handle a host holds: one type registry, one runtime
// engine, and the registration state built up on top of it.
type Engine struct {
	rt *runtime.Engine
}

// Option configures an Engine at construction time.
type Option func(*config)

type config struct {
	output        io.Writer
	maxStackDepth int
	stdlib        bool
}

// WithOutput redirects the destination of the script's print/println
// globals at construction time (see also (*Engine).SetOutput, for
// redirecting it afterward).
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithMaxStackDepth bounds nested-scope depth; 0 (the default) means
// unlimited.
func WithMaxStackDepth(n int) Option {
	return func(c *config) { c.maxStackDepth = n }
}

// WithStdlib controls whether internal/builtins' default numeric, string,
// vector, and assert/math/print bindings are installed. Defaults to true;
// pass WithStdlib(false) to start from a bare engine and register every
// operator and global by hand.
func WithStdlib(enabled bool) Option {
	return func(c *config) { c.stdlib = enabled }
}

// New creates an Engine with a fresh type registry, applying opts.
func New(opts ...Option) *Engine {
	c := &config{stdlib: true}
	for _, opt := range opts {
		opt(c)
	}

	rt := runtime.New(types.NewRegistry())
	if c.output != nil {
		rt.SetOutput(c.output)
	}
	if c.maxStackDepth > 0 {
		rt.SetMaxStackDepth(c.maxStackDepth)
	}
	if c.stdlib {
		builtins.InstallDefaults(rt)
	}
	return &Engine{rt: rt}
}

// SetOutput redirects the destination of the script's print/println globals.
func (en *Engine) SetOutput(w io.Writer) { en.rt.SetOutput(w) }

// Runtime exposes the underlying runtime.Engine for callers that need the
// lower-level registration API directly (e.g. installing a Candidate with
// an explicit by-ref parameter, which RegisterFunc's reflection-based
// marshaling does not support).
func (en *Engine) Runtime() *runtime.Engine { return en.rt }

// Result carries a script run's outcome: the final expression's value and
// whether evaluation completed without error.
type Result struct {
	Value   value.Value
	Success bool
}

// Parse compiles src into an AST without evaluating it.
func (en *Engine) Parse(src string) (*ast.Program, error) {
	return parser.New(lexer.New(src)).Parse()
}

// Eval parses and evaluates src in one step.
func (en *Engine) Eval(ctx context.Context, src string) (Result, error) {
	prog, err := en.Parse(src)
	if err != nil {
		return Result{}, err
	}
	return en.EvalProgram(ctx, prog)
}

// EvalProgram evaluates a previously-parsed program. ctx is checked between
// top-level statements only: this engine's evaluator is synchronous and
// single-threaded, so mid-expression cancellation is not observed.
func (en *Engine) EvalProgram(ctx context.Context, p *ast.Program) (Result, error) {
	v, err := en.rt.EvalProgram(ctx, p)
	if err != nil {
		return Result{Success: false}, err
	}
	return Result{Value: *v, Success: true}, nil
}

// Var fetches a top-level variable by name after a script has run.
func (en *Engine) Var(name string) (value.Value, bool) {
	v, ok := en.rt.Lookup(name)
	if !ok {
		return value.Value{}, false
	}
	return *v, true
}

// As extracts a T from v, the generic host-side counterpart to Var,
// resolving references and dereferencing borrows the same way value.Cast
// does. Returns a *scripterr.BadCastError if v does not hold a T.
func As[T any](v value.Value) (T, error) {
	t, ok := value.Cast[T](&v)
	if !ok {
		var zero T
		wantType := "<nil>"
		if rt := reflect.TypeOf(zero); rt != nil {
			wantType = rt.String()
		}
		return zero, &scripterr.BadCastError{From: "<boxed value>", To: wantType}
	}
	return t, nil
}
