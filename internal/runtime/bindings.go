package runtime

import (
	"scriptbox/internal/scripterr"
	"scriptbox/internal/types"
	"scriptbox/internal/value"
)

// Candidate is one overload of a bound function. For a global function,
// ParamTypes/ByRef describe every call argument and Call receives exactly
// those arguments. For a member function, ParamTypes/ByRef describe only
// the logical (non-instance) arguments, while Call receives the instance
// prepended to them — the caller (Engine.CallMember) is responsible for
// that prepending.
type Candidate struct {
	ParamTypes []types.ID
	ByRef      []bool
	Call       func(args []*value.Value) (*value.Value, error)
}

// OverloadSet is every Candidate sharing one bound name.
type OverloadSet struct {
	Candidates []*Candidate
}

func (o *OverloadSet) add(c *Candidate) { o.Candidates = append(o.Candidates, c) }

// Convertible reports whether a value of type "from" can be converted to
// "to" — used by Resolve's CONVERTIBLE classification.
type Convertible func(from, to types.ID) bool

// Resolve implements the overload resolution algorithm shared by global
// functions, member functions, and type constructors. It returns the
// index into candidates of the best match, or a RuntimeError if none
// qualifies.
func Resolve(candidates []*Candidate, args []*value.Value, convertible Convertible) (int, error) {
	bestIdx := -1
	bestScore := -1

	for i, c := range candidates {
		if len(c.ParamTypes) != len(args) {
			continue
		}
		score := 0
		qualifies := true
		for p, paramID := range c.ParamTypes {
			argID := args[p].TypeID()
			switch {
			case paramID == types.Any:
				// Wildcard: matches any argument type, no score contributed.
			case argID == paramID:
				score++
			case !c.ByRef[p] && convertible(argID, paramID):
				// CONVERTIBLE: contributes no score, but does not disqualify.
			default:
				qualifies = false
			}
			if !qualifies {
				break
			}
		}
		if !qualifies {
			continue
		}
		// Strict >: ties keep the earliest-registered candidate.
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return -1, scripterr.NewRuntimeErrorf("no matching overload for %d argument(s)", len(args))
	}
	return bestIdx, nil
}

// GlobalFunctions is the name → overload-set table for free functions.
type GlobalFunctions struct {
	sets map[string]*OverloadSet
}

func NewGlobalFunctions() *GlobalFunctions {
	return &GlobalFunctions{sets: make(map[string]*OverloadSet)}
}

// Register adds c as an overload of name, creating the OverloadSet the
// first time name is seen.
func (g *GlobalFunctions) Register(name string, c *Candidate) {
	set, ok := g.sets[name]
	if !ok {
		set = &OverloadSet{}
		g.sets[name] = set
	}
	set.add(c)
}

func (g *GlobalFunctions) Lookup(name string) (*OverloadSet, bool) {
	set, ok := g.sets[name]
	return set, ok
}

// ClassBindings is the member-function and member-variable table for one
// bare host type.
type ClassBindings struct {
	Methods map[string]*OverloadSet
	Vars    map[string]func(inst *value.Value) (*value.Value, error)
}

func newClassBindings() *ClassBindings {
	return &ClassBindings{
		Methods: make(map[string]*OverloadSet),
		Vars:    make(map[string]func(inst *value.Value) (*value.Value, error)),
	}
}

// AddMethod registers c as an overload of a member function name.
func (c *ClassBindings) AddMethod(name string, cand *Candidate) {
	set, ok := c.Methods[name]
	if !ok {
		set = &OverloadSet{}
		c.Methods[name] = set
	}
	set.add(cand)
}

// ClassRegistry maps a bare type ID to its ClassBindings.
type ClassRegistry struct {
	byType map[types.ID]*ClassBindings
}

func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{byType: make(map[types.ID]*ClassBindings)}
}

func (r *ClassRegistry) Get(id types.ID) (*ClassBindings, bool) {
	b, ok := r.byType[id]
	return b, ok
}

func (r *ClassRegistry) GetOrCreate(id types.ID) *ClassBindings {
	b, ok := r.byType[id]
	if !ok {
		b = newClassBindings()
		r.byType[id] = b
	}
	return b
}
