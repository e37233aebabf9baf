package extern

import (
	"math/big"

	"symex/internal/errors"
	"symex/internal/ir"
	"symex/internal/types"
)

// RegisterDefaults installs the external functions named in spec.md §6 and
// supplemented from original_source's CaffeineAssert/CaffeineAssume/
// CaffeineBuiltinResolve, mirroring tools/opt-plugin/builtins/plugin.cpp's
// init-time table registration.
func RegisterDefaults(table *ExternalFunctionTable, policy Policy) {
	table.Register("assume", assume)
	table.Register("assert", assertFn)
	table.Register("resolve", resolveFn(policy))
	table.Register("zero", zeroFn)
	table.Register("min_value", minValueFn)
	table.Register("max_value", maxValueFn)
}

// assume adds cond to the path condition unconditionally (original_source's
// CaffeineAssume: no satisfiability check, just widen the path).
func assume(sink PathSink, args []*ir.Operation) (*ir.Operation, error) {
	errors.RequireStructural(len(args) == 1, errors.ErrArityMismatch, "assume takes exactly one argument")
	sink.AddAssertion(args[0])
	return args[0], nil
}

// assertFn adds Not(cond) to the path condition (original_source's
// CaffeineAssert): the caller's subsequent solver check against the
// widened path condition is how the violation actually surfaces as a
// failure — assert itself only contributes the negated predicate.
func assertFn(sink PathSink, args []*ir.Operation) (*ir.Operation, error) {
	errors.RequireStructural(len(args) == 1, errors.ErrArityMismatch, "assert takes exactly one argument")
	sink.AddAssertion(ir.CreateNot(args[0]))
	return args[0], nil
}

// resolveFn picks among candidate concrete resolutions for a symbolic
// value, forking the context once per candidate the policy accepts
// (original_source's CaffeineBuiltinResolve). args[0] is the symbolic
// value being resolved; args[1:] are the candidates. Each candidate is
// only forked if policy.ShouldExplore approves it (spec.md §6: "Policy:
// decides whether a fork is explored") — a restrictive Policy can prune
// candidates that AllowAll{} would otherwise all explore.
func resolveFn(policy Policy) Callable {
	return func(sink PathSink, args []*ir.Operation) (*ir.Operation, error) {
		errors.RequireStructural(len(args) >= 2, errors.ErrArityMismatch,
			"resolve needs a symbolic value and at least one candidate")
		symbolic, candidates := args[0], args[1:]
		for _, candidate := range candidates {
			if !policy.ShouldExplore(sink.ContextID(), candidate) {
				continue
			}
			sink.Fork(ir.CreateICmp(ir.ICmpEQ, symbolic, candidate))
		}
		return symbolic, nil
	}
}

func zeroFn(_ PathSink, args []*ir.Operation) (*ir.Operation, error) {
	errors.RequireStructural(len(args) == 1, errors.ErrArityMismatch, "zero takes exactly one argument")
	switch t := args[0].Type.(type) {
	case types.IntType:
		return ir.NewConstIntU64(t, 0), nil
	case types.FloatType:
		return ir.NewConstFloat(t, 0), nil
	default:
		return nil, errors.Unsupported()
	}
}

func minValueFn(_ PathSink, args []*ir.Operation) (*ir.Operation, error) {
	errors.RequireStructural(len(args) == 1, errors.ErrArityMismatch, "min_value takes exactly one argument")
	if _, ok := args[0].Type.(types.IntType); !ok {
		return nil, errors.Unsupported()
	}
	return ir.NewConstIntU64(args[0].Type.(types.IntType), 0), nil
}

func maxValueFn(_ PathSink, args []*ir.Operation) (*ir.Operation, error) {
	errors.RequireStructural(len(args) == 1, errors.ErrArityMismatch, "max_value takes exactly one argument")
	t, ok := args[0].Type.(types.IntType)
	if !ok {
		return nil, errors.Unsupported()
	}
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(t.Width)), big.NewInt(1))
	return ir.NewConstInt(t, max), nil
}
