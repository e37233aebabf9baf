package sexpr

import "symex/internal/ir"

// Write renders op in the printed S-expression wire form (spec.md §6),
// identical to ir.Print — exposed here so callers that only import sexpr
// (the CLI, the REPL) don't also need to import internal/ir directly for
// output formatting.
func Write(op *ir.Operation) string { return ir.Print(op) }
