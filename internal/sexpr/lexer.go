package sexpr

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes the printed S-expression wire form of spec.md §6:
// "(add a b)", "(i32 7)", "(const x)", "(icmp.slt a b)", "(undef i32)".
// Grounded on grammar/lexer.go's stateful lexer, shrunk to the handful of
// token classes this flat expression grammar actually needs.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Float", `[-+]?[0-9]+\.[0-9]+([eE][-+]?[0-9]+)?`, nil},
		{"Hex", `0x[0-9a-fA-F]+`, nil},
		{"Integer", `[-+]?[0-9]+`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_.]*`, nil},
		{"Punctuation", `[()]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
