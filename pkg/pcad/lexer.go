package pcad

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// PatternLexer tokenizes P-CAD ASCII expressions one line at a time.
// Lines are fragments: lists opened on a line are often closed further
// down the file, so the grammar never insists on balanced parentheses.
var PatternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	// Quoted strings, e.g. "U1"
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},

	// Numbers with an optional unit suffix, e.g. 12.7mm, 500mil, -3.5
	{Name: "Dimension", Pattern: `[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?[A-Za-z]*`},

	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},

	// Anything else up to a delimiter: keywords, True/False, names
	{Name: "Symbol", Pattern: `[^\s()"]+`},
})
