// Package asmerr defines the diagnostic types shared by every stage of the
// assembler, from source reading through code generation.
package asmerr

import "fmt"

// Kind classifies a Diagnostic so callers (listing, CLI, tests) can filter or
// color them without string matching on the message text.
type Kind int

const (
	KindSyntax Kind = iota
	KindUndefined
	KindRedefined
	KindRange
	KindOperand
	KindInclude
	KindMacro
	KindIO
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindUndefined:
		return "undefined"
	case KindRedefined:
		return "redefined"
	case KindRange:
		return "range"
	case KindOperand:
		return "operand"
	case KindInclude:
		return "include"
	case KindMacro:
		return "macro"
	case KindIO:
		return "io"
	default:
		return "internal"
	}
}

// Diagnostic is a single positioned error or warning. File is the name of the
// innermost source file active when the diagnostic was raised; it may differ
// from the top-level source file inside an include or macro expansion.
type Diagnostic struct {
	Kind    Kind
	File    string
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) Error() string {
	if d.Column > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Column, d.Message)
	}
	return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
}

// New builds a Diagnostic with a formatted message.
func New(kind Kind, file string, line, column int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Kind:    kind,
		File:    file,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}
