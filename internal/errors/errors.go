// Package errors formats compiler diagnostics (scan, parse, resolve)
// with source context, line/column information, and a caret pointing
// at the offending column.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/golox/internal/token"
)

// CompilerError is a single compile-time diagnostic with position and
// source context attached.
//
// Where renders as "" at end-of-line contexts, " at end" when the
// offending token is Eof, or " at 'LEXEME'" at a specific token -
// matching the `[line N] Error<where>: <message>` wire format every
// stage (scanner, parser, resolver) reports through. File is carried
// for callers that want it (multi-file tooling) but is not part of
// that wire format, so Format never prints it.
type CompilerError struct {
	Message string
	Where   string
	Source  string
	File    string
	Pos     token.Position
}

// New creates a CompilerError with no token context (Where is empty).
func New(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// AtToken creates a CompilerError whose Where clause is derived from
// tok: " at end" for Eof, otherwise " at 'LEXEME'".
func AtToken(tok token.Token, message, source, file string) *CompilerError {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Type == token.Eof {
		where = " at end"
	}
	return &CompilerError{Pos: tok.Pos, Message: message, Where: where, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error as a header, the offending source line, and
// a caret under the offending column. If color is true, ANSI codes
// highlight the caret and message for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[line %d] Error%s", e.Pos.Line, e.Where)
	sb.WriteString(": ")
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		col := e.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders a batch of errors, one per error with a blank
// line between them.
func FormatErrors(errs []*CompilerError, color bool) string {
	var sb strings.Builder
	for i, e := range errs {
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// RuntimeError is the error the interpreter reports when execution
// fails after a successful compile (wrong operand types, undefined
// name, out-of-bounds index, call on a non-callable, and so on).
// Unlike CompilerError it carries no source context: by the time it
// surfaces, only the offending line is known.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
}

// NewRuntimeError builds a RuntimeError located at tok's line.
func NewRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Message: message, Line: tok.Line}
}
