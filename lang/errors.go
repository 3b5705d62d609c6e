// Package lang implements the clj interpreter: tokenizer, parser, printer,
// environment, evaluator, core library, and session/namespace model for a
// small Lisp interpreter over a Clojure-subset surface syntax.
package lang

import (
	"fmt"
	"log/slog"
	"strings"
)

// ErrorKind distinguishes the four error kinds of the language: a malformed
// token, a malformed form, a runtime evaluation failure, or a host-interop
// conversion failure. RecurSignal is deliberately not a member of this
// enum — it is not an error, see recur.go.
type ErrorKind int

const (
	// KindTokenizerError is raised for unterminated strings and malformed
	// numbers.
	KindTokenizerError ErrorKind = iota
	// KindParserError is raised for unmatched delimiters, odd-length maps,
	// and unexpected tokens.
	KindParserError
	// KindEvaluationError is raised for all runtime failures: wrong arity,
	// wrong type, division by zero, unknown symbol, bad special-form shape,
	// recur outside loop/fn, and so on.
	KindEvaluationError
	// KindConversionError is raised only at the host-interop boundary.
	KindConversionError
)

func (k ErrorKind) String() string {
	switch k {
	case KindTokenizerError:
		return "TokenizerError"
	case KindParserError:
		return "ParserError"
	case KindEvaluationError:
		return "EvaluationError"
	case KindConversionError:
		return "ConversionError"
	default:
		return "Error"
	}
}

// Error is the one error type used across the interpreter. It carries a
// Kind, a message, an optional wrapped cause, and structured logging
// attributes, so every error raised here can be passed directly to slog as
// an argument (it implements slog.LogValuer) without a separate format
// call at the call site.
type Error struct {
	kind  ErrorKind
	msg   string
	err   error
	attrs []slog.Attr

	// Position, set only for tokenizer/parser errors.
	pos *Position
	// Token, set only for parser errors, when available.
	tok *Token

	// Form, Env, and Value are the "auxiliary context record" for
	// evaluation errors (spec.md §7); any may be nil.
	form *Value
	env  *Env
	val  *Value
}

// NewError creates a new Error of the given kind with a message.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Errorf creates a new Error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
//
//   1. "<msg>: <err>" // base and wrapped error both set
//   2. "<msg>"        // wrapped error is nil
//   3. "<err>"        // base error message is empty
//   4. ""             // no fields are set
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Kind returns the error's kind.
func (e *Error) Kind() ErrorKind { return e.kind }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.pos != nil {
		attrs = append(attrs, slog.String("pos", e.pos.String()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err as its cause.
func (e *Error) Wrap(err error) *Error {
	n := *e
	n.err = err

	return &n
}

// With returns a copy of e with additional structured logging attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	n := *e
	n.attrs = append(append([]slog.Attr{}, e.attrs...), attrs...)

	return &n
}

// AtPosition returns a copy of e carrying the given source position.
func (e *Error) AtPosition(pos Position) *Error {
	n := *e
	n.pos = &pos

	return &n
}

// WithToken returns a copy of e carrying the offending token.
func (e *Error) WithToken(tok Token) *Error {
	n := *e
	n.tok = &tok

	if n.pos == nil {
		n.pos = &tok.Start
	}

	return &n
}

// WithForm returns a copy of e carrying the offending form for diagnostics.
func (e *Error) WithForm(form Value) *Error {
	n := *e
	n.form = &form

	return &n
}

// WithEnv returns a copy of e carrying the environment active when the
// error occurred, for diagnostics.
func (e *Error) WithEnv(env *Env) *Error {
	n := *e
	n.env = env

	return &n
}

// WithValue returns a copy of e carrying the offending runtime value.
func (e *Error) WithValue(v Value) *Error {
	n := *e
	n.val = &v

	return &n
}

// Position describes a location in source text.
type Position struct {
	Line   int
	Col    int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// tokenizerError builds a KindTokenizerError Error.
func tokenizerError(pos Position, format string, args ...any) *Error {
	return Errorf(KindTokenizerError, format, args...).AtPosition(pos)
}

// parserError builds a KindParserError Error.
func parserError(pos Position, format string, args ...any) *Error {
	return Errorf(KindParserError, format, args...).AtPosition(pos)
}

// evalError builds a KindEvaluationError Error.
func evalError(format string, args ...any) *Error {
	return Errorf(KindEvaluationError, format, args...)
}

// conversionError builds a KindConversionError Error.
func conversionError(format string, args ...any) *Error {
	return Errorf(KindConversionError, format, args...)
}
