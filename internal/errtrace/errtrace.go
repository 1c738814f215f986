// Package errtrace implements Osyris's single error vehicle: a
// carried message plus a stack of call frames, accumulated as a
// failure propagates out through nested Call expressions.
package errtrace

import (
	"errors"
	"strings"

	"github.com/osyris-lang/osyris/internal/ast"
	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/object"
)

// Frame records one Call expression a failure propagated through: the
// source location it was parsed at, and the textual form of its
// callee (spec §6's "textual form of expressions").
type Frame struct {
	Location ast.Location
	Callee   string
}

// StackTrace is the sole error type that crosses evaluator
// boundaries. Message is either a String value's text (the common
// case) or the Inspect text of whatever value the user raised via
// `error`; Trace accumulates outermost-last as the error unwinds.
type StackTrace struct {
	// Message is the human-readable rendering of Payload, used by
	// Error() and by the CLI's diagnostic output.
	Message string
	// Payload is the raw value `error` was called with (or a
	// synthetic String for builtin-raised errors), preserved so
	// `try`'s catch handler receives the original value rather than
	// always its string rendering.
	Payload object.Value
	Trace   []Frame
}

// New starts a StackTrace carrying payload, with no frames yet.
func New(payload object.Value) *StackTrace {
	return &StackTrace{Message: object.Render(payload).String(), Payload: payload}
}

// Wrap lifts a plain Go error (a type or arity error raised by a
// builtin, say) into a StackTrace with no frames yet. If err is
// already a *StackTrace it is returned unchanged, so repeated
// wrapping during unwinding doesn't nest traces.
func Wrap(err error) *StackTrace {
	if err == nil {
		return nil
	}
	var st *StackTrace
	if errors.As(err, &st) {
		return st
	}
	msg := err.Error()
	return &StackTrace{Message: msg, Payload: object.String{Value: bstring.FromString(msg)}}
}

// Push records that the failure propagated out through a Call at loc
// whose callee rendered as calleeText, per spec §4.3 ("On failure,
// push (loc, textual form of callee) onto the stack trace before
// returning the error").
func (st *StackTrace) Push(loc ast.Location, calleeText string) *StackTrace {
	st.Trace = append(st.Trace, Frame{Location: loc, Callee: calleeText})
	return st
}

// Error renders the carried message followed by one line per frame,
// outermost last, matching spec §6's stack-trace rendering.
func (st *StackTrace) Error() string {
	var out strings.Builder
	out.WriteString(st.Message)
	for _, f := range st.Trace {
		out.WriteByte('\n')
		out.WriteString("  ")
		out.WriteString(f.Location.String())
		out.WriteString(": ")
		out.WriteString(f.Callee)
	}
	return out.String()
}
