// Package diag implements the two error kinds described by the system's
// error-handling design: input errors, which are reported to the diagnostic
// stream and terminate the process, and internal contract violations, which
// are assertions indicating programmer error.
package diag

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Sentinel input-error kinds. Callers wrap these with fmt.Errorf("...: %w",
// ErrX) so errors.Is can classify a failure without string matching.
var (
	// ErrFileOpen indicates a TS or query-batch file could not be opened.
	ErrFileOpen = errors.New("file open failure")
	// ErrMalformedToken indicates a lexical token did not match any grammar
	// production.
	ErrMalformedToken = errors.New("malformed token")
	// ErrUnexpectedToken indicates a token appeared where the grammar did
	// not permit it.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrMismatchedParen indicates a '(' without a matching ')'.
	ErrMismatchedParen = errors.New("mismatched parenthesis")
)

// ContractViolation indicates an internal invariant was broken: programmer
// error, never caused by malformed input. Recover it only at a binary's top
// level; never swallow it mid-query.
type ContractViolation struct {
	Msg string
}

func (c ContractViolation) Error() string { return "contract violation: " + c.Msg }

// Violate panics with a ContractViolation carrying msg.
func Violate(msg string) {
	panic(ContractViolation{Msg: msg})
}

// Violatef is Violate with fmt.Sprintf-style formatting.
func Violatef(format string, args ...interface{}) {
	panic(ContractViolation{Msg: fmt.Sprintf(format, args...)})
}

var fatalPrefix = color.New(color.FgRed, color.Bold).SprintFunc()

// Fatal writes a red-prefixed "fatal error:" message for err to stderr and
// terminates the process with a non-zero status. It is the terminal response
// to an input error (file-open failure, parse failure); it must never be
// called for a ContractViolation, which should instead be allowed to panic
// and be recovered (with a stack trace) only at the top of main.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s %s\n", fatalPrefix("fatal error:"), err.Error())
	os.Exit(1)
}
