package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad      Phase = "load"      // IR decoding
	PhaseValidate  Phase = "validate"  // IR validation
	PhaseGenerate  Phase = "generate"  // source emission
	PhaseLayout    Phase = "layout"    // value type layout proofs
	PhaseQueue     Phase = "queue"     // cross-thread queueing
	PhasePost      Phase = "post"      // event loop posting
	PhaseConnect   Phase = "connect"   // signal connections
	PhaseConstruct Phase = "construct" // object construction
	PhaseRegister  Phase = "register"  // type registration
	PhaseWrite     Phase = "write"     // output files
)

// Kind categorizes the error
type Kind string

const (
	KindDuplicateName        Kind = "duplicate_name"
	KindConflictingModifiers Kind = "conflicting_modifiers"
	KindMissingNotify        Kind = "missing_notify"
	KindInvalidInput         Kind = "invalid_input"
	KindNotFound             Kind = "not_found"
	KindObjectDestroyed      Kind = "object_destroyed"
	KindPostFailed           Kind = "post_failed"
	KindLoopStopped          Kind = "loop_stopped"
	KindQueueFull            Kind = "queue_full"
	KindLayoutMismatch       Kind = "layout_mismatch"
	KindTypeMismatch         Kind = "type_mismatch"
	KindRegistration         Kind = "registration"
	KindIO                   Kind = "io"
)

// Sentinels for errors.Is matching. Matching compares Phase and Kind only.
var (
	ErrObjectDestroyed = &Error{Phase: PhaseQueue, Kind: KindObjectDestroyed}
	ErrPostFailed      = &Error{Phase: PhasePost, Kind: KindPostFailed}
	ErrLoopStopped     = &Error{Phase: PhasePost, Kind: KindLoopStopped}
	ErrQueueFull       = &Error{Phase: PhasePost, Kind: KindQueueFull}
)

// Error is the structured error type used throughout qtbind
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Object string
	Member string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Object != "" {
		b.WriteString(" at ")
		b.WriteString(e.Object)
		if e.Member != "" {
			b.WriteString("::")
			b.WriteString(e.Member)
		}
	} else if e.Member != "" {
		b.WriteString(" at ")
		b.WriteString(e.Member)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Object sets the object the error refers to
func (b *Builder) Object(name string) *Builder {
	b.err.Object = name
	return b
}

// Member sets the property, signal or method the error refers to
func (b *Builder) Member(name string) *Builder {
	b.err.Member = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// DuplicateName creates an error for a name declared twice within one scope
func DuplicateName(object, what, name string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindDuplicateName,
		Object: object,
		Member: name,
		Detail: fmt.Sprintf("%s %q declared more than once", what, name),
	}
}

// ConflictingModifiers creates an error for incompatible declaration modifiers
func ConflictingModifiers(object, member, detail string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindConflictingModifiers,
		Object: object,
		Member: member,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// ObjectDestroyed creates the recoverable error returned when work is queued
// onto an object whose guarded pointer has been invalidated
func ObjectDestroyed(object string) *Error {
	return &Error{
		Phase:  PhaseQueue,
		Kind:   KindObjectDestroyed,
		Object: object,
		Detail: "cannot queue function as object has been destroyed",
	}
}

// PostFailed creates the fatal error raised when the event loop rejects a task
func PostFailed(object string, cause error) *Error {
	return &Error{
		Phase:  PhasePost,
		Kind:   KindPostFailed,
		Object: object,
		Detail: "event loop rejected task",
		Cause:  cause,
	}
}

// LayoutMismatch creates a layout proof failure
func LayoutMismatch(typeName, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseLayout,
		Kind:   KindLayoutMismatch,
		Object: typeName,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Registration creates a registration error
func Registration(uri, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindRegistration,
		Object: name,
		Detail: fmt.Sprintf("register %s in %s", name, uri),
		Cause:  cause,
	}
}

// Load creates an IR loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// Write creates an output file error
func Write(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseWrite,
		Kind:   KindIO,
		Detail: fmt.Sprintf("write %s", path),
		Cause:  cause,
	}
}

// List aggregates independent errors found in one pass
type List struct {
	Errors []*Error
}

// Add appends err to the list
func (l *List) Add(err *Error) {
	l.Errors = append(l.Errors, err)
}

// Len returns the number of collected errors
func (l *List) Len() int {
	return len(l.Errors)
}

// Err returns nil for an empty list, the list itself otherwise
func (l *List) Err() error {
	if l == nil || len(l.Errors) == 0 {
		return nil
	}
	return l
}

func (l *List) Error() string {
	if len(l.Errors) == 1 {
		return l.Errors[0].Error()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d errors:", len(l.Errors)))
	for _, e := range l.Errors {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap exposes the collected errors to errors.Is/As
func (l *List) Unwrap() []error {
	out := make([]error, len(l.Errors))
	for i, e := range l.Errors {
		out[i] = e
	}
	return out
}
