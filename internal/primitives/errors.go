package primitives

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes an engine error.
type Kind string

const (
	KindInvalidParent     Kind = "invalid_parent"     // malformed parent at derive time
	KindInvalidMixin      Kind = "invalid_mixin"      // mixin fails the shape check
	KindDuplicateStatic   Kind = "duplicate_static"   // static key already defined
	KindInvalidRecipe     Kind = "invalid_recipe"     // instantiation on absent/malformed recipe
	KindInvalidMethod     Kind = "invalid_method"     // init entry with the wrong shape
	KindInvalidDescriptor Kind = "invalid_descriptor" // descriptor mixes value and accessor
	KindNotFound          Kind = "not_found"          // lookup miss
	KindNotCallable       Kind = "not_callable"       // call on a non-method value
	KindReadOnly          Kind = "read_only_property" // write to a fixed property
	KindInvalidCatalog    Kind = "invalid_catalog"    // declarative catalog rejected
	KindDuplicateName     Kind = "duplicate_name"     // registry name already taken
)

// Error is the structured error type used throughout the engine.
type Error struct {
	Cause  error
	Kind   Kind
	Name   string // offending key, recipe or property name
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Kind))
	b.WriteByte(']')

	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(e.Name)
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

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidParent     = &Error{Kind: KindInvalidParent}
	ErrInvalidMixin      = &Error{Kind: KindInvalidMixin}
	ErrDuplicateStatic   = &Error{Kind: KindDuplicateStatic}
	ErrInvalidRecipe     = &Error{Kind: KindInvalidRecipe}
	ErrInvalidMethod     = &Error{Kind: KindInvalidMethod}
	ErrInvalidDescriptor = &Error{Kind: KindInvalidDescriptor}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrNotCallable       = &Error{Kind: KindNotCallable}
	ErrReadOnly          = &Error{Kind: KindReadOnly}
	ErrInvalidCatalog    = &Error{Kind: KindInvalidCatalog}
	ErrDuplicateName     = &Error{Kind: KindDuplicateName}
)

// NewError creates an error of the given kind. detail may carry format args.
func NewError(kind Kind, name, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Kind: kind, Name: name, Detail: detail}
}

// WrapError creates an error of the given kind around cause.
func WrapError(kind Kind, name string, cause error, detail string, args ...any) *Error {
	e := NewError(kind, name, detail, args...)
	e.Cause = cause
	return e
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
