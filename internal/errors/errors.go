// Package errors defines the domain error type shared by the catalog, team
// factory and battle engine.
package errors

import "fmt"

// Category groups error codes by how a caller is expected to react.
type Category string

const (
	// CategoryConfig errors are fatal at load time; no battle may start.
	CategoryConfig Category = "config"
	// CategoryValidation errors reject caller input synchronously.
	CategoryValidation Category = "validation"
	// CategoryInvariant errors signal a programmer or caller mistake.
	CategoryInvariant Category = "invariant"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeCatalogInvalid   Code = "CATALOG_INVALID"
	CodeDanglingRevenant Code = "CATALOG_DANGLING_REVENANT"
	CodeUnknownLetter    Code = "UNKNOWN_LETTER"
	CodeInvalidWord      Code = "INVALID_WORD"
	CodeNotInDictionary  Code = "NOT_IN_DICTIONARY"
	CodeNotEnoughGold    Code = "NOT_ENOUGH_GOLD"
	CodeLetterLocked     Code = "LETTER_LOCKED"
	CodeBattleOver       Code = "BATTLE_OVER"
	CodeBattleNotOver    Code = "BATTLE_NOT_OVER"
	CodeStepLimit        Code = "STEP_LIMIT_EXCEEDED"
	CodeInternal         Code = "INTERNAL"
)

// Category returns the category the code belongs to.
func (c Code) Category() Category {
	switch c {
	case CodeCatalogInvalid, CodeDanglingRevenant:
		return CategoryConfig
	case CodeUnknownLetter, CodeInvalidWord, CodeNotInDictionary, CodeNotEnoughGold, CodeLetterLocked:
		return CategoryValidation
	default:
		return CategoryInvariant
	}
}

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable message
	Metadata map[string]string // Offending values (letter, word, position...)
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Category returns the category of the error's code.
func (e *Error) Category() Category {
	return e.Code.Category()
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithMetadata creates a domain error carrying metadata about the offending input.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Sentinels for errors.Is matching by code.
var (
	ErrCatalogInvalid   = New(CodeCatalogInvalid, "catalog invalid")
	ErrDanglingRevenant = New(CodeDanglingRevenant, "dangling revenant reference")
	ErrUnknownLetter    = New(CodeUnknownLetter, "unknown letter")
	ErrInvalidWord      = New(CodeInvalidWord, "invalid word")
	ErrNotInDictionary  = New(CodeNotInDictionary, "word not in dictionary")
	ErrNotEnoughGold    = New(CodeNotEnoughGold, "not enough gold")
	ErrLetterLocked     = New(CodeLetterLocked, "letter locked")
	ErrBattleOver       = New(CodeBattleOver, "battle is over")
	ErrBattleNotOver    = New(CodeBattleNotOver, "battle is not over")
	ErrStepLimit        = New(CodeStepLimit, "step limit exceeded")
)

// CategoryOf returns the category of err if it is (or wraps) a domain error.
func CategoryOf(err error) (Category, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Category(), true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return "", false
		}
		err = u.Unwrap()
	}
	return "", false
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	c, ok := CategoryOf(err)
	return ok && c == CategoryConfig
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	c, ok := CategoryOf(err)
	return ok && c == CategoryValidation
}

// IsInvariant reports whether err is an invariant violation.
func IsInvariant(err error) bool {
	c, ok := CategoryOf(err)
	return ok && c == CategoryInvariant
}
