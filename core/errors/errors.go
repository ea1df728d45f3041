// Package errors provides standardized error types and helpers for the Scriptura codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrUnknownBook indicates a book name that resolves to no canonical book
	ErrUnknownBook = errors.New("unknown book")
	// ErrDuplicateVerse indicates a repeated (book, chapter, verse) triple in source data
	ErrDuplicateVerse = errors.New("duplicate verse")
	// ErrInvalidReference indicates a malformed or out-of-bounds reference
	ErrInvalidReference = errors.New("invalid reference")
	// ErrParse indicates a free-text reference that could not be parsed
	ErrParse = errors.New("parse error")
	// ErrInvalidLimit indicates a search limit that is not a positive integer
	ErrInvalidLimit = errors.New("invalid limit")
	// ErrInternal indicates an internal system error
	ErrInternal = errors.New("internal error")
)

// UnknownBookError reports a book name that the registry cannot resolve.
type UnknownBookError struct {
	Name     string // Name as it appeared in the source or query
	Language string // Language the lookup was attempted in
}

func (e *UnknownBookError) Error() string {
	if e.Language != "" {
		return fmt.Sprintf("unknown book %q (language %s)", e.Name, e.Language)
	}
	return fmt.Sprintf("unknown book %q", e.Name)
}

func (e *UnknownBookError) Unwrap() error {
	return ErrUnknownBook
}

// DuplicateVerseError identifies the offending triple in a translation payload.
type DuplicateVerseError struct {
	Book    int
	Chapter int
	Verse   int
}

func (e *DuplicateVerseError) Error() string {
	return fmt.Sprintf("duplicate verse %d:%d:%d in source data", e.Book, e.Chapter, e.Verse)
}

func (e *DuplicateVerseError) Unwrap() error {
	return ErrDuplicateVerse
}

// NormalizationError wraps a failure during translation load. The translation
// identified by Code is not published; any previously published index keeps
// serving.
type NormalizationError struct {
	Code string // Translation code being loaded
	Err  error  // Underlying cause (UnknownBookError, DuplicateVerseError, ...)
}

func (e *NormalizationError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("normalizing translation %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("normalizing translation: %v", e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// InvalidReferenceError reports a reference rejected at construction.
// References are never clamped to the nearest valid position.
type InvalidReferenceError struct {
	Book    int
	Chapter int
	Verse   int
	Reason  string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid reference %d %d:%d: %s", e.Book, e.Chapter, e.Verse, e.Reason)
}

func (e *InvalidReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// ParseError reports free-text reference resolution failure.
type ParseError struct {
	Input   string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse reference %q: %s", e.Input, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrParse
}

// Helper functions for creating common errors

// NewUnknownBook creates an UnknownBookError.
func NewUnknownBook(name, language string) *UnknownBookError {
	return &UnknownBookError{Name: name, Language: language}
}

// NewDuplicateVerse creates a DuplicateVerseError.
func NewDuplicateVerse(book, chapter, verse int) *DuplicateVerseError {
	return &DuplicateVerseError{Book: book, Chapter: chapter, Verse: verse}
}

// NewNormalization wraps err as a NormalizationError for the given translation.
func NewNormalization(code string, err error) *NormalizationError {
	return &NormalizationError{Code: code, Err: err}
}

// NewInvalidReference creates an InvalidReferenceError.
func NewInvalidReference(book, chapter, verse int, reason string) *InvalidReferenceError {
	return &InvalidReferenceError{Book: book, Chapter: chapter, Verse: verse, Reason: reason}
}

// NewParse creates a ParseError.
func NewParse(input, message string) *ParseError {
	return &ParseError{Input: input, Message: message}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
