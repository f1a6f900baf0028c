// Package errors provides custom error types for the delta system.
// These errors enable programmatic error checking when a changeset does not
// fit the container it is applied to, when encoded changesets cannot be
// decoded, and when the CLI cannot read its inputs.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the delta system
var (
	// ErrOutOfRange indicates a change addresses a position outside the container
	ErrOutOfRange = errors.New("index out of range")

	// ErrUnknownKey indicates a change addresses a key the container does not hold
	ErrUnknownKey = errors.New("unknown key")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownOp indicates a change carries an operation the applier does not know
	ErrUnknownOp = errors.New("unknown operation")

	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")
)

// IndexError reports a positional change that does not fit the sequence it is applied to
type IndexError struct {
	Op    string
	Index int
	Len   int
}

// Error implements the error interface
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range for length %d", e.Op, e.Index, e.Len)
}

// Is implements errors.Is support
func (e *IndexError) Is(target error) bool {
	return target == ErrOutOfRange
}

// NewIndexError creates a new IndexError
func NewIndexError(op string, index, length int) *IndexError {
	return &IndexError{Op: op, Index: index, Len: length}
}

// KeyError reports a keyed change whose key is missing from the target map
type KeyError struct {
	Op  string
	Key any
}

// Error implements the error interface
func (e *KeyError) Error() string {
	return fmt.Sprintf("%s: key %v not present", e.Op, e.Key)
}

// Is implements errors.Is support
func (e *KeyError) Is(target error) bool {
	return target == ErrUnknownKey
}

// NewKeyError creates a new KeyError
func NewKeyError(op string, key any) *KeyError {
	return &KeyError{Op: op, Key: key}
}

// OpError reports a change record with an operation outside the known set
type OpError struct {
	Kind string // "ordered", "multiset", "keyed"
	Op   uint8
}

// Error implements the error interface
func (e *OpError) Error() string {
	return fmt.Sprintf("unknown %s operation %d", e.Kind, e.Op)
}

// Is implements errors.Is support
func (e *OpError) Is(target error) bool {
	return target == ErrUnknownOp
}

// NewOpError creates a new OpError
func NewOpError(kind string, op uint8) *OpError {
	return &OpError{Kind: kind, Op: op}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// FieldError wraps the failure of one field while a composite changeset is applied
type FieldError struct {
	Field string
	Tag   uint8
	Err   error
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("apply field %s (tag %d): %v", e.Field, e.Tag, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FieldError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when decoding data formats
type ParseError struct {
	Format  string // "binary", "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsOutOfRange checks if an error is a positional range error
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// IsUnknownKey checks if an error is a missing key error
func IsUnknownKey(err error) bool {
	return errors.Is(err, ErrUnknownKey)
}

// IsUnknownOp checks if an error is an unknown operation error
func IsUnknownOp(err error) bool {
	return errors.Is(err, ErrUnknownOp)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapField wraps an error as a FieldError
func WrapField(field string, tag uint8, err error) error {
	if err == nil {
		return nil
	}
	return &FieldError{Field: field, Tag: tag, Err: err}
}
