// Package errors provides the structured error types of the component
// engine. Failures are categorized, carry stable codes, and degrade to
// logged diagnostics at the public surface; nothing here is meant to abort
// an editing session.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrorType represents different categories of engine errors.
type ErrorType string

const (
	ErrorTypeRegistration ErrorType = "registration"
	ErrorTypeRender       ErrorType = "render"
	ErrorTypePlacement    ErrorType = "placement"
	ErrorTypeHook         ErrorType = "hook"
	ErrorTypeConfig       ErrorType = "config"
	ErrorTypeInternal     ErrorType = "internal"
)

// EngineError is a structured error with category, code, and context.
type EngineError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Component   string
	Context     map[string]any
	Recoverable bool
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	var parts []string
	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}
	parts = append(parts, e.Message)
	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Is matches errors by category and code.
func (e *EngineError) Is(target error) bool {
	var t *EngineError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithContext adds context information to the error.
func (e *EngineError) WithContext(key string, value any) *EngineError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithComponent records the component id the error relates to.
func (e *EngineError) WithComponent(component string) *EngineError {
	e.Component = component
	return e
}

// WithCause attaches the underlying error.
func (e *EngineError) WithCause(cause error) *EngineError {
	e.Cause = cause
	return e
}

// NewRegistrationError creates a registration error (duplicate id, missing
// required field, malformed definition). Always recoverable.
func NewRegistrationError(code, message string) *EngineError {
	return &EngineError{
		Type:        ErrorTypeRegistration,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewRenderError creates a rendering error (content function yielded no
// usable root element). Recoverable: the failed instantiation aborts with no
// partial DOM left behind.
func NewRenderError(code, message string) *EngineError {
	return &EngineError{
		Type:        ErrorTypeRender,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewHookError wraps a lifecycle hook failure (error return or recovered
// panic). Recoverable: DOM state written before the failure stays in place.
func NewHookError(code, message string) *EngineError {
	return &EngineError{
		Type:        ErrorTypeHook,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewConfigError creates a configuration validation error.
func NewConfigError(code, message string) *EngineError {
	return &EngineError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal engine error.
func NewInternalError(code, message string) *EngineError {
	return &EngineError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// Collector accumulates non-fatal diagnostics (hook failures, skipped
// writes) for later inspection, e.g. by the preview server's status page.
type Collector struct {
	mu     sync.RWMutex
	errors []error
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends an error; nil errors are ignored.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, err)
}

// All returns a copy of the collected errors.
func (c *Collector) All() []error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]error, len(c.errors))
	copy(out, c.errors)
	return out
}

// Count returns the number of collected errors.
func (c *Collector) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.errors)
}

// Clear drops all collected errors.
func (c *Collector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = nil
}
