// Package checks provides the registry and implementation of all checks supported by the validator.
// This file specifically defines the registry system that allows checks to be registered,
// discovered, and executed against a loaded dataset.
package checks

import (
	"fmt"
	"sort"
	"sync"

	"dqv/pkg/dataset"
	"dqv/pkg/suite"
)

// CheckHandler is the function signature for check execution handlers. It
// returns a success message, or an error describing why the check failed.
type CheckHandler func(ds *dataset.Dataset, check *suite.Check, column string) (string, error)

// CheckRegistry manages the registration and lookup of check handlers
type CheckRegistry struct {
	mu       sync.RWMutex
	handlers map[string]CheckHandler
}

// NewCheckRegistry creates a new empty check registry
func NewCheckRegistry() *CheckRegistry {
	return &CheckRegistry{
		handlers: make(map[string]CheckHandler),
	}
}

// Register adds a new check handler to the registry
func (r *CheckRegistry) Register(checkType string, handler CheckHandler) error {
	if handler == nil {
		return fmt.Errorf("check handler for type '%s' is nil", checkType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[checkType]; exists {
		return fmt.Errorf("check handler for type '%s' is already registered", checkType)
	}

	r.handlers[checkType] = handler
	return nil
}

// MustRegister adds a new check handler to the registry, panicking if it fails
func (r *CheckRegistry) MustRegister(checkType string, handler CheckHandler) {
	if err := r.Register(checkType, handler); err != nil {
		panic(err)
	}
}

// Get retrieves a check handler by type
func (r *CheckRegistry) Get(checkType string) (CheckHandler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, exists := r.handlers[checkType]
	if !exists {
		return nil, fmt.Errorf("no handler registered for check type '%s'", checkType)
	}

	return handler, nil
}

// Types returns the registered check types in sorted order.
func (r *CheckRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Execute runs a check using the appropriate handler
func (r *CheckRegistry) Execute(ds *dataset.Dataset, check *suite.Check, column string) (string, error) {
	if check == nil {
		return "", fmt.Errorf("cannot execute nil check")
	}
	if check.Type == "" {
		return "", fmt.Errorf("check missing required 'type' field")
	}
	if ds == nil {
		return "", fmt.Errorf("cannot execute check '%s' without a dataset", check.Type)
	}

	handler, err := r.Get(check.Type)
	if err != nil {
		return "", err
	}

	return handler(ds, check, column)
}

// Global instance for convenience
var DefaultRegistry = NewCheckRegistry()

// RegisterCheck registers a check handler with the default registry
func RegisterCheck(checkType string, handler CheckHandler) error {
	return DefaultRegistry.Register(checkType, handler)
}

// MustRegisterCheck registers a check handler with the default registry, panicking if it fails
func MustRegisterCheck(checkType string, handler CheckHandler) {
	DefaultRegistry.MustRegister(checkType, handler)
}

// ExecuteCheck executes a check using the default registry
func ExecuteCheck(ds *dataset.Dataset, check *suite.Check, column string) (string, error) {
	return DefaultRegistry.Execute(ds, check, column)
}
