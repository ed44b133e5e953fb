package game

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownEvaluation = errors.New("unknown evaluation function")
	ErrNotImplemented    = errors.New("evaluation function not implemented")
)

// Registry maps evaluation function identifiers to their implementations. A name registered
// with a nil function is reserved: looking it up fails with ErrNotImplemented.
type Registry struct {
	sync.RWMutex
	fns map[string]Evaluate
}

func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Evaluate)}
}

// DefaultRegistry holds the built-in evaluation functions.
var DefaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register("score", EvaluateScore)
	r.Register("scoreEvaluationFunction", EvaluateScore)
	r.Register("better", EvaluateBetter)
	r.Register("betterEvaluationFunction", EvaluateBetter)
	return r
}()

// Register binds name to fn, replacing any previous binding.
func (r *Registry) Register(name string, fn Evaluate) {
	r.Lock()
	defer r.Unlock()

	r.fns[name] = fn
}

// Reserve declares name without an implementation.
func (r *Registry) Reserve(name string) {
	r.Register(name, nil)
}

func (r *Registry) Lookup(name string) (Evaluate, error) {
	r.RLock()
	defer r.RUnlock()

	fn, ok := r.fns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluation, name)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotImplemented, name)
	}
	return fn, nil
}

// Names returns the registered identifiers in lexical order, reserved ones included.
func (r *Registry) Names() []string {
	r.RLock()
	defer r.RUnlock()

	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupEvaluation resolves name in the DefaultRegistry.
func LookupEvaluation(name string) (Evaluate, error) {
	return DefaultRegistry.Lookup(name)
}
