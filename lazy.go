// FILE: lixenwraith/looks/lazy.go
package looks

import (
	"fmt"
	"sync"
)

// ProducerFunc constructs a deferred value.
type ProducerFunc func() (any, error)

// LazyValue defers construction of a table value until it is first read.
// The first successful result is cached permanently; a failed evaluation
// leaves the cache empty so the next read retries.
type LazyValue struct {
	name    string
	produce ProducerFunc

	mu    sync.Mutex
	done  bool
	value any
}

// NewLazyValue binds name to a producer. The name identifies the value in diagnostics.
func NewLazyValue(name string, produce ProducerFunc) *LazyValue {
	return &LazyValue{name: name, produce: produce}
}

// Name returns the symbolic reference of the producer.
func (l *LazyValue) Name() string { return l.name }

// Evaluated reports whether a value has been cached.
func (l *LazyValue) Evaluated() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Evaluate returns the cached value or runs the producer.
// Concurrent callers are serialized; the producer runs at most once on success.
func (l *LazyValue) Evaluate() (value any, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done {
		return l.value, nil
	}
	if l.produce == nil {
		return nil, &EvalError{Name: l.name, Err: fmt.Errorf("no producer bound")}
	}

	defer func() {
		if r := recover(); r != nil {
			value, err = nil, &EvalError{Name: l.name, Err: fmt.Errorf("producer panicked: %v", r)}
		}
	}()

	v, err := l.produce()
	if err != nil {
		return nil, &EvalError{Name: l.name, Err: err}
	}
	l.value, l.done = v, true
	return v, nil
}

func (l *LazyValue) String() string { return "lazy:" + l.name }

// Factories is a statically registered name to producer table.
// It replaces runtime lookup of constructors by name.
type Factories map[string]ProducerFunc

// Lazy returns a deferred value bound to the named factory.
// An unregistered name fails on evaluation with ErrFactoryNotFound.
func (f Factories) Lazy(name string) *LazyValue {
	produce, ok := f[name]
	if !ok {
		return NewLazyValue(name, func() (any, error) {
			return nil, fmt.Errorf("%w: %s", ErrFactoryNotFound, name)
		})
	}
	return NewLazyValue(name, produce)
}
