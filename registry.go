// FILE: lixenwraith/looks/registry.go
package looks

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps profile names to explicitly registered policies.
// A registered policy takes precedence over every other resolution layer.
type Registry struct {
	mu       sync.RWMutex
	policies map[string]Policy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{policies: make(map[string]Policy)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// RegisterPolicy registers p for profile in the process-wide registry.
func RegisterPolicy(profile string, p Policy) error {
	return defaultRegistry.Register(profile, p)
}

// UnregisterPolicy removes the process-wide policy for profile.
func UnregisterPolicy(profile string) {
	defaultRegistry.Unregister(profile)
}

// Register associates p with profile, replacing any earlier registration.
func (r *Registry) Register(profile string, p Policy) error {
	if err := validateProfile(profile); err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("nil policy for profile %s", profile)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[profile] = p
	return nil
}

// Unregister removes the policy for profile. Unknown profiles are ignored.
func (r *Registry) Unregister(profile string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.policies, profile)
}

// Lookup returns the policy registered for profile.
func (r *Registry) Lookup(profile string) (Policy, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.policies[profile]
	return p, ok
}

// Profiles returns the registered profile names, sorted.
func (r *Registry) Profiles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// validateProfile checks that a profile name is a single bare key segment.
func validateProfile(profile string) error {
	if !isValidKeySegment(profile) {
		return fmt.Errorf("%w: profile name %q", ErrInvalidKey, profile)
	}
	return nil
}
