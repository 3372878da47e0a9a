// FILE: lixenwraith/looks/errors.go
package looks

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration classifies every *ConfigurationError.
	ErrConfiguration = errors.New("configuration error")
	// ErrEvaluation classifies every *EvalError.
	ErrEvaluation = errors.New("lazy value evaluation failed")

	// ErrConfigNotFound is returned when a properties file does not exist. Not fatal.
	ErrConfigNotFound = errors.New("properties file not found")
	// ErrIncompleteFontSet is returned when a font set is missing one of its roles.
	ErrIncompleteFontSet = errors.New("incomplete font set")
	// ErrFactoryNotFound is returned by a lazy value bound to an unregistered factory.
	ErrFactoryNotFound = errors.New("factory not registered")
	// ErrInvalidKey is returned for empty or malformed property keys and profile names.
	ErrInvalidKey = errors.New("invalid key")
	// ErrUnknownFontSizeHints is returned for font size hint names without a preset.
	ErrUnknownFontSizeHints = errors.New("unknown font size hints")
	// ErrCLIParse is returned when command-line property overrides cannot be parsed.
	ErrCLIParse = errors.New("failed to parse command-line properties")
)

// ConfigurationError reports a custom override that is present but malformed.
// It is surfaced to the caller and never masked by a fallback policy.
type ConfigurationError struct {
	Key   string // property key, empty when parsing a bare descriptor
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("malformed value %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("malformed value %q for %s: %v", e.Value, e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// EvalError reports a lazy value whose producer failed.
type EvalError struct {
	Name string
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("problem creating %s: %v", e.Name, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

func (e *EvalError) Is(target error) bool { return target == ErrEvaluation }

// withKey attaches a property key to a configuration error raised without one.
func withKey(err error, key string) error {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) && cfgErr.Key == "" {
		return &ConfigurationError{Key: key, Value: cfgErr.Value, Err: cfgErr.Err}
	}
	return err
}
