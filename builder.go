// FILE: lixenwraith/looks/builder.go
package looks

import (
	"errors"
	"fmt"
	"log"
)

// ValidatorFunc validates a freshly built Look.
type ValidatorFunc func(l *Look) error

// Builder provides a fluent interface for activating a profile.
type Builder struct {
	profile    string
	env        *Environment
	props      *Properties
	registry   *Registry
	policy     Policy
	options    Options
	passes     []Pass
	logger     *log.Logger
	loadOpts   LoadOptions
	file       string
	args       []string
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a builder for profile.
func NewBuilder(profile string) *Builder {
	b := &Builder{
		profile:  profile,
		options:  DefaultOptions(),
		loadOpts: DefaultLoadOptions(),
	}
	if err := validateProfile(profile); err != nil {
		b.err = err
	}
	return b
}

// WithEnvironment replaces the probed environment.
func (b *Builder) WithEnvironment(env Environment) *Builder {
	b.env = &env
	return b
}

// WithProperties sets the property source. Defaults to SystemProperties.
func (b *Builder) WithProperties(props *Properties) *Builder {
	b.props = props
	return b
}

// WithRegistry sets the named policy registry. Defaults to DefaultRegistry.
func (b *Builder) WithRegistry(r *Registry) *Builder {
	b.registry = r
	return b
}

// WithPolicy replaces the default policy chain.
func (b *Builder) WithPolicy(p Policy) *Builder {
	b.policy = p
	return b
}

// WithOptions sets the look-wide options.
func (b *Builder) WithOptions(opts Options) *Builder {
	b.options = opts
	return b
}

// WithFontSizeHints sets the look-wide font size hints.
func (b *Builder) WithFontSizeHints(hints FontSizeHints) *Builder {
	b.options.FontSizeHints = hints
	return b
}

// WithUseSystemFonts sets whether the fonts pass runs.
func (b *Builder) WithUseSystemFonts(use bool) *Builder {
	b.options.UseSystemFonts = use
	return b
}

// WithLogger sets the diagnostics logger of the table.
func (b *Builder) WithLogger(logger *log.Logger) *Builder {
	b.logger = logger
	return b
}

// WithPasses replaces the table construction passes.
func (b *Builder) WithPasses(passes ...Pass) *Builder {
	b.passes = passes
	return b
}

// WithEnvPrefix sets the environment variable prefix for property keys.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.loadOpts.EnvPrefix = prefix
	return b
}

// WithSources sets the precedence order of property sources.
func (b *Builder) WithSources(sources ...Source) *Builder {
	b.loadOpts.Sources = sources
	return b
}

// WithFile sets the properties file path.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithArgs sets the command-line property overrides.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithValidator adds a validation function run at the end of Build.
// Validators run in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build activates the profile: loads properties, resolves the font set and
// builds the table. A missing properties file is reported alongside a valid Look.
func (b *Builder) Build() (*Look, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := b.logger
	if logger == nil {
		logger = defaultLogger()
	}

	env := b.env
	if env == nil {
		detected := probeOrFallback(logger)
		env = &detected
	}

	props := b.props
	if props == nil {
		props = SystemProperties()
	}
	if err := props.RegisterProfile(b.profile); err != nil {
		return nil, err
	}

	loadErr := props.LoadWithOptions(b.file, b.args, b.loadOpts)
	if loadErr != nil && !errors.Is(loadErr, ErrConfigNotFound) {
		return nil, loadErr
	}

	registry := b.registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	policy := b.policy
	if policy == nil {
		policy = DefaultPolicy(*env, registry, props)
	}

	passes := b.passes
	if passes == nil {
		passes = PassesFor(*env)
	}

	look := &Look{
		profile: b.profile,
		env:     *env,
		policy:  policy,
		props:   props,
		options: b.options,
		passes:  passes,
		logger:  logger,
	}
	if err := look.Refresh(); err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(look); err != nil {
			return nil, fmt.Errorf("look validation failed: %w", err)
		}
	}

	// ErrConfigNotFound or nil
	return look, loadErr
}

// MustBuild is like Build but panics on error.
// A missing properties file is not an error for MustBuild.
func (b *Builder) MustBuild() *Look {
	look, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("look build failed: %v", err))
	}
	return look
}
