// FILE: lixenwraith/looks/loader.go
package looks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// MaxFileSize bounds the size of a properties file.
const MaxFileSize = 1 << 20

// Load reads a properties file and command-line overrides using the current options.
func (p *Properties) Load(filePath string, args []string) error {
	return p.LoadWithOptions(filePath, args, p.Options())
}

// LoadWithOptions loads properties from every source in opts.Sources.
// A missing file is not fatal; it is reported together with other
// non-fatal errors once every source has been processed.
func (p *Properties) LoadWithOptions(filePath string, args []string, opts LoadOptions) error {
	if len(opts.Sources) == 0 {
		opts.Sources = DefaultLoadOptions().Sources
	}
	p.SetPrecedence(opts.Sources...)

	p.mu.Lock()
	p.options = opts
	p.mu.Unlock()

	var loadErrors []error

	// Lowest precedence first so that reports of later sources are final
	for i := len(opts.Sources) - 1; i >= 0; i-- {
		switch opts.Sources[i] {
		case SourceDefault:
			continue

		case SourceFile:
			if filePath == "" {
				continue
			}
			if err := p.LoadFile(filePath); err != nil {
				if errors.Is(err, ErrConfigNotFound) {
					loadErrors = append(loadErrors, err)
				} else {
					return err
				}
			}

		case SourceEnv:
			if err := p.loadEnv(opts); err != nil {
				loadErrors = append(loadErrors, err)
			}

		case SourceCLI:
			if len(args) > 0 {
				if err := p.LoadCLI(args); err != nil {
					loadErrors = append(loadErrors, err)
				}
			}
		}
	}

	return errors.Join(loadErrors...)
}

// LoadFile replaces the file layer with the contents of path.
// Every key found in the file becomes known; keys that were file-sourced
// before and are missing now lose their file value.
func (p *Properties) LoadFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to stat properties file '%s': %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return fmt.Errorf("properties file '%s' exceeds maximum size %d bytes", path, MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read properties file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
	}

	parsed, err := parseProperties(data, format)
	if err != nil {
		return fmt.Errorf("failed to parse properties file '%s': %w", path, err)
	}

	flat := flattenMap(parsed, "")
	for key := range flat {
		if err := validateKey(key); err != nil {
			return fmt.Errorf("properties file '%s': %w", path, err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.filePath = path
	p.fileFormat = format

	for key, item := range p.items {
		if _, inFile := flat[key]; inFile {
			continue
		}
		if _, had := item.values[SourceFile]; had {
			delete(item.values, SourceFile)
			item.currentValue = p.computeValue(item)
			p.items[key] = item
		}
	}
	for key, value := range flat {
		p.setLocked(key, SourceFile, value)
	}
	return nil
}

// parseProperties decodes raw file content in the given format.
func parseProperties(data []byte, format string) (map[string]any, error) {
	out := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("toml: %w", err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&out); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	default:
		return nil, errors.New("unable to determine format")
	}
	return out, nil
}

// LoadEnv loads environment values for registered keys using prefix.
func (p *Properties) LoadEnv(prefix string) error {
	opts := p.Options()
	opts.EnvPrefix = prefix
	return p.loadEnv(opts)
}

func (p *Properties) loadEnv(opts LoadOptions) error {
	transform := opts.EnvTransform
	if transform == nil {
		transform = defaultEnvTransform(opts.EnvPrefix)
	}

	p.mu.RLock()
	keys := make([]string, 0, len(p.items))
	for k := range p.items {
		keys = append(keys, k)
	}
	p.mu.RUnlock()

	found := make(map[string]string)
	for _, key := range keys {
		if opts.EnvWhitelist != nil && !opts.EnvWhitelist[key] {
			continue
		}
		if value, exists := os.LookupEnv(transform(key)); exists {
			found[key] = value
		}
	}

	if len(found) == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for key, value := range found {
		p.setLocked(key, SourceEnv, value)
	}
	return nil
}

// LoadCLI loads values from --key=value, --key value and --flag arguments.
// Keys named on the command line become known even if never registered.
func (p *Properties) LoadCLI(args []string) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCLIParse, err)
	}

	flat := flattenMap(parsed, "")
	if len(flat) == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for key, value := range flat {
		p.setLocked(key, SourceCLI, parseValue(value.(string)))
	}
	return nil
}

// DiscoverEnv returns key -> env var name for registered keys whose variable is set.
func (p *Properties) DiscoverEnv(prefix string) map[string]string {
	transform := p.Options().EnvTransform
	if transform == nil {
		transform = defaultEnvTransform(prefix)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	discovered := make(map[string]string)
	for key := range p.items {
		name := transform(key)
		if _, exists := os.LookupEnv(name); exists {
			discovered[key] = name
		}
	}
	return discovered
}

// FilePath returns the path of the last loaded properties file.
func (p *Properties) FilePath() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.filePath
}

// defaultEnvTransform maps "Windows.controlFont" to "<prefix>WINDOWS_CONTROLFONT".
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(key string) string {
		env := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		env = strings.ReplaceAll(env, "-", "_")
		return prefix + env
	}
}

// parseValue does only basic parsing; richer conversion is left to Scan.
func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Save writes the current values to a TOML file atomically.
func (p *Properties) Save(path string) error {
	return p.saveTOML(path, p.snapshot())
}

// SaveSource writes the values of a single source to a TOML file atomically.
func (p *Properties) SaveSource(path string, source Source) error {
	p.mu.RLock()
	values := make(map[string]any)
	for key, item := range p.items {
		if source == SourceDefault {
			if item.defaultValue != nil {
				values[key] = item.defaultValue
			}
			continue
		}
		if v, ok := item.values[source]; ok {
			values[key] = v
		}
	}
	p.mu.RUnlock()

	return p.saveTOML(path, values)
}

func (p *Properties) saveTOML(path string, flat map[string]any) error {
	var buf bytes.Buffer
	if err := encodeTOML(&buf, flat); err != nil {
		return fmt.Errorf("failed to marshal properties to TOML: %w", err)
	}
	return atomicWriteFile(path, buf.Bytes())
}

// tomlValue renders text-marshalable domain values as plain strings.
func tomlValue(v any) any {
	switch val := v.(type) {
	case Font:
		return val.String()
	case FontSizeHints:
		return val.String()
	case json.Number:
		return val.String()
	}
	return v
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

// atomicWriteFile writes data to a temporary file and renames it over path.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

// parseArgs processes command-line arguments into a nested map of strings.
func parseArgs(args []string) (map[string]any, error) {
	result := make(map[string]any)
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}

		content := strings.TrimPrefix(arg, "--")
		if content == "" {
			i++
			continue
		}

		var key, value string
		if k, v, hasValue := strings.Cut(content, "="); hasValue {
			key, value = k, v
			i++
		} else {
			key = content
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				value = "true"
				i++
			} else {
				value = args[i+1]
				i += 2
			}
		}

		if key == "" {
			continue
		}
		for _, segment := range strings.Split(key, ".") {
			if !isValidKeySegment(segment) {
				return nil, fmt.Errorf("invalid command-line key segment %q in path %q", segment, key)
			}
		}

		setNestedValue(result, key, value)
	}
	return result, nil
}

// detectFileFormat determines format from file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

// detectFormatFromContent attempts to detect format by parsing.
func detectFormatFromContent(data []byte) string {
	var probe any
	if err := json.Unmarshal(data, &probe); err == nil {
		return "json"
	}
	// TOML before YAML: most key = value files are also valid YAML scalars
	var tomlProbe map[string]any
	if err := toml.Unmarshal(data, &tomlProbe); err == nil {
		return "toml"
	}
	var yamlProbe map[string]any
	if err := yaml.Unmarshal(data, &yamlProbe); err == nil {
		return "yaml"
	}
	return ""
}
