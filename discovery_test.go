// FILE: lixenwraith/looks/discovery_test.go
package looks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFile(t *testing.T) {
	dir := t.TempDir()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(xdg, "none"))
	t.Setenv("LOOKS_PROPERTIES", "")

	opts := DefaultDiscoveryOptions("looks")
	opts.UseCurrentDir = false

	t.Run("NothingFound", func(t *testing.T) {
		assert.Empty(t, DiscoverFile(opts, nil))
	})

	t.Run("XDGHome", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Join(xdg, "looks"), 0755))
		path := writeFile(t, filepath.Join(xdg, "looks"), "looks.yaml", "Windows:\n  controlFont: Tahoma-11\n")
		assert.Equal(t, path, DiscoverFile(opts, nil))
	})

	t.Run("CustomPathFirst", func(t *testing.T) {
		path := writeFile(t, dir, "looks.json", `{}`)
		withPath := opts
		withPath.Paths = []string{dir}
		assert.Equal(t, path, DiscoverFile(withPath, nil))

		withPath.Extensions = []string{".toml", ".json"}
		toml := writeFile(t, dir, "looks.toml", "")
		assert.Equal(t, toml, DiscoverFile(withPath, nil), "extensions tried in order")
	})

	t.Run("EnvVar", func(t *testing.T) {
		t.Setenv("LOOKS_PROPERTIES", "/from/env.toml")
		assert.Equal(t, "/from/env.toml", DiscoverFile(opts, nil))
	})

	t.Run("CLIFlagWins", func(t *testing.T) {
		t.Setenv("LOOKS_PROPERTIES", "/from/env.toml")
		assert.Equal(t, "/from/cli.toml", DiscoverFile(opts, []string{"--properties", "/from/cli.toml"}))
		assert.Equal(t, "/from/eq.toml", DiscoverFile(opts, []string{"--properties=/from/eq.toml"}))
	})
}

func TestBuilderWithFileDiscovery(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "looks.toml", "[Windows]\ncontrolFont = \"Arial-BOLD-14\"\n")

	opts := DefaultDiscoveryOptions("looks")
	opts.UseXDG = false
	opts.UseCurrentDir = false
	opts.Paths = []string{dir}

	look, err := testBuilder("Windows", xpEnvironment()).WithFileDiscovery(opts).Build()
	require.NoError(t, err)
	assert.Equal(t, path, look.Properties().FilePath())
	assert.Equal(t, "Arial", look.FontSet().ControlFont().Family)
}

func TestXDGConfigPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/user")
	t.Setenv("XDG_CONFIG_DIRS", "/etc/a"+string(filepath.ListSeparator)+"/etc/b")

	assert.Equal(t, []string{
		filepath.Join("/home/user", ".config", "app"),
		filepath.Join("/etc/a", "app"),
		filepath.Join("/etc/b", "app"),
	}, xdgConfigPaths("app"))
}
