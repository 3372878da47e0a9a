// FILE: lixenwraith/looks/example/main.go
package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/lixenwraith/looks"
)

func main() {
	dir, err := os.MkdirTemp("", "looks-example")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	// =========================================================================
	// PART 1: a Windows XP desktop at 96 dpi, no properties at all
	// =========================================================================
	env := looks.NewEnvironment(looks.OSWindows, looks.ReleaseWinXP, looks.ToolkitModern, 96,
		looks.FontSizeNormal, true, map[string]looks.Font{
			looks.DesktopIconFont:       looks.MustParseFont("Tahoma-11"),
			looks.DesktopDefaultGUIFont: looks.MustParseFont("MS Sans Serif-11"),
		})

	props := looks.NewProperties()
	look, err := looks.NewBuilder("Windows").
		WithEnvironment(env).
		WithProperties(props).
		WithRegistry(looks.NewRegistry()).
		WithLogger(looks.DiscardLogger()).
		Build()
	if err != nil {
		log.Fatalf("build: %v", err)
	}
	log.Printf("platform fonts: %s", look.FontSet())
	log.Printf("passes: %v", look.Table().AppliedPasses())

	border, _ := look.Get("Button.border")
	log.Printf("Button.border (evaluated on first read): %v", border)

	// =========================================================================
	// PART 2: custom fonts from a properties file, menu left to the platform
	// =========================================================================
	file := filepath.Join(dir, "looks.toml")
	content := []byte("[Windows]\ncontrolFont = \"Arial-BOLD-14\"\nfontSizeHints = \"MIXED\"\n")
	if err := os.WriteFile(file, content, 0644); err != nil {
		log.Fatalf("write properties: %v", err)
	}
	if err := props.LoadFile(file); err != nil {
		log.Fatalf("load properties: %v", err)
	}
	if err := look.Refresh(); err != nil {
		log.Fatalf("refresh: %v", err)
	}
	log.Printf("custom fonts: %s", look.FontSet())
	log.Printf("effective hints: %s", look.Options().FontSizeHints)

	// =========================================================================
	// PART 3: a malformed declaration is reported, never masked
	// =========================================================================
	if err := props.Set("Windows.controlFont", looks.SourceCLI, "Arial-HEAVY-14"); err != nil {
		log.Fatalf("set: %v", err)
	}
	if err := look.Refresh(); errors.Is(err, looks.ErrConfiguration) {
		log.Printf("rejected: %v", err)
	}
	log.Printf("still serving: %s", look.FontSet())
}
