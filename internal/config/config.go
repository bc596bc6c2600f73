// Package config loads the synchronization subsystem's configuration.
//
// Configuration is a single YAML file layered over built-in defaults. A
// missing file is not an error: the defaults are a complete, working
// configuration on their own.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dshills/langsync/internal/editor"
)

// Config is the full configuration surface.
type Config struct {
	Compiler    Compiler    `yaml:"compiler"`
	Diagnostics Diagnostics `yaml:"diagnostics"`
	Sync        Sync        `yaml:"sync"`
	ExtraLibs   []ExtraLib  `yaml:"extraLibs"`
	Workspace   Workspace   `yaml:"workspace"`
}

// Compiler mirrors the typed service's compiler configuration.
type Compiler struct {
	Target               string `yaml:"target"`
	Module               string `yaml:"module"`
	JSX                  string `yaml:"jsx"`
	AllowJS              bool   `yaml:"allowJs"`
	CheckJS              bool   `yaml:"checkJs"`
	Strict               bool   `yaml:"strict"`
	NoImplicitAny        bool   `yaml:"noImplicitAny"`
	IsolatedModules      bool   `yaml:"isolatedModules"`
	AllowNonTSExtensions bool   `yaml:"allowNonTsExtensions"`
}

// Diagnostics selects which diagnostics the typed service publishes.
type Diagnostics struct {
	NoSemanticValidation    bool  `yaml:"noSemanticValidation"`
	NoSyntaxValidation      bool  `yaml:"noSyntaxValidation"`
	NoSuggestionDiagnostics bool  `yaml:"noSuggestionDiagnostics"`
	CodesToIgnore           []int `yaml:"codesToIgnore"`
}

// Sync controls worker synchronization behavior.
type Sync struct {
	Eager bool `yaml:"eager"`
}

// ExtraLib is one ambient declaration source registered with the typed
// service at setup, either inline or from a file on disk.
type ExtraLib struct {
	Path    string `yaml:"path"`
	Content string `yaml:"content"`
	File    string `yaml:"file"`
}

// Workspace points at the project document.
type Workspace struct {
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Compiler: Compiler{
			Target:               "es2020",
			Module:               "esnext",
			JSX:                  "react",
			AllowJS:              true,
			AllowNonTSExtensions: true,
		},
		Sync: Sync{Eager: true},
		Workspace: Workspace{
			Path: filepath.Join(".", "workspace.json"),
		},
	}
}

// Load reads the configuration at path over the defaults. An empty path
// or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// CompilerOptions converts the compiler section to the editor's form.
func (c Config) CompilerOptions() editor.CompilerOptions {
	return editor.CompilerOptions{
		Target:               c.Compiler.Target,
		Module:               c.Compiler.Module,
		JSX:                  c.Compiler.JSX,
		AllowJS:              c.Compiler.AllowJS,
		CheckJS:              c.Compiler.CheckJS,
		Strict:               c.Compiler.Strict,
		NoImplicitAny:        c.Compiler.NoImplicitAny,
		IsolatedModules:      c.Compiler.IsolatedModules,
		AllowNonTSExtensions: c.Compiler.AllowNonTSExtensions,
	}
}

// DiagnosticsOptions converts the diagnostics section to the editor's
// form.
func (c Config) DiagnosticsOptions() editor.DiagnosticsOptions {
	return editor.DiagnosticsOptions{
		NoSemanticValidation:    c.Diagnostics.NoSemanticValidation,
		NoSyntaxValidation:      c.Diagnostics.NoSyntaxValidation,
		NoSuggestionDiagnostics: c.Diagnostics.NoSuggestionDiagnostics,
		CodesToIgnore:           c.Diagnostics.CodesToIgnore,
	}
}

// Resolve returns the lib's declaration source, reading File relative to
// baseDir when Content is empty.
func (l ExtraLib) Resolve(baseDir string) (string, error) {
	if l.Content != "" {
		return l.Content, nil
	}
	if l.File == "" {
		return "", fmt.Errorf("extra lib %s: no content or file", l.Path)
	}
	p := l.File
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("extra lib %s: %w", l.Path, err)
	}
	return string(data), nil
}
