// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/rewriterc/pkg/presets"
	"github.com/walteh/rewriterc/pkg/text"
	"github.com/walteh/rewriterc/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidConfig is matched by every error Validate returns.
var ErrInvalidConfig = errors.Base("invalid config")

// ErrNoConfig is returned by Find when a directory holds no config file
var ErrNoConfig = errors.Base("no config file found")

// DefaultExtensions are the file suffixes rewritten when none are configured
var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// FileNames lists the config file names Find looks for, in order
var FileNames = []string{
	".rewriterc.yaml",
	".rewriterc.yml",
	".rewriterc.json",
	".rewriterc.hcl",
	".rewriterc",
}

// 📚 Config represents the complete configuration of one run
type Config struct {
	Root         string      `json:"root,omitempty" yaml:"root,omitempty"`
	Presets      []string    `json:"presets,omitempty" yaml:"presets,omitempty"`
	Extensions   []string    `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	ExcludeDirs  []string    `json:"exclude_dirs,omitempty" yaml:"exclude_dirs,omitempty"`
	ExcludeNames []string    `json:"exclude_names,omitempty" yaml:"exclude_names,omitempty"`
	ExcludeGlobs []string    `json:"exclude_globs,omitempty" yaml:"exclude_globs,omitempty"`
	Encoding     string      `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Rules        []text.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`

	location string
	rules    *text.RuleSet
	codec    *text.Codec
}

// ValidationError names the config field that failed validation
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrInvalidConfig, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is makes every ValidationError match ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// 🎯 Load reads, parses and validates the config file at path
func Load(ctx context.Context, fsys afero.Fs, path string) (*Config, error) {
	cfg, err := Parse(ctx, fsys, path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("root", cfg.Root).
		Strs("presets", cfg.Presets).
		Int("rules", cfg.rules.Len()).
		Msg("configuration loaded")

	return cfg, nil
}

// Parse reads and parses the config file at path without validating it, so
// callers can apply overrides first.
//
// A relative or missing root is resolved against the file's directory.
func Parse(ctx context.Context, fsys afero.Fs, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, path, data)
	if err != nil {
		return nil, errors.Errorf("parsing config %s: %w", path, err)
	}

	cfg.location = path
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	return cfg, nil
}

// 🔍 Find returns the path of the first config file in dir, see FileNames
func Find(fsys afero.Fs, dir string) (string, error) {
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		info, err := fsys.Stat(candidate)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", errors.Errorf("checking %s: %w", candidate, err)
		}
		if info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", errors.Errorf("%w in %s (looked for %s)", ErrNoConfig, dir, strings.Join(FileNames, ", "))
}

// 🔍 Validate fills defaults, resolves presets and compiles the rule set.
//
// It is safe to call again after changing fields.
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	cfg.Root = filepath.Clean(cfg.Root)

	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), DefaultExtensions...)
	}
	for i, ext := range cfg.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" || ext == "." {
			return invalid("extensions", errors.Errorf("empty extension at index %d", i))
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Extensions[i] = ext
	}

	if cfg.ExcludeDirs == nil {
		cfg.ExcludeDirs = append([]string(nil), walk.DefaultExcludeDirs...)
	}
	for i, dir := range cfg.ExcludeDirs {
		if dir == "" {
			return invalid("exclude_dirs", errors.Errorf("empty fragment at index %d", i))
		}
	}
	for i, name := range cfg.ExcludeNames {
		if name == "" {
			return invalid("exclude_names", errors.Errorf("empty fragment at index %d", i))
		}
	}

	if cfg.Encoding == "" {
		cfg.Encoding = text.DefaultEncoding
	}
	codec, err := text.LookupCodec(cfg.Encoding)
	if err != nil {
		return invalid("encoding", err)
	}
	cfg.codec = codec

	var rules []text.Rule
	for _, name := range cfg.Presets {
		p, err := presets.Get(name)
		if err != nil {
			return invalid("presets", err)
		}
		rules = append(rules, p.Rules...)
		cfg.ExcludeDirs = union(cfg.ExcludeDirs, p.ExcludeDirs)
		cfg.ExcludeNames = union(cfg.ExcludeNames, p.ExcludeNames)
	}
	rules = append(rules, cfg.Rules...)

	if len(rules) == 0 {
		return invalid("rules", errors.New("no rules configured, set rules or presets"))
	}

	if err := cfg.Filter().Validate(); err != nil {
		return invalid("exclude_globs", err)
	}

	rs, err := text.Compile(rules)
	if err != nil {
		return invalid("rules", err)
	}
	cfg.rules = rs

	return nil
}

// Overrides are command line values layered over a config file
type Overrides struct {
	Root         string   // replaces the root, relative to the working directory
	Presets      []string // appended after the file's presets
	Extensions   []string // replace the file's extensions
	ExcludeDirs  []string // appended
	ExcludeNames []string // appended
	ExcludeGlobs []string // appended
	Encoding     string   // replaces the file's encoding
}

// Apply layers o over cfg. Call Validate afterwards.
func (cfg *Config) Apply(o Overrides) {
	if o.Root != "" {
		cfg.Root = o.Root
	}
	if o.Encoding != "" {
		cfg.Encoding = o.Encoding
	}
	if len(o.Extensions) > 0 {
		cfg.Extensions = append([]string(nil), o.Extensions...)
	}
	if len(o.ExcludeDirs) > 0 && cfg.ExcludeDirs == nil {
		cfg.ExcludeDirs = append([]string(nil), walk.DefaultExcludeDirs...)
	}
	cfg.Presets = union(cfg.Presets, o.Presets)
	cfg.ExcludeDirs = union(cfg.ExcludeDirs, o.ExcludeDirs)
	cfg.ExcludeNames = union(cfg.ExcludeNames, o.ExcludeNames)
	cfg.ExcludeGlobs = union(cfg.ExcludeGlobs, o.ExcludeGlobs)
}

// RuleSet returns the compiled preset rules followed by the file's own rules.
// It is nil until Validate succeeds.
func (cfg *Config) RuleSet() *text.RuleSet {
	return cfg.rules
}

// Codec returns the codec for Encoding. It is nil until Validate succeeds.
func (cfg *Config) Codec() *text.Codec {
	return cfg.codec
}

// Filter returns the file filter described by the config
func (cfg *Config) Filter() *walk.Filter {
	return &walk.Filter{
		Extensions:   cfg.Extensions,
		ExcludeNames: cfg.ExcludeNames,
		ExcludeGlobs: cfg.ExcludeGlobs,
	}
}

// WalkOptions returns the walker options described by the config
func (cfg *Config) WalkOptions() walk.Options {
	return walk.Options{
		ExcludeDirs:  cfg.ExcludeDirs,
		ExcludeGlobs: cfg.ExcludeGlobs,
	}
}

// Location returns the path the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a one line summary of the config
func (cfg *Config) String() string {
	n := len(cfg.Rules)
	if cfg.rules != nil {
		n = cfg.rules.Len()
	}
	return fmt.Sprintf("%s [%s] %d rules", cfg.Root, strings.Join(cfg.Extensions, " "), n)
}

// union appends the items of extra missing from base
func union(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extra {
		if !seen[s] {
			base = append(base, s)
			seen[s] = true
		}
	}
	return base
}
