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
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/rewriterc/pkg/presets"
	"github.com/walteh/rewriterc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func loadString(t *testing.T, path, content string) (*Config, error) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	return Load(testContext(t), fsys, path)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		config string
		check  func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml_with_preset_and_rules",
			path: "/proj/.rewriterc.yaml",
			config: `
root: src
presets: [neutrals]
extensions: [js, .tsx]
rules:
  - kind: pattern
    from: 'text-purple-(600|700)'
    to: text-brand-text-03
  - from: bg-creamy-white
    to: bg-surface-warm
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/proj/src", cfg.Root, "root should resolve against the config dir")
				assert.Equal(t, []string{".js", ".tsx"}, cfg.Extensions, "extensions should get a leading dot")
				assert.Equal(t, []string{"node_modules", ".git", ".next", "public"}, cfg.ExcludeDirs, "preset dirs should be merged into the defaults")
				assert.Equal(t, []string{"tailwind.config", "theme-config"}, cfg.ExcludeNames)
				assert.Equal(t, "utf-8", cfg.Codec().Name())
				require.NotNil(t, cfg.RuleSet())
				assert.Equal(t, 10, cfg.RuleSet().Len(), "8 preset rules then 2 file rules")

				rules := cfg.RuleSet().Rules()
				assert.Equal(t, text.KindPattern, rules[8].Kind)
				assert.Equal(t, text.KindLiteral, rules[9].Kind, "kind should default to literal")
			},
		},
		{
			name: "yaml_minimal_uses_defaults",
			path: "/proj/.rewriterc.yml",
			config: `
rules:
  - from: a
    to: b
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/proj", cfg.Root, "missing root should be the config dir")
				assert.Equal(t, DefaultExtensions, cfg.Extensions)
				assert.Equal(t, []string{"node_modules", ".git", ".next"}, cfg.ExcludeDirs)
				assert.Empty(t, cfg.ExcludeNames)
				assert.Equal(t, "/proj/.rewriterc.yml", cfg.Location())
			},
		},
		{
			name: "yaml_empty_exclude_dirs_disables_defaults",
			path: "/proj/.rewriterc.yaml",
			config: `
exclude_dirs: []
rules: [{from: a, to: b}]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.ExcludeDirs)
			},
		},
		{
			name: "json",
			path: "/proj/config.json",
			config: `{
	"root": "/abs/site",
	"encoding": "latin1",
	"exclude_names": ["tailwind.config"],
	"exclude_globs": ["**/generated/**"],
	"rules": [{"kind": "pattern", "from": "bg-(red|blue)-500", "to": "bg-$1-brand"}]
}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/abs/site", cfg.Root)
				assert.Equal(t, "windows-1252", cfg.Codec().Name())
				assert.Equal(t, []string{"**/generated/**"}, cfg.ExcludeGlobs)
				res := cfg.RuleSet().Apply("bg-red-500")
				assert.Equal(t, "bg-red-brand", res.ModifiedContent)
			},
		},
		{
			name: "hcl",
			path: "/proj/rewrite.hcl",
			config: `
presets      = ["orange-to-accent"]
extensions   = concat(default_extensions, [".vue"])
exclude_dirs = concat(default_exclude_dirs, ["dist"])

rule "pattern" {
  from = "ring-(?P<kind>[a-z]+)-orange"
  to   = "ring-$${kind}-accent"
}

rule "literal" {
  from = upper("#fff")
  to   = "white"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/proj", cfg.Root)
				assert.Equal(t, []string{".js", ".jsx", ".ts", ".tsx", ".vue"}, cfg.Extensions)
				assert.Equal(t, []string{"node_modules", ".git", ".next", "dist"}, cfg.ExcludeDirs)
				require.Len(t, cfg.Rules, 2)
				assert.Equal(t, text.Rule{Kind: text.KindPattern, From: "ring-(?P<kind>[a-z]+)-orange", To: "ring-${kind}-accent"}, cfg.Rules[0])
				assert.Equal(t, "#FFF", cfg.Rules[1].From)

				res := cfg.RuleSet().Apply("ring-focus-orange #FFF")
				assert.Equal(t, "ring-focus-accent white", res.ModifiedContent)
			},
		},
		{
			name: "rc_file_as_yaml",
			path: "/proj/.rewriterc",
			config: `
presets: [surfaces]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"surfaces"}, cfg.Presets)
				assert.Equal(t, 12, cfg.RuleSet().Len())
			},
		},
		{
			name: "rc_file_as_hcl",
			path: "/proj/.rewriterc",
			config: `
presets = ["colors", "cream-colors"]

rule "literal" {
  from = "old"
  to   = "new"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"colors", "cream-colors"}, cfg.Presets)
				assert.Equal(t, 20+15+1, cfg.RuleSet().Len())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadString(t, tt.path, tt.config)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		config      string
		errContains string
		invalid     bool
		is          error
		field       string
	}{
		{
			name:        "unknown_yaml_field",
			path:        "/p/.rewriterc.yaml",
			config:      "rulez: []\n",
			errContains: "field rulez not found",
		},
		{
			name:        "unknown_json_field",
			path:        "/p/.rewriterc.json",
			config:      `{"rules": [], "force": true}`,
			errContains: `unknown field "force"`,
		},
		{
			name:        "hcl_rule_without_label",
			path:        "/p/.rewriterc.hcl",
			config:      "rule {\n  from = \"a\"\n  to = \"b\"\n}\n",
			errContains: "decoding HCL",
		},
		{
			name:        "rc_neither_format",
			path:        "/p/.rewriterc",
			config:      "rules: [\n",
			errContains: "not valid YAML",
		},
		{
			name:        "unsupported_extension",
			path:        "/p/rewriterc.toml",
			config:      "rules = []",
			errContains: "no parser found",
		},
		{
			name:        "no_rules",
			path:        "/p/.rewriterc.yaml",
			config:      "root: .\n",
			errContains: "no rules configured",
			invalid:     true,
			field:       "rules",
		},
		{
			name:        "unknown_preset",
			path:        "/p/.rewriterc.yaml",
			config:      "presets: [rainbow]\n",
			errContains: `unknown preset "rainbow"`,
			invalid:     true,
			is:          presets.ErrUnknownPreset,
			field:       "presets",
		},
		{
			name:        "invalid_pattern",
			path:        "/p/.rewriterc.yaml",
			config:      "rules: [{kind: pattern, from: 'bg-(', to: x}]\n",
			errContains: "rule 0",
			invalid:     true,
			is:          text.ErrInvalidRule,
			field:       "rules",
		},
		{
			name:        "template_group_out_of_range",
			path:        "/p/.rewriterc.yaml",
			config:      "rules: [{kind: pattern, from: 'bg-(a)', to: 'x-$2'}]\n",
			errContains: "group 2",
			invalid:     true,
			is:          text.ErrInvalidRule,
			field:       "rules",
		},
		{
			name:        "unknown_encoding",
			path:        "/p/.rewriterc.yaml",
			config:      "encoding: klingon\nrules: [{from: a, to: b}]\n",
			errContains: "klingon",
			invalid:     true,
			field:       "encoding",
		},
		{
			name:        "invalid_glob",
			path:        "/p/.rewriterc.yaml",
			config:      "exclude_globs: ['[']\nrules: [{from: a, to: b}]\n",
			errContains: "invalid glob pattern",
			invalid:     true,
			field:       "exclude_globs",
		},
		{
			name:        "empty_extension",
			path:        "/p/.rewriterc.yaml",
			config:      "extensions: [.js, '']\nrules: [{from: a, to: b}]\n",
			errContains: "empty extension at index 1",
			invalid:     true,
			field:       "extensions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadString(t, tt.path, tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig), "ErrInvalidConfig match")
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "error should match %v", tt.is)
			}
			if tt.field != "" {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.field, verr.Field)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(testContext(t), afero.NewMemMapFs(), "/nope/.rewriterc.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidateIsRepeatable(t *testing.T) {
	cfg := &Config{Presets: []string{"neutrals"}}
	require.NoError(t, cfg.Validate())
	first := append([]string(nil), cfg.ExcludeDirs...)

	cfg.Extensions = append(cfg.Extensions, "mjs")
	require.NoError(t, cfg.Validate())

	assert.Equal(t, first, cfg.ExcludeDirs, "preset exclusions should not be duplicated")
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, ".mjs", cfg.Extensions[len(cfg.Extensions)-1])
	assert.Equal(t, 8, cfg.RuleSet().Len())
}

func TestFilterAndWalkOptions(t *testing.T) {
	cfg := &Config{
		ExcludeNames: []string{"tailwind.config"},
		ExcludeGlobs: []string{"legacy/**"},
		Rules:        []text.Rule{{From: "a", To: "b"}},
	}
	require.NoError(t, cfg.Validate())

	f := cfg.Filter()
	assert.True(t, f.Accept("src/app.tsx"))
	assert.False(t, f.Accept("tailwind.config.js"))
	assert.False(t, f.Accept("legacy/old.js"))
	assert.False(t, f.Accept("styles.css"))

	opts := cfg.WalkOptions()
	assert.Equal(t, []string{"node_modules", ".git", ".next"}, opts.ExcludeDirs)
	assert.Equal(t, []string{"legacy/**"}, opts.ExcludeGlobs)

	assert.Equal(t, ". [.js .jsx .ts .tsx] 1 rules", cfg.String())
}

func TestFind(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/empty", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/p/.rewriterc.hcl", []byte(""), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/p/.rewriterc.json", []byte("{}"), 0o644))
	require.NoError(t, fsys.MkdirAll("/d/.rewriterc.yaml", 0o755))

	got, err := Find(fsys, "/p")
	require.NoError(t, err)
	assert.Equal(t, "/p/.rewriterc.json", got, "json comes before hcl")

	_, err = Find(fsys, "/empty")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoConfig))

	_, err = Find(fsys, "/d")
	assert.True(t, errors.Is(err, ErrNoConfig), "directories are not config files")
}

func TestGetParser(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{name: "yaml_file", filename: "/a/.rewriterc.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: "config.yml", want: &YAMLParser{}},
		{name: "json_file", filename: "config.JSON", want: &JSONParser{}},
		{name: "hcl_file", filename: "dir/config.hcl", want: &HCLParser{}},
		{name: "rc_file", filename: "/a/b/.rewriterc", want: &RCParser{}},
		{name: "unknown_extension", filename: "config.txt", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should return nil for unknown extension")
				return
			}
			require.NotNil(t, got, "should return a parser")
			assert.IsType(t, tt.want, got, "should return correct parser type")
		})
	}
}

func TestRegister(t *testing.T) {
	original := parsers
	defer func() { parsers = original }()

	parsers = nil
	p := &YAMLParser{}
	Register(p)
	assert.Len(t, parsers, 1)
	assert.Same(t, p, GetParser("x.yaml"))
	assert.Nil(t, GetParser("x.json"))
}

func TestApply(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/proj/.rewriterc.yaml", []byte(`
presets: [surfaces]
exclude_names: [tailwind.config]
`), 0o644))

	cfg, err := Parse(testContext(t), fsys, "/proj/.rewriterc.yaml")
	require.NoError(t, err)
	assert.Nil(t, cfg.RuleSet(), "Parse does not validate")

	cfg.Apply(Overrides{
		Root:         "web",
		Presets:      []string{"surfaces", "colors"},
		Extensions:   []string{"vue"},
		ExcludeDirs:  []string{"dist"},
		ExcludeNames: []string{"tailwind.config", ".min."},
		Encoding:     "utf8",
	})
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "web", cfg.Root, "command line root is not relative to the config file")
	assert.Equal(t, []string{"surfaces", "colors"}, cfg.Presets)
	assert.Equal(t, []string{".vue"}, cfg.Extensions)
	assert.Equal(t, []string{"node_modules", ".git", ".next", "dist"}, cfg.ExcludeDirs)
	assert.Equal(t, []string{"tailwind.config", ".min."}, cfg.ExcludeNames)
	assert.Equal(t, "utf-8", cfg.Codec().Name())
	assert.Equal(t, 12+20, cfg.RuleSet().Len())
}

func TestApplyWithoutFile(t *testing.T) {
	cfg := &Config{}
	cfg.Apply(Overrides{Presets: []string{"system-colors"}})
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, []string{"node_modules", ".git", ".next"}, cfg.ExcludeDirs)
	assert.Equal(t, 12, cfg.RuleSet().Len())
	assert.Empty(t, cfg.Location())
}
