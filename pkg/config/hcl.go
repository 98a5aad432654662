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
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/rewriterc/pkg/text"
	"github.com/walteh/rewriterc/pkg/walk"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
// Rules are blocks labelled with their kind:
//
//	rule "pattern" {
//	  from = "text-(gray|slate)-600"
//	  to   = "text-brand-text-02"
//	}
//
// HCL interpolates "${...}", so group references are written $1 or $${name}.
type HCLParser struct{}

type hclRule struct {
	Kind string `hcl:"kind,label"`
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

type hclConfig struct {
	Root         string    `hcl:"root,optional"`
	Presets      []string  `hcl:"presets,optional"`
	Extensions   []string  `hcl:"extensions,optional"`
	ExcludeDirs  []string  `hcl:"exclude_dirs,optional"`
	ExcludeNames []string  `hcl:"exclude_names,optional"`
	ExcludeGlobs []string  `hcl:"exclude_globs,optional"`
	Encoding     string    `hcl:"encoding,optional"`
	Rules        []hclRule `hcl:"rule,block"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, filename string, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(filename), &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Root:         hclCfg.Root,
		Presets:      hclCfg.Presets,
		Extensions:   hclCfg.Extensions,
		ExcludeDirs:  hclCfg.ExcludeDirs,
		ExcludeNames: hclCfg.ExcludeNames,
		ExcludeGlobs: hclCfg.ExcludeGlobs,
		Encoding:     hclCfg.Encoding,
	}
	for _, r := range hclCfg.Rules {
		cfg.Rules = append(cfg.Rules, text.Rule{
			Kind: text.RuleKind(r.Kind),
			From: r.From,
			To:   r.To,
		})
	}

	return cfg, nil
}

// evalContext exposes the defaults so a file can extend them, e.g.
// exclude_dirs = concat(default_exclude_dirs, ["dist"])
func evalContext(filename string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"config_dir":           cty.StringVal(filepath.Dir(filename)),
			"default_extensions":   stringList(DefaultExtensions),
			"default_exclude_dirs": stringList(walk.DefaultExcludeDirs),
		},
		Functions: map[string]function.Function{
			"concat": stdlib.ConcatFunc,
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
		},
	}
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}
