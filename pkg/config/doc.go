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

/*
Package config loads and validates rewriterc configuration.

🎯 Purpose:
- Reads a config file in YAML, JSON or HCL
- Fills defaults and normalizes values
- Resolves presets and compiles the final rule set

🔄 Flow:
 1. Find locates .rewriterc.{yaml,yml,json,hcl} or a bare .rewriterc
 2. GetParser picks a registered Parser by file name
 3. Validate applies defaults, merges preset exclusions and compiles rules
 4. Callers read RuleSet, Codec, Filter and WalkOptions

📝 Example (YAML):

	root: src
	presets: [neutrals]
	extensions: [.js, .jsx, .ts, .tsx]
	exclude_names: [tailwind.config]
	rules:
	  - kind: pattern
	    from: 'text-(gray|slate)-600'
	    to: text-brand-text-02
	  - from: bg-creamy-white
	    to: bg-surface-warm

Preset rules run before the file's own rules, in the order presets are listed.
A nil exclude_dirs means node_modules, .git and .next; an empty list disables
directory pruning. Every validation failure matches ErrInvalidConfig.
*/
package config
