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

package walk

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Filter decides which discovered files are rewrite candidates
type Filter struct {
	// Extensions are accepted name suffixes such as ".tsx" or ".d.ts"
	Extensions []string
	// ExcludeNames rejects files whose base name contains any of these
	ExcludeNames []string
	// ExcludeGlobs rejects files whose root-relative slash path matches
	ExcludeGlobs []string
}

// Validate checks the glob syntax
func (f *Filter) Validate() error {
	return validateGlobs(f.ExcludeGlobs)
}

// Accept reports whether rel, a root-relative slash path, should be rewritten
func (f *Filter) Accept(rel string) bool {
	name := path.Base(rel)

	if !hasAnySuffix(name, f.Extensions) {
		return false
	}
	if containsAny(name, f.ExcludeNames) {
		return false
	}
	return !matchAny(f.ExcludeGlobs, rel)
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func containsAny(s string, fragments []string) bool {
	for _, frag := range fragments {
		if frag != "" && strings.Contains(s, frag) {
			return true
		}
	}
	return false
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func validateGlobs(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return nil
}
