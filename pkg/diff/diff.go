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

package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gitlab.com/tozd/go/errors"
)

// DefaultContext is the number of unchanged lines shown around each hunk
const DefaultContext = 3

// Unified renders a git-style unified diff of one file's rewrite. It returns
// "" when before and after are equal.
func Unified(path, before, after string, context int) (string, error) {
	if before == after {
		return "", nil
	}

	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(before),
		B:        splitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  context,
	})
	if err != nil {
		return "", errors.Errorf("diffing %s: %w", path, err)
	}
	return out, nil
}

// noNewline follows a last line that has no line ending, as git prints it
const noNewline = "\n\\ No newline at end of file\n"

// splitLines is difflib.SplitLines without the phantom empty last line it
// produces for text ending in a newline. An unterminated last line carries
// the no-newline marker so the hunk shows it.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += noNewline
	return lines
}
