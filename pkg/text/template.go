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

package text

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// normalizeTemplate rewrites backslash group references (\1, \g<name>) into
// the ${1} / ${name} form understood by regexp.Expand.
func normalizeTemplate(tmpl string) string {
	if !strings.Contains(tmpl, `\`) {
		return tmpl
	}

	var b strings.Builder
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '\\' || i+1 >= len(tmpl) {
			b.WriteByte(c)
			continue
		}

		next := tmpl[i+1]
		switch {
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(tmpl) && j < i+3 && tmpl[j] >= '0' && tmpl[j] <= '9' {
				j++
			}
			b.WriteString("${" + tmpl[i+1:j] + "}")
			i = j - 1
		case next == 'g' && i+2 < len(tmpl) && tmpl[i+2] == '<':
			end := strings.IndexByte(tmpl[i+3:], '>')
			if end < 0 {
				b.WriteByte(c)
				continue
			}
			b.WriteString("${" + tmpl[i+3:i+3+end] + "}")
			i = i + 3 + end
		case next == '\\':
			b.WriteByte('\\')
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// templateRefs lists the group names and numbers a template expands, using
// the same scanning rules as regexp.Expand.
func templateRefs(tmpl string) []string {
	var refs []string
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '$' || i+1 >= len(tmpl) {
			continue
		}
		if tmpl[i+1] == '$' {
			i++
			continue
		}
		name, n := extractRef(tmpl[i+1:])
		if n == 0 {
			continue
		}
		refs = append(refs, name)
		i += n
	}
	return refs
}

// extractRef reads a group name after a '$' and returns it with the number of
// bytes consumed, or 0 if no valid reference follows.
func extractRef(s string) (string, int) {
	brace := s[0] == '{'
	rest := s
	if brace {
		rest = s[1:]
	}

	j := 0
	for j < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[j:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		j += size
	}
	if j == 0 {
		return "", 0
	}
	if !brace {
		return rest[:j], j
	}
	if j >= len(rest) || rest[j] != '}' {
		return "", 0
	}
	return rest[:j], j + 2
}

// checkTemplate fails when the template references a group the pattern lacks.
func checkTemplate(re *regexp.Regexp, tmpl string) error {
	for _, ref := range templateRefs(tmpl) {
		if num, err := strconv.Atoi(ref); err == nil {
			if num > re.NumSubexp() {
				return errors.Errorf("template references group %d but pattern %q has %d groups", num, re.String(), re.NumSubexp())
			}
			continue
		}
		if re.SubexpIndex(ref) < 0 {
			return errors.Errorf("template references unknown group %q in pattern %q", ref, re.String())
		}
	}
	return nil
}
