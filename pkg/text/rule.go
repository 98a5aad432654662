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
	"fmt"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidRule is the base of every rule compilation failure.
var ErrInvalidRule = errors.Base("invalid rule")

// 🔤 RuleKind selects how a rule matches text
type RuleKind string

const (
	KindLiteral RuleKind = "literal" // plain substring
	KindPattern RuleKind = "pattern" // regular expression with capture groups
)

// 🔄 Rule is one matcher/replacement pair as written in configuration.
//
// For pattern rules To is a template: $1, ${1} and ${name} expand capture
// groups, $$ is a literal dollar, and \1 / \g<name> are accepted and rewritten
// to ${1} / ${name}.
type Rule struct {
	Kind RuleKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	From string   `json:"from" yaml:"from"`
	To   string   `json:"to" yaml:"to"`
}

// String returns a short human readable form of the rule
func (r Rule) String() string {
	kind := r.Kind
	if kind == "" {
		kind = KindLiteral
	}
	return fmt.Sprintf("%s %q -> %q", kind, r.From, r.To)
}

// RuleError reports which rule of a set failed to compile.
type RuleError struct {
	Index int
	Rule  Rule
	Err   error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %d (%s): %v", e.Index, e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// Is makes every RuleError match ErrInvalidRule.
func (e *RuleError) Is(target error) bool {
	return target == ErrInvalidRule
}

// compiledRule is a validated rule ready to run
type compiledRule struct {
	rule     Rule
	re       *regexp.Regexp // nil for literal rules
	template string
}

func compileRule(r Rule) (*compiledRule, error) {
	if r.From == "" {
		return nil, errors.New("from is required")
	}

	switch r.Kind {
	case "", KindLiteral:
		r.Kind = KindLiteral
		return &compiledRule{rule: r}, nil
	case KindPattern:
	default:
		return nil, errors.Errorf("unknown kind %q (want %q or %q)", r.Kind, KindLiteral, KindPattern)
	}

	re, err := regexp.Compile(r.From)
	if err != nil {
		return nil, errors.Errorf("compiling pattern: %w", err)
	}
	if re.MatchString("") {
		return nil, errors.Errorf("pattern %q matches the empty string", r.From)
	}

	template := normalizeTemplate(r.To)
	if err := checkTemplate(re, template); err != nil {
		return nil, err
	}

	return &compiledRule{rule: r, re: re, template: template}, nil
}

// apply runs the rule over the whole text and returns the new text and the
// number of replacements made.
func (c *compiledRule) apply(text string) (string, int) {
	if c.re == nil {
		n := strings.Count(text, c.rule.From)
		if n == 0 {
			return text, 0
		}
		return strings.ReplaceAll(text, c.rule.From, c.rule.To), n
	}

	matches := c.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0
	}

	buf := make([]byte, 0, len(text))
	last := 0
	for _, m := range matches {
		buf = append(buf, text[last:m[0]]...)
		buf = c.re.ExpandString(buf, c.template, text, m)
		last = m[1]
	}
	buf = append(buf, text[last:]...)

	return string(buf), len(matches)
}
