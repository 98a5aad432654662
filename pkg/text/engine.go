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

// ReplacementResult contains the results of running a RuleSet over one text
type ReplacementResult struct {
	// OriginalContent is the text before any rule ran
	OriginalContent string

	// ModifiedContent is the text after the last rule ran
	ModifiedContent string

	// WasModified is true when ModifiedContent differs from OriginalContent.
	// A rule that matched but produced identical text does not set it.
	WasModified bool

	// ReplacementCount is the number of matches replaced across all rules
	ReplacementCount int

	// RuleHits holds the match count of each rule, indexed like the RuleSet
	RuleHits []int
}

// 📚 RuleSet is an ordered, immutable list of compiled rules.
//
// Rules run in order over the entire current text, so the output of rule i is
// the input of rule i+1 and a rule may match text a previous rule produced.
// Authors who want a second run to be a no-op must make sure no rule's output
// matches its own matcher; the engine does not check this.
type RuleSet struct {
	rules []*compiledRule
}

// Compile validates and compiles rules in order. The returned error wraps a
// *RuleError and matches ErrInvalidRule.
func Compile(rules []Rule) (*RuleSet, error) {
	rs := &RuleSet{rules: make([]*compiledRule, 0, len(rules))}
	for i, r := range rules {
		c, err := compileRule(r)
		if err != nil {
			return nil, &RuleError{Index: i, Rule: r, Err: err}
		}
		rs.rules = append(rs.rules, c)
	}
	return rs, nil
}

// MustCompile is like Compile but panics on an invalid rule
func MustCompile(rules ...Rule) *RuleSet {
	rs, err := Compile(rules)
	if err != nil {
		panic(err)
	}
	return rs
}

// Len returns the number of rules
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Rules returns a copy of the rules as configured, with Kind filled in
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	for i, c := range rs.rules {
		out[i] = c.rule
	}
	return out
}

// Apply runs every rule in order over text. It has no side effects.
func (rs *RuleSet) Apply(text string) *ReplacementResult {
	result := &ReplacementResult{
		OriginalContent: text,
		RuleHits:        make([]int, len(rs.rules)),
	}

	current := text
	for i, c := range rs.rules {
		var n int
		current, n = c.apply(current)
		result.RuleHits[i] = n
		result.ReplacementCount += n
	}

	result.ModifiedContent = current
	result.WasModified = current != text
	return result
}
