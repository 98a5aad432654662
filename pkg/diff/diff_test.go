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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified(t *testing.T) {
	before := "<div>\n  <p className=\"text-gray-600\">hi</p>\n</div>\n"
	after := "<div>\n  <p className=\"text-brand-text-02\">hi</p>\n</div>\n"

	got, err := Unified("src/hi.jsx", before, after, DefaultContext)
	require.NoError(t, err)

	want := "--- a/src/hi.jsx\n" +
		"+++ b/src/hi.jsx\n" +
		"@@ -1,3 +1,3 @@\n" +
		" <div>\n" +
		"-  <p className=\"text-gray-600\">hi</p>\n" +
		"+  <p className=\"text-brand-text-02\">hi</p>\n" +
		" </div>\n"
	assert.Equal(t, want, got)
}

func TestUnified_NoChange(t *testing.T) {
	got, err := Unified("a.js", "same\n", "same\n", DefaultContext)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnified_MissingFinalNewline(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{
			name:   "both_unterminated",
			before: "a\nbg-primary",
			after:  "a\nbg-accent",
			want: "--- a/x.js\n+++ b/x.js\n@@ -1,2 +1,2 @@\n" +
				" a\n" +
				"-bg-primary\n\\ No newline at end of file\n" +
				"+bg-accent\n\\ No newline at end of file\n",
		},
		{
			name:   "newline_added",
			before: "a",
			after:  "a\n",
			want: "--- a/x.js\n+++ b/x.js\n@@ -1 +1 @@\n" +
				"-a\n\\ No newline at end of file\n" +
				"+a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unified("x.js", tt.before, tt.after, DefaultContext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a\n", "b" + noNewline}, splitLines("a\nb"))
	assert.Empty(t, splitLines(""))
}
