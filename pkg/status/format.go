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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Summary holds the totals of a run for display
type Summary struct {
	Discovered   int
	Rejected     int
	Unchanged    int
	Updated      int
	WouldUpdate  int
	Failed       int
	Replacements int
	DryRun       bool
}

// FileFormatter defines how file outcomes and run totals are rendered
type FileFormatter interface {
	// FormatFileOperation formats the line for one file, or "" if the
	// status is not shown on the console
	FormatFileOperation(path string, st FileStatus, err error) string

	// FormatSummary formats the closing line of a run
	FormatSummary(s Summary) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter prints the classic "Updating <path>" lines
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file outcome
func (f *DefaultFileFormatter) FormatFileOperation(path string, st FileStatus, err error) string {
	switch st {
	case StatusUpdated:
		return fmt.Sprintf("%s %s", color.GreenString("Updating"), path)
	case StatusWouldUpdate:
		return fmt.Sprintf("%s %s", color.YellowString("Would update"), path)
	case StatusFailed:
		msg := "unknown error"
		if err != nil {
			msg = err.Error()
		}
		return fmt.Sprintf("%s %s: %s", color.RedString("Error processing"), path, msg)
	default:
		return ""
	}
}

// FormatSummary formats run totals
func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	parts := []string{
		fmt.Sprintf("%d files scanned", s.Discovered),
		fmt.Sprintf("%d matched filter", s.Discovered-s.Rejected),
	}
	if s.DryRun {
		parts = append(parts, color.YellowString("%d would update", s.WouldUpdate))
	} else {
		parts = append(parts, color.GreenString("%d updated", s.Updated))
	}
	parts = append(parts, fmt.Sprintf("%d unchanged", s.Unchanged))
	if s.Failed > 0 {
		parts = append(parts, color.RedString("%d failed", s.Failed))
	}
	parts = append(parts, fmt.Sprintf("%d replacements", s.Replacements))

	return strings.Join(parts, ", ")
}

// FormatError formats an error message
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s %v", color.RedString("Error:"), err)
}
