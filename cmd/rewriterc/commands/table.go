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

package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/walteh/rewriterc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// renderTable prints rows with the first row as header
func renderTable(w io.Writer, rows pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// renderRules prints one row per rule, numbered from 1 in run order
func renderRules(w io.Writer, rules []text.Rule) error {
	rows := pterm.TableData{{"#", "Kind", "From", "To"}}
	for i, r := range rules {
		kind := r.Kind
		if kind == "" {
			kind = text.KindLiteral
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), string(kind), r.From, r.To})
	}
	return renderTable(w, rows)
}
