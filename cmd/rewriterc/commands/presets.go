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
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/presets"
	"gitlab.com/tozd/go/errors"
)

// NewPresetsCmd creates the presets command
func NewPresetsCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "List the built-in rule sets, or the rules of one",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return presets.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				p, err := presets.Get(args[0])
				if err != nil {
					return err
				}
				o.Logger.Header(p.Name + ": " + p.Description)
				if err := renderRules(out, p.Rules); err != nil {
					return err
				}
				if len(p.ExcludeDirs) > 0 {
					o.Logger.Infof("prunes directories containing %s", strings.Join(p.ExcludeDirs, ", "))
				}
				if len(p.ExcludeNames) > 0 {
					o.Logger.Infof("skips files containing %s", strings.Join(p.ExcludeNames, ", "))
				}
				return nil
			}

			all, err := presets.List()
			if err != nil {
				return errors.Errorf("listing presets: %w", err)
			}

			rows := pterm.TableData{{"Name", "Rules", "Excludes", "Description"}}
			for _, p := range all {
				excludes := append(append([]string(nil), p.ExcludeDirs...), p.ExcludeNames...)
				rows = append(rows, []string{p.Name, strconv.Itoa(len(p.Rules)), strings.Join(excludes, ", "), p.Description})
			}
			return renderTable(out, rows)
		},
	}

	return cmd
}
