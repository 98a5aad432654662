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
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
)

// NewCheckCmd creates the check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "check [root]",
		Short: "Validate the configuration and list the rules it compiles to",
		Long: `Check loads the configuration exactly like run does, compiles every rule
and prints them in the order they will run. No file is read or written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) == 1 {
				root = args[0]
			}

			cfg, err := flags.load(cmd.Context(), o.Fs, root)
			if err != nil {
				return err
			}

			source := cfg.Location()
			if source == "" {
				source = "flags"
			}
			o.Logger.Header("config from " + source)
			if cfg.Location() == "" {
				o.Logger.Warning("no config file found, rules come from --preset only")
			}

			if err := renderRules(cmd.OutOrStdout(), cfg.RuleSet().Rules()); err != nil {
				return err
			}

			o.Logger.Infof("root %s, extensions %s", cfg.Root, strings.Join(cfg.Extensions, " "))
			if len(cfg.ExcludeDirs) > 0 {
				o.Logger.Infof("pruning directories containing %s", strings.Join(cfg.ExcludeDirs, ", "))
			}
			if len(cfg.ExcludeNames) > 0 {
				o.Logger.Infof("skipping files containing %s", strings.Join(cfg.ExcludeNames, ", "))
			}
			if len(cfg.ExcludeGlobs) > 0 {
				o.Logger.Infof("skipping paths matching %s", strings.Join(cfg.ExcludeGlobs, ", "))
			}
			o.Logger.Successf("%d rules compiled (%s)", cfg.RuleSet().Len(), cfg.Codec().Name())

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
