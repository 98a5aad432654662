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
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/log"
	"github.com/walteh/rewriterc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// ErrFilesFailed is returned by run when at least one file could not be
// rewritten. The files themselves are reported as they fail.
var ErrFilesFailed = errors.Base("files failed")

// NewRunCmd creates the run command
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	var (
		flags    configFlags
		dryRun   bool
		showDiff bool
	)

	cmd := &cobra.Command{
		Use:   "run [root]",
		Short: "Rewrite every matching file under root",
		Long: `Run walks root (default: the config's root, or the current directory),
skips excluded directories and files, applies the rules in order to every
remaining file and writes back only the files whose text changed.

Rules come from --preset and from the config file, presets first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			root := ""
			if len(args) == 1 {
				root = args[0]
			}

			cfg, err := flags.load(ctx, o.Fs, root)
			if err != nil {
				return err
			}

			opOpts, err := operation.OptionsFromConfig(o.Fs, cfg)
			if err != nil {
				return errors.Errorf("preparing rewrite: %w", err)
			}
			logger := log.FromContext(ctx)
			opOpts.Logger = logger
			opOpts.DryRun = dryRun
			opOpts.Diff = showDiff

			op, err := operation.New(opOpts)
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			if dryRun {
				logger.Warningf("dry run, nothing under %s will be written", cfg.Root)
			}

			result, err := op.Run(ctx)
			if err != nil {
				return errors.Errorf("running rewrite: %w", err)
			}

			logger.Summary(result.Summary())

			if failures := result.Failures(); len(failures) > 0 {
				return errors.Errorf("%d of %d %w", len(failures), len(result.Files), ErrFilesFailed)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report what would change without writing")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff of every change")

	return cmd
}
