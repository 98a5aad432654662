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

package main

import (
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/commands"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd creates the command tree working on fsys
func newRootCmd(fsys afero.Fs) *cobra.Command {
	rootOpts := &opts.RootOpts{Fs: fsys}

	cmd := &cobra.Command{
		Use:   "rewriterc",
		Short: "Bulk rewrite class names and other tokens across a source tree",
		Long: `rewriterc applies an ordered list of literal or pattern replacements to
every matching file under a directory and writes back only the files that
changed. Rules come from a .rewriterc config file, from built-in presets,
or both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := colorEnabled(rootOpts.ColorMode, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			setupColor(enabled)

			zlog := setupLogging(cmd.ErrOrStderr(), !enabled, rootOpts.Debug)

			// console lines are mirrored into zerolog only when debugging
			mirror := zerolog.Nop()
			if rootOpts.Debug {
				mirror = zlog
			}
			rootOpts.Logger = log.New(cmd.OutOrStdout(), mirror)

			ctx := zlog.WithContext(cmd.Context())
			cmd.SetContext(log.NewContext(ctx, rootOpts.Logger))
			return nil
		},
	}

	addRootFlags(cmd, rootOpts)

	cmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewPresetsCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&o.ColorMode, "color", "auto", "colorize output: auto, always or never")
}

// colorEnabled resolves --color against the output writer
func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, errors.Errorf("invalid --color %q (want auto, always or never)", mode)
	}
}

func setupColor(enabled bool) {
	color.NoColor = !enabled
	if enabled {
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
	}
}

// setupLogging configures zerolog based on flags
func setupLogging(w io.Writer, noColor, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
