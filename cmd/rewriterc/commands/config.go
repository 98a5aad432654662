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
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// configFlags are the flags every command that needs a config shares
type configFlags struct {
	configFile string
	overrides  config.Overrides
}

func (f *configFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.configFile, "config", "c", "", "config file (default: first .rewriterc.* found in root)")
	fl.StringSliceVarP(&f.overrides.Presets, "preset", "p", nil, "preset to apply before the config's rules, repeatable")
	fl.StringSliceVar(&f.overrides.Extensions, "ext", nil, "file extensions to rewrite, replaces the configured list")
	fl.StringSliceVar(&f.overrides.ExcludeDirs, "exclude-dir", nil, "directory name fragment to prune, repeatable")
	fl.StringSliceVar(&f.overrides.ExcludeNames, "exclude-name", nil, "file name fragment to skip, repeatable")
	fl.StringArrayVar(&f.overrides.ExcludeGlobs, "exclude-glob", nil, "root-relative glob to skip, repeatable")
	fl.StringVar(&f.overrides.Encoding, "encoding", "", "file encoding (default utf-8)")
}

// load finds or reads the config file, layers the flags over it and
// validates the result. root is the positional argument, possibly empty.
func (f *configFlags) load(ctx context.Context, fsys afero.Fs, root string) (*config.Config, error) {
	logger := zerolog.Ctx(ctx)

	path := f.configFile
	if path == "" {
		dir := root
		if dir == "" {
			dir = "."
		}
		found, err := config.Find(fsys, dir)
		switch {
		case err == nil:
			path = found
		case errors.Is(err, config.ErrNoConfig):
			logger.Debug().Str("dir", dir).Msg("no config file, using flags only")
		default:
			return nil, errors.Errorf("looking for config: %w", err)
		}
	}

	cfg := &config.Config{}
	if path != "" {
		var err error
		if cfg, err = config.Parse(ctx, fsys, path); err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
	}

	overrides := f.overrides
	overrides.Root = root
	cfg.Apply(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Str("config", cfg.Location()).Str("summary", cfg.String()).Msg("configuration ready")
	return cfg, nil
}
