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

package operation

import (
	"context"
	"io"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/rewriterc/pkg/config"
	"github.com/walteh/rewriterc/pkg/diff"
	"github.com/walteh/rewriterc/pkg/log"
	"github.com/walteh/rewriterc/pkg/status"
	"github.com/walteh/rewriterc/pkg/text"
	"github.com/walteh/rewriterc/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 🎮 Operator rewrites a tree
type Operator interface {
	// Run walks the tree once and rewrites every accepted file whose text
	// changes. Per-file failures land in the Result; the returned error is
	// reserved for failures that stop the whole run (missing root, cancelled
	// context). The Result is never nil.
	Run(ctx context.Context) (*Result, error)
}

// 🔧 Options contains everything a run needs. Build it once, before any file
// is touched.
type Options struct {
	// Fs is the filesystem files are read from and written to
	Fs afero.Fs
	// Walker enumerates candidate files
	Walker *walk.Walker
	// Filter decides which discovered files are rewritten
	Filter *walk.Filter
	// Rules is the compiled rule set applied to every accepted file
	Rules *text.RuleSet
	// Codec decodes and re-encodes file content, nil means utf-8
	Codec *text.Codec
	// Logger receives one line per changed or failed file, nil discards
	Logger *log.Logger
	// DryRun reports changes without writing them
	DryRun bool
	// Diff prints a unified diff of every change
	Diff bool
}

// 🏭 OptionsFromConfig builds the walker, filter, rules and codec from a
// validated config. Logger, DryRun and Diff are left for the caller.
func OptionsFromConfig(fsys afero.Fs, cfg *config.Config) (Options, error) {
	if cfg.RuleSet() == nil {
		return Options{}, errors.New("config has not been validated")
	}

	w, err := walk.New(fsys, cfg.Root, cfg.WalkOptions())
	if err != nil {
		return Options{}, errors.Errorf("creating walker: %w", err)
	}

	return Options{
		Fs:     fsys,
		Walker: w,
		Filter: cfg.Filter(),
		Rules:  cfg.RuleSet(),
		Codec:  cfg.Codec(),
	}, nil
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Fs == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.Walker == nil {
		return nil, errors.Errorf("walker is required")
	}
	if opts.Filter == nil {
		return nil, errors.Errorf("filter is required")
	}
	if opts.Rules == nil {
		return nil, errors.Errorf("rules are required")
	}
	if err := opts.Filter.Validate(); err != nil {
		return nil, errors.Errorf("validating filter: %w", err)
	}

	codec := opts.Codec
	if codec == nil {
		var err error
		if codec, err = text.LookupCodec(text.DefaultEncoding); err != nil {
			return nil, err
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, zerolog.Nop())
	}

	return &operator{
		fs:     opts.Fs,
		walker: opts.Walker,
		filter: opts.Filter,
		rules:  opts.Rules,
		codec:  codec,
		logger: logger,
		dryRun: opts.DryRun,
		diff:   opts.Diff,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	fs     afero.Fs
	walker *walk.Walker
	filter *walk.Filter
	rules  *text.RuleSet
	codec  *text.Codec
	logger *log.Logger
	dryRun bool
	diff   bool
}

// 🏃 Run implements Operator
func (o *operator) Run(ctx context.Context) (*Result, error) {
	zlog := zerolog.Ctx(ctx)
	zlog.Debug().
		Str("root", o.walker.Root()).
		Int("rules", o.rules.Len()).
		Str("encoding", o.codec.Name()).
		Bool("dry_run", o.dryRun).
		Msg("starting rewrite")

	result := &Result{DryRun: o.dryRun}

	err := o.walker.Walk(ctx, func(path, rel string, info fs.FileInfo, err error) error {
		if err != nil {
			// unreadable entry, report it and keep walking
			o.record(ctx, result, FileResult{
				Path:   path,
				Rel:    rel,
				Status: status.StatusFailed,
				Err:    readError(path, err),
			}, "")
			return nil
		}

		res, patch := o.processFile(ctx, path, rel, info)
		o.record(ctx, result, res, patch)
		return nil
	})
	if err != nil {
		return result, errors.Errorf("walking %s: %w", o.walker.Root(), err)
	}

	return result, nil
}

func (o *operator) record(ctx context.Context, result *Result, res FileResult, patch string) {
	result.add(res)

	op := log.FileOperation{
		Path:         res.Path,
		Status:       res.Status,
		Replacements: res.Replacements,
	}
	if res.Err != nil {
		op.Err = res.Err
	}
	o.logger.LogFileOperation(ctx, op)

	if patch != "" {
		o.logger.LogDiff(patch)
	}
}

// 📄 processFile moves one discovered file to a terminal state. The second
// return value is a unified diff when diffs are enabled and the file changed.
func (o *operator) processFile(ctx context.Context, path, rel string, info fs.FileInfo) (FileResult, string) {
	res := FileResult{Path: path, Rel: rel}

	if !o.filter.Accept(rel) {
		res.Status = status.StatusRejected
		return res, ""
	}

	// symlinks and devices are counted, never read through
	if !info.Mode().IsRegular() {
		zerolog.Ctx(ctx).Debug().Str("path", rel).Str("mode", info.Mode().String()).Msg("rejecting irregular file")
		res.Status = status.StatusRejected
		return res, ""
	}

	fail := func(fe *FileError) (FileResult, string) {
		res.Status = status.StatusFailed
		res.Err = fe
		return res, ""
	}

	data, err := afero.ReadFile(o.fs, path)
	if err != nil {
		return fail(readError(path, err))
	}

	original, err := o.codec.Decode(data)
	if err != nil {
		return fail(readError(path, err))
	}

	out := o.rules.Apply(original)
	res.Replacements = out.ReplacementCount

	if !out.WasModified {
		res.Status = status.StatusUnchanged
		return res, ""
	}

	encoded, err := o.codec.Encode(out.ModifiedContent)
	if err != nil {
		return fail(writeError(path, err))
	}

	var patch string
	if o.diff {
		if patch, err = diff.Unified(rel, original, out.ModifiedContent, diff.DefaultContext); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("file", path).Msg("rendering diff")
		}
	}

	if o.dryRun {
		res.Status = status.StatusWouldUpdate
		return res, patch
	}

	if err := writeFileAtomic(o.fs, path, encoded, info.Mode().Perm()); err != nil {
		return fail(writeError(path, err))
	}

	res.Status = status.StatusUpdated
	return res, patch
}
