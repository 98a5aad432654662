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

package walk

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// DefaultExcludeDirs are pruned unless configuration says otherwise
var DefaultExcludeDirs = []string{"node_modules", ".git", ".next"}

// VisitFunc is called for every non-directory entry below the root, in
// lexical order. Symlinks are passed as is, info describes the link. rel is the root-relative slash path. A non-nil err means the entry
// could not be read; returning an error stops the walk.
type VisitFunc func(path, rel string, info fs.FileInfo, err error) error

// 🚶 Walker enumerates files under a root, pruning excluded directories
type Walker struct {
	fs           afero.Fs
	root         string
	excludeDirs  []string
	excludeGlobs []string
}

// Options configures a Walker
type Options struct {
	// ExcludeDirs prunes any directory whose name contains one of these
	ExcludeDirs []string
	// ExcludeGlobs prunes directories whose root-relative path matches
	ExcludeGlobs []string
}

// New creates a walker rooted at root
func New(fsys afero.Fs, root string, opts Options) (*Walker, error) {
	if err := validateGlobs(opts.ExcludeGlobs); err != nil {
		return nil, err
	}
	return &Walker{
		fs:           fsys,
		root:         filepath.Clean(root),
		excludeDirs:  opts.ExcludeDirs,
		excludeGlobs: opts.ExcludeGlobs,
	}, nil
}

// Root returns the cleaned root path
func (w *Walker) Root() string {
	return w.root
}

// Pruned reports whether a directory is excluded. The root never is.
func (w *Walker) Pruned(rel string) bool {
	if rel == "." || rel == "" {
		return false
	}
	return containsAny(filepath.Base(rel), w.excludeDirs) || matchAny(w.excludeGlobs, rel)
}

// Walk visits every non-excluded file exactly once. Excluded directories are
// never read and symlinked directories are not followed.
func (w *Walker) Walk(ctx context.Context, fn VisitFunc) error {
	logger := zerolog.Ctx(ctx)

	info, err := w.fs.Stat(w.root)
	if err != nil {
		return errors.Errorf("reading root %s: %w", w.root, err)
	}
	if !info.IsDir() {
		return errors.Errorf("root %s is not a directory", w.root)
	}

	return afero.Walk(w.fs, w.root, func(path string, info fs.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return errors.Errorf("relativizing %s: %w", path, relErr)
		}
		rel = filepath.ToSlash(rel)

		if err != nil {
			// afero reports an unreadable directory after visiting it, so
			// returning nil here skips its contents and keeps walking
			return fn(path, rel, info, err)
		}

		if info.IsDir() {
			if w.Pruned(rel) {
				logger.Debug().Str("dir", rel).Msg("pruning excluded directory")
				return filepath.SkipDir
			}
			return nil
		}

		return fn(path, rel, info, nil)
	})
}
