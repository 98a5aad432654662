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
	"github.com/walteh/rewriterc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📄 FileResult is the terminal state of one discovered file
type FileResult struct {
	Path         string // root-joined path, as printed
	Rel          string // root-relative slash path
	Status       status.FileStatus
	Replacements int
	Err          *FileError
}

// 📊 Result collects the per-file outcomes of a run, in walk order
type Result struct {
	Files  []FileResult
	DryRun bool
}

func (r *Result) add(f FileResult) {
	r.Files = append(r.Files, f)
}

// Count returns the number of files that ended in st
func (r *Result) Count(st status.FileStatus) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == st {
			n++
		}
	}
	return n
}

// Changed returns the paths that were (or in a dry run would be) written
func (r *Result) Changed() []string {
	var out []string
	for _, f := range r.Files {
		if f.Status.Changed() {
			out = append(out, f.Path)
		}
	}
	return out
}

// Failures returns every per-file error
func (r *Result) Failures() []*FileError {
	var out []*FileError
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f.Err)
		}
	}
	return out
}

// Summary returns the totals for printing
func (r *Result) Summary() status.Summary {
	s := status.Summary{
		Discovered:  len(r.Files),
		Rejected:    r.Count(status.StatusRejected),
		Unchanged:   r.Count(status.StatusUnchanged),
		Updated:     r.Count(status.StatusUpdated),
		WouldUpdate: r.Count(status.StatusWouldUpdate),
		Failed:      r.Count(status.StatusFailed),
		DryRun:      r.DryRun,
	}
	for _, f := range r.Files {
		s.Replacements += f.Replacements
	}
	return s
}

// Err returns nil when no file failed, otherwise an error joining every
// failure. It matches ErrRead and ErrWrite as appropriate.
func (r *Result) Err() error {
	failures := r.Failures()
	if len(failures) == 0 {
		return nil
	}

	errs := make([]error, len(failures))
	for i, fe := range failures {
		errs[i] = errors.Errorf("%s: %w", fe.Path, fe)
	}
	return errors.Errorf("%d of %d files failed: %w", len(failures), len(r.Files), errors.Join(errs...))
}
