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
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// writeFileAtomic replaces path with data through a sibling temp file, so a
// failed write never leaves a truncated file behind. perm is applied to the
// temp file before the rename.
func writeFileAtomic(fsys afero.Fs, path string, data []byte, perm fs.FileMode) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := afero.TempFile(fsys, dir, "."+base+".rewriterc-*")
	if err != nil {
		return errors.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = fsys.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Errorf("writing temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Errorf("syncing temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temporary file: %w", err)
	}

	if err := fsys.Chmod(tmpPath, perm); err != nil {
		return errors.Errorf("setting permissions: %w", err)
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		return errors.Errorf("renaming temporary file: %w", err)
	}

	return nil
}
