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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrRead covers open, read and decode failures
	ErrRead = errors.Base("read error")
	// ErrWrite covers encode, temp file and rename failures
	ErrWrite = errors.Base("write error")
)

// 🚨 FileError is the failure of a single file. The run goes on without it.
type FileError struct {
	Path string
	Kind error // ErrRead or ErrWrite
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is matches the error kind, so errors.Is(err, ErrRead) works on a FileError.
func (e *FileError) Is(target error) bool {
	return target == e.Kind
}

func readError(path string, err error) *FileError {
	return &FileError{Path: path, Kind: ErrRead, Err: err}
}

func writeError(path string, err error) *FileError {
	return &FileError{Path: path, Kind: ErrWrite, Err: err}
}
