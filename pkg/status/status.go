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

package status

// 📊 FileStatus is the terminal state of one discovered file
type FileStatus int

const (
	StatusUnknown     FileStatus = iota
	StatusRejected               // Filtered out or not a regular file, never read
	StatusUnchanged              // Rules produced identical text, nothing written
	StatusUpdated                // Content changed and was written back
	StatusWouldUpdate            // Content changed, dry run left it alone
	StatusFailed                 // Read, decode, encode or write failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusRejected:
		return "rejected"
	case StatusUnchanged:
		return "unchanged"
	case StatusUpdated:
		return "updated"
	case StatusWouldUpdate:
		return "would-update"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Changed reports whether the rules altered the file's text
func (s FileStatus) Changed() bool {
	return s == StatusUpdated || s == StatusWouldUpdate
}
