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

/*
Package operation runs a rule set over a directory tree and writes back
the files whose text changed.

🎯 Purpose:
- Drives every discovered file to a terminal state
- Keeps unchanged files untouched (bytes and mtime)
- Isolates per-file failures from the rest of the run

🔄 Flow, per file:

	Discovered -> Rejected
	Discovered -> Read -> Transformed -> Unchanged
	Discovered -> Read -> Transformed -> Written (or WouldUpdate in a dry run)
	any step   -> Failed (ErrRead or ErrWrite), the walk continues

⚡ Writes go to a temp file in the same directory which is renamed over the
target, keeping its permission bits.

🔍 Example:

	opts, err := operation.OptionsFromConfig(afero.NewOsFs(), cfg)
	opts.Logger = logger
	op, err := operation.New(opts)
	result, err := op.Run(ctx)
	if err := result.Err(); err != nil {
		// one or more files failed
	}
*/
package operation
