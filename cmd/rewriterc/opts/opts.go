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

package opts

import (
	"github.com/spf13/afero"
	"github.com/walteh/rewriterc/pkg/log"
)

// RootOpts is shared by every subcommand. Logger is set once flags are parsed.
type RootOpts struct {
	Fs     afero.Fs
	Logger *log.Logger

	// global flags
	Debug     bool
	ColorMode string
}
