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

package presets

import (
	"bytes"
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/walteh/rewriterc/pkg/text"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

//go:embed migrations/*.yaml
var migrations embed.FS

// ErrUnknownPreset is returned by Get for a name with no embedded preset
var ErrUnknownPreset = errors.Base("unknown preset")

// 🎨 Preset is a named, reusable rule set plus the filter tweaks it needs
type Preset struct {
	Name         string      `yaml:"name"`
	Description  string      `yaml:"description"`
	ExcludeDirs  []string    `yaml:"exclude_dirs,omitempty"`
	ExcludeNames []string    `yaml:"exclude_names,omitempty"`
	Rules        []text.Rule `yaml:"rules"`
}

// List returns every embedded preset sorted by name
func List() ([]*Preset, error) {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return nil, errors.Errorf("reading embedded presets: %w", err)
	}

	out := make([]*Preset, 0, len(entries))
	for _, entry := range entries {
		p, err := load(path.Join("migrations", entry.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Names returns the sorted preset names
func Names() []string {
	entries, _ := migrations.ReadDir("migrations")
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Get returns the preset called name
func Get(name string) (*Preset, error) {
	p, err := load(path.Join("migrations", name+".yaml"))
	if err != nil {
		if errors.Is(err, errNotEmbedded) {
			return nil, errors.Errorf("%w %q (available: %s)", ErrUnknownPreset, name, strings.Join(Names(), ", "))
		}
		return nil, err
	}
	return p, nil
}

var errNotEmbedded = errors.Base("preset not embedded")

func load(file string) (*Preset, error) {
	data, err := migrations.ReadFile(file)
	if err != nil {
		return nil, errors.Errorf("%w: %s", errNotEmbedded, file)
	}

	var p Preset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, errors.Errorf("parsing preset %s: %w", file, err)
	}

	if want := strings.TrimSuffix(path.Base(file), ".yaml"); p.Name != want {
		return nil, errors.Errorf("preset %s declares name %q", file, p.Name)
	}
	return &p, nil
}
