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

package text

import (
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

const DefaultEncoding = "utf-8"

// ErrDecode is returned when file bytes are not valid in the codec's encoding.
var ErrDecode = errors.Base("decode error")

// 🔡 Codec converts file bytes to text and back with one character encoding.
// Files are always written with the encoding they were read with.
type Codec struct {
	name string
	enc  encoding.Encoding // nil means utf-8, validated strictly
}

// LookupCodec returns the codec for a WHATWG encoding label such as "utf-8",
// "latin1" or "windows-1252". An empty label means utf-8.
func LookupCodec(label string) (*Codec, error) {
	if label == "" {
		label = DefaultEncoding
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Errorf("unknown encoding %q: %w", label, err)
	}

	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, errors.Errorf("resolving encoding %q: %w", label, err)
	}

	if name == DefaultEncoding {
		return &Codec{name: name}, nil
	}
	return &Codec{name: name, enc: enc}, nil
}

// Name returns the canonical encoding name
func (c *Codec) Name() string {
	return c.name
}

// Decode turns raw bytes into text
func (c *Codec) Decode(data []byte) (string, error) {
	if c.enc == nil {
		if !utf8.Valid(data) {
			return "", errors.Errorf("%w: content is not valid %s", ErrDecode, c.name)
		}
		return string(data), nil
	}

	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Errorf("%w: %s: %s", ErrDecode, c.name, err.Error())
	}
	return string(out), nil
}

// Encode turns text back into bytes in the same encoding
func (c *Codec) Encode(text string) ([]byte, error) {
	if c.enc == nil {
		return []byte(text), nil
	}

	out, err := c.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.Errorf("encoding text as %s: %w", c.name, err)
	}
	return out, nil
}
