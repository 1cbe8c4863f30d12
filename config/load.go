// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/electrovir/prettier-plugin-multiline-arrays-sub000/report"
)

// FileNames are the config file names [Find] looks for, in order.
var FileNames = []string{
	".multilinerc.yaml",
	".multilinerc.yml",
	".multilinerc.toml",
	".multilinerc.json",
}

// Find looks for a config file in dir and each of its parents.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads options from a YAML, TOML or JSON file. An empty path or a
// missing file yields [Defaults].
func Load(path string, r *report.Report) (Options, error) {
	v := viper.New()
	if err := Read(v, path); err != nil {
		return Defaults(), err
	}
	return FromViper(v, r), nil
}

// Read reads the config file at path into v. An empty path or a missing
// file is not an error.
func Read(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// FromViper decodes every setting in v, including bound flags.
func FromViper(v *viper.Viper, r *report.Report) Options {
	return Decode(v.AllSettings(), r)
}

// Marshal encodes options as "yaml", "toml" or "json".
func Marshal(opts Options, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(opts)
	case "toml":
		return toml.Marshal(opts)
	case "json":
		data, err := json.MarshalIndent(opts, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
}
