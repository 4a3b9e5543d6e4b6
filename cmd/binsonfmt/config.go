// Copyright (C) 2026 The binson-go Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"os"

	"sigs.k8s.io/yaml"

	"github.com/sijohans/binson-go/bundle"
)

// config holds the settings binsonfmt needs for fingerprinting and
// bundling, typically supplied as a small definition.yaml alongside
// the documents being processed rather than as a pile of flags.
type config struct {
	// HashKey0 and HashKey1 select the SipHash key used by the
	// fingerprint and bundle subcommands. Left at zero, the package
	// defaults (bundle.HashKey0/HashKey1) apply.
	HashKey0 uint64 `json:"hashKey0"`
	HashKey1 uint64 `json:"hashKey1"`

	// MaxDepth is decoded from the file, but no subcommand applies it:
	// every parser uses binson.DefaultMaxDepth.
	MaxDepth int `json:"maxDepth"`
}

func defaultConfig() config {
	return config{HashKey0: bundle.HashKey0, HashKey1: bundle.HashKey1}
}

// loadConfig reads a YAML (or JSON, since JSON is valid YAML)
// definition file. An empty path returns the defaults unchanged.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	if cfg.HashKey0 == 0 && cfg.HashKey1 == 0 {
		cfg.HashKey0, cfg.HashKey1 = bundle.HashKey0, bundle.HashKey1
	}
	return cfg, nil
}
