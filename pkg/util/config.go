// Copyright 2024-2026 Arclight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"os"

	"github.com/BurntSushi/toml"
)

// DebugOptions controls diagnostic output of the transformer's CLI/server
// front ends; it has no effect on the logical plan produced.
type DebugOptions struct {
	PrintPlan  bool `toml:"printPlan"`
	PrintAst   bool `toml:"printAst"`
	ShowRawSQL bool `toml:"showRawSql"`
}

// ServerConfig configures the psql-wire demo server.
type ServerConfig struct {
	ListenAddr string `toml:"listenAddr"`
	Catalog    string `toml:"catalog"` // "memory" or "postgres"
	DSN        string `toml:"dsn"`     // used when Catalog == "postgres"
}

type Config struct {
	Server ServerConfig `toml:"server"`
	Debug  DebugOptions `toml:"debug"`
}

// DefaultConfig is the Config used when no config file is present: the
// server listens on 127.0.0.1:5432 with the in-memory catalog.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr: "127.0.0.1:5432",
			Catalog:    "memory",
		},
	}
}

// LoadConfig decodes a TOML config file at path, falling back to
// DefaultConfig when the file does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if !FileIsValid(path) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

func FileIsValid(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
