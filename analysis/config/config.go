// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Config contains the options of the analyses and the entry points of the program being analyzed.
// If some field is not defined in the config file, it will be empty/zero in the struct.
// private fields are not populated from a config file, but computed after initialization
type Config struct {
	Options `yaml:"options" toml:"options"`

	sourceFile string

	// EntryPoints identifies the methods the call graph and the interprocedural analyses start from
	EntryPoints []MethodIdentifier `yaml:"entry-points" toml:"entry-points"`
}

// Options are the settings of the analyses.
type Options struct {
	// LogLevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level" toml:"log-level"`

	// SilenceWarn suppresses warnings
	SilenceWarn bool `yaml:"silence-warn" toml:"silence-warn"`

	// LiveVariableSolver is the solver used by the live variable analysis: "iterative" (the default) or
	// "worklist"
	LiveVariableSolver string `yaml:"live-variable-solver" toml:"live-variable-solver"`

	// SkipDeadAssignments restricts the dead code detection to unreachable code
	SkipDeadAssignments bool `yaml:"skip-dead-assignments" toml:"skip-dead-assignments"`
}

// NewDefault returns an empty default config.
func NewDefault() *Config {
	return &Config{
		sourceFile:  "",
		EntryPoints: nil,
		Options: Options{
			LogLevel:            int(InfoLevel),
			SilenceWarn:         false,
			LiveVariableSolver:  DefaultLiveVariableSolver,
			SkipDeadAssignments: false,
		},
	}
}

// Load reads a configuration from a file. Files whose name ends in ".toml" are decoded as toml, all others as yaml.
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	cfg, err := parse(b, strings.EqualFold(filepath.Ext(filename), ".toml"))
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", filename, err)
	}
	cfg.sourceFile = filename
	return cfg, nil
}

func parse(b []byte, isToml bool) (*Config, error) {
	cfg := NewDefault()
	if isToml {
		if err := toml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("could not unmarshal config as toml: %w", err)
		}
	} else if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config as yaml: %w", err)
	}

	// If logLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}

	switch cfg.LiveVariableSolver {
	case "":
		cfg.LiveVariableSolver = DefaultLiveVariableSolver
	case IterativeSolver, WorklistSolver:
	default:
		return nil, fmt.Errorf("unknown live-variable-solver %q, expected %q or %q",
			cfg.LiveVariableSolver, IterativeSolver, WorklistSolver)
	}

	for i, mid := range cfg.EntryPoints {
		cfg.EntryPoints[i] = CompileRegexes(mid)
	}
	return cfg, nil
}

// SourceFile returns the name of the file the config was loaded from, or the empty string for a default config
func (c Config) SourceFile() string {
	return c.sourceFile
}

// IsEntryPoint returns true if the method of the given class matches some entry point of the config
func (c Config) IsEntryPoint(class string, method string) bool {
	for _, mid := range c.EntryPoints {
		if mid.Matches(class, method) {
			return true
		}
	}
	return false
}

// Verbose returns true is the configuration verbosity setting is larger than Info (i.e. Debug or Trace)
func (c Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}
