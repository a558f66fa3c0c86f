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
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

//go:embed testdata
var testfsys embed.FS

func loadFromTestDir(filename string) (string, *Config, error) {
	filename = filepath.Join("testdata", filename)
	b, err := testfsys.ReadFile(filename)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file %v: %v", filename, err)
	}
	config, err := parse(b, strings.HasSuffix(filename, ".toml"))
	if err != nil {
		return filename, nil, fmt.Errorf("failed to load file %v: %v", filename, err)
	}
	return filename, config, err
}

func TestNewDefault(t *testing.T) {
	c := NewDefault()
	if c.LogLevel != int(InfoLevel) {
		t.Errorf("Default log level should be Info, got %d", c.LogLevel)
	}
	if c.LiveVariableSolver != DefaultLiveVariableSolver {
		t.Errorf("Default live variable solver should be %q", DefaultLiveVariableSolver)
	}
	if c.SourceFile() != "" {
		t.Errorf("Default config should not have a source file")
	}
	if c.IsEntryPoint("Main", "main") {
		t.Errorf("Default config should not have entry points")
	}
	if c.Verbose() {
		t.Errorf("Default config should not be verbose")
	}
}

func TestLoadNonExistentFileReturnsError(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "does-not-exist.yaml"))
	if c != nil || err == nil {
		t.Errorf("Expected error and nil value when trying to load non existent file.")
	}
}

func TestLoadBadSolverReturnsError(t *testing.T) {
	_, c, err := loadFromTestDir("bad-solver.yaml")
	if c != nil || err == nil {
		t.Errorf("Expected error and nil value when loading a config with an unknown solver.")
	}
}

func TestLoadBadFormatReturnsError(t *testing.T) {
	if c, err := parse([]byte("options: [1, 2"), false); c != nil || err == nil {
		t.Errorf("Expected error and nil value when parsing malformed yaml.")
	}
	if c, err := parse([]byte("[options\nlog-level = 1"), true); c != nil || err == nil {
		t.Errorf("Expected error and nil value when parsing malformed toml.")
	}
}

func TestLoadYaml(t *testing.T) {
	fileName, config, err := loadFromTestDir("config.yaml")
	if config == nil || err != nil {
		t.Fatalf("Could not load %s: %v", fileName, err)
	}
	if config.LogLevel != int(DebugLevel) || !config.Verbose() {
		t.Errorf("%s should set the debug level", fileName)
	}
	if config.LiveVariableSolver != WorklistSolver {
		t.Errorf("%s should select the worklist solver", fileName)
	}
	if !config.SkipDeadAssignments {
		t.Errorf("%s should set skip-dead-assignments", fileName)
	}
	if len(config.EntryPoints) != 2 {
		t.Fatalf("%s should have two entry points, got %v", fileName, config.EntryPoints)
	}
	for _, tc := range []struct {
		class, method string
		want          bool
	}{
		{"Main", "main", true},
		{"MainHelper", "main", false}, // class regex is anchored
		{"Main", "run", false},
		{"Driver", "anything", true}, // empty method matches any method
		{"TestDriver", "run", true},  // unanchored regex
		{"Other", "main", false},
	} {
		if got := config.IsEntryPoint(tc.class, tc.method); got != tc.want {
			t.Errorf("IsEntryPoint(%q, %q) = %v, want %v", tc.class, tc.method, got, tc.want)
		}
	}
}

func TestLoadToml(t *testing.T) {
	fileName, config, err := loadFromTestDir("config.toml")
	if config == nil || err != nil {
		t.Fatalf("Could not load %s: %v", fileName, err)
	}
	if config.LogLevel != int(TraceLevel) {
		t.Errorf("%s should set the trace level", fileName)
	}
	if !config.SilenceWarn {
		t.Errorf("%s should set silence-warn", fileName)
	}
	if config.LiveVariableSolver != DefaultLiveVariableSolver {
		t.Errorf("%s should default the live variable solver", fileName)
	}
	if !config.IsEntryPoint("Main", "main") {
		t.Errorf("%s should have Main.main as entry point", fileName)
	}
}

func TestLoadFromDisk(t *testing.T) {
	name := filepath.Join("testdata", "config.toml")
	config, err := Load(name)
	if err != nil {
		t.Fatalf("Could not load %s: %v", name, err)
	}
	if config.SourceFile() != name {
		t.Errorf("Source file should be %q, got %q", name, config.SourceFile())
	}
	SetGlobalConfig(name)
	global, err := LoadGlobal()
	if err != nil || global.LogLevel != config.LogLevel {
		t.Errorf("LoadGlobal should load the same config as Load: %v", err)
	}
}

func TestMethodIdentifierWithoutRegexes(t *testing.T) {
	mid := MethodIdentifier{Class: "A", Method: "m"}
	if !mid.Matches("A", "m") || mid.Matches("AB", "m") || mid.Matches("A", "n") {
		t.Errorf("uncompiled identifier %s should match by string equality", mid)
	}
	if !(MethodIdentifier{}).Matches("X", "y") {
		t.Errorf("empty identifier should match everything")
	}
}

func TestLogGroupLevels(t *testing.T) {
	c := NewDefault()
	c.LogLevel = int(WarnLevel)
	l := NewLogGroup(c)
	var buf bytes.Buffer
	l.SetAllOutput(&buf)
	l.SetAllFlags(0)

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	if buf.Len() != 0 {
		t.Errorf("debug and info should not be printed at warn level, got %q", buf.String())
	}
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)
	out := buf.String()
	if !strings.Contains(out, "warn 3") || !strings.Contains(out, "error 4") {
		t.Errorf("warnings and errors should be printed at warn level, got %q", out)
	}
	if l.LogsTrace() {
		t.Errorf("trace should be disabled at warn level")
	}

	c.SilenceWarn = true
	l = NewLogGroup(c)
	buf.Reset()
	l.SetAllOutput(&buf)
	l.Warnf("silenced")
	if buf.Len() != 0 {
		t.Errorf("warnings should be silenced, got %q", buf.String())
	}
}
