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

/*
Package config provides a simple way to manage configuration files and the logger shared by the analyses.

Use [Load](filename) to load a configuration from a specific filename.

Use [SetGlobalConfig](filename) to set filename as the global config, and then [LoadGlobal]() to load the global config.

A config file is in yaml format, or in toml format if its name ends with ".toml". The top-level fields are the fields
of the [Config] struct. For example, a valid yaml config file is as follows:

	options:
	  log-level: 4
	  live-variable-solver: worklist

	entry-points:
	  - class: Main
	    method: main

# Identifying methods

Entry points are [MethodIdentifier] values. The class and method strings are seen as regexes if they can be compiled
to regexes, otherwise they are matched as plain strings. An empty field matches anything.
*/
package config
