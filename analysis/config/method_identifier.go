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
	"regexp"
)

// MethodIdentifier identifies methods by the name of their declaring class and their name.
type MethodIdentifier struct {
	Class  string `yaml:"class" toml:"class"`
	Method string `yaml:"method" toml:"method"`
	// This will not be part of the config file
	computedRegexs *methodIdentifierRegex
}

type methodIdentifierRegex struct {
	classRegex  *regexp.Regexp
	methodRegex *regexp.Regexp
}

// CompileRegexes compiles the strings in the identifier into regexes. It compiles all the fields into regexes
// or none.
func CompileRegexes(mid MethodIdentifier) MethodIdentifier {
	classRegex, err := regexp.Compile(mid.Class)
	if err != nil {
		return mid
	}
	methodRegex, err := regexp.Compile(mid.Method)
	if err != nil {
		return mid
	}
	mid.computedRegexs = &methodIdentifierRegex{classRegex, methodRegex}
	return mid
}

// Matches returns true if the class and method names match the identifier. Empty fields of the identifier match
// any name.
func (mid MethodIdentifier) Matches(class string, method string) bool {
	if mid.computedRegexs != nil {
		return (mid.Class == "" || mid.computedRegexs.classRegex.MatchString(class)) &&
			(mid.Method == "" || mid.computedRegexs.methodRegex.MatchString(method))
	}
	return (mid.Class == "" || mid.Class == class) && (mid.Method == "" || mid.Method == method)
}

func (mid MethodIdentifier) String() string {
	return fmt.Sprintf("%s.%s", mid.Class, mid.Method)
}
