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

package lang

import "fmt"

// Hierarchy answers the class hierarchy queries of the call graph construction
type Hierarchy interface {
	// ClassByName returns the class named name, or nil if there is no such class
	ClassByName(name string) *Class
	DirectSubclassesOf(c *Class) []*Class
	DirectSubinterfacesOf(c *Class) []*Class
	DirectImplementorsOf(c *Class) []*Class
}

// ClassHierarchy is a [Hierarchy] built by adding classes one by one, super types first.
type ClassHierarchy struct {
	classes      map[string]*Class
	order        []*Class
	subclasses   map[*Class][]*Class
	subinterface map[*Class][]*Class
	implementors map[*Class][]*Class
}

// NewClassHierarchy returns an empty hierarchy
func NewClassHierarchy() *ClassHierarchy {
	return &ClassHierarchy{
		classes:      map[string]*Class{},
		subclasses:   map[*Class][]*Class{},
		subinterface: map[*Class][]*Class{},
		implementors: map[*Class][]*Class{},
	}
}

// AddClass adds c to the hierarchy and records it as a direct subtype of its super class and interfaces.
// It panics if a class with the same name has already been added.
func (h *ClassHierarchy) AddClass(c *Class) *Class {
	if _, ok := h.classes[c.Name]; ok {
		panic(fmt.Sprintf("class %s already in hierarchy", c.Name))
	}
	h.classes[c.Name] = c
	h.order = append(h.order, c)
	if c.Super != nil {
		h.subclasses[c.Super] = append(h.subclasses[c.Super], c)
	}
	for _, itf := range c.Interfaces {
		if c.IsInterface {
			h.subinterface[itf] = append(h.subinterface[itf], c)
		} else {
			h.implementors[itf] = append(h.implementors[itf], c)
		}
	}
	return c
}

// Classes returns the classes in the order they were added
func (h *ClassHierarchy) Classes() []*Class {
	return h.order
}

func (h *ClassHierarchy) ClassByName(name string) *Class {
	return h.classes[name]
}

func (h *ClassHierarchy) DirectSubclassesOf(c *Class) []*Class {
	return h.subclasses[c]
}

func (h *ClassHierarchy) DirectSubinterfacesOf(c *Class) []*Class {
	return h.subinterface[c]
}

func (h *ClassHierarchy) DirectImplementorsOf(c *Class) []*Class {
	return h.implementors[c]
}

// FindMethod returns the first method matching the class and method names, in class order, or nil
func (h *ClassHierarchy) FindMethod(class string, name string) *Method {
	c := h.classes[class]
	if c == nil {
		return nil
	}
	for _, m := range c.order {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// MethodsMatching returns all the methods for which match returns true, in class and declaration order
func (h *ClassHierarchy) MethodsMatching(match func(class string, method string) bool) []*Method {
	var methods []*Method
	for _, c := range h.order {
		for _, m := range c.order {
			if match(c.Name, m.Name) {
				methods = append(methods, m)
			}
		}
	}
	return methods
}
