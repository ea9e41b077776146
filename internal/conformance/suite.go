/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package conformance checks converters against literal conversion vectors.
package conformance

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"

	"mosn.io/numconv/common"
	"mosn.io/numconv/conv"
)

//go:embed suites/*.yaml
var embedded embed.FS

// Case is one vector as written in a suite file. In and Want are parsed in
// the source and target kind of Op.
type Case struct {
	Op   string `yaml:"op"`
	In   string `yaml:"in"`
	Want string `yaml:"want"`
	Note string `yaml:"note,omitempty"`
}

type Suite struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// Vector is a validated Case.
type Vector struct {
	Suite string
	Index int
	Op    *conv.Op
	In    common.Value
	Want  common.Value
	Note  string
}

// ParseSuite decodes and validates a suite. Unknown fields are rejected.
func ParseSuite(data []byte) (*Suite, error) {
	var s Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse suite: %w", err)
	}

	if s.Name == "" {
		return nil, fmt.Errorf("invalid suite: missing name")
	}
	if len(s.Cases) == 0 {
		return nil, fmt.Errorf("invalid suite %s: no cases", s.Name)
	}
	if _, err := s.Vectors(); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}

	return &s, nil
}

func LoadSuite(file string) (*Suite, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	return ParseSuite(data)
}

// DefaultSuites returns the built-in suites sorted by name.
func DefaultSuites() ([]*Suite, error) {
	entries, err := embedded.ReadDir("suites")
	if err != nil {
		return nil, err
	}

	var suites []*Suite
	for _, e := range entries {
		data, err := embedded.ReadFile(path.Join("suites", e.Name()))
		if err != nil {
			return nil, err
		}
		s, err := ParseSuite(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		suites = append(suites, s)
	}

	sort.Slice(suites, func(i, j int) bool { return suites[i].Name < suites[j].Name })

	return suites, nil
}

// Vectors resolves every case of the suite.
func (s *Suite) Vectors() ([]Vector, error) {
	vectors := make([]Vector, 0, len(s.Cases))

	for i, c := range s.Cases {
		op, err := conv.Lookup(c.Op)
		if err != nil {
			return nil, fmt.Errorf("%s case %d: %w", s.Name, i, err)
		}
		in, err := common.ParseValue(op.From, c.In)
		if err != nil {
			return nil, fmt.Errorf("%s case %d: in: %w", s.Name, i, err)
		}
		want, err := common.ParseValue(op.To, c.Want)
		if err != nil {
			return nil, fmt.Errorf("%s case %d: want: %w", s.Name, i, err)
		}

		vectors = append(vectors, Vector{
			Suite: s.Name,
			Index: i,
			Op:    op,
			In:    in,
			Want:  want,
			Note:  c.Note,
		})
	}

	return vectors, nil
}
