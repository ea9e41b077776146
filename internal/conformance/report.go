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

package conformance

import (
	"fmt"
	"strings"

	"mosn.io/numconv/common"
)

type Report struct {
	// ID identifies the run in logs.
	ID      string
	Vectors int
	Results []*Result
}

// Result is the outcome for one converter.
type Result struct {
	Converter string
	Passed    int
	Failures  []Failure
}

type Failure struct {
	Converter string
	Vector    Vector
	Have      common.Value
	Err       error
}

func (f Failure) String() string {
	v := f.Vector
	head := fmt.Sprintf("%s: %s[%d] %s(%s)", f.Converter, v.Suite, v.Index, v.Op.Name, v.In)
	if f.Err != nil {
		return fmt.Sprintf("%s: error: %v", head, f.Err)
	}
	return fmt.Sprintf("%s = %s (%s), want %s (%s)", head, f.Have, f.Have.BitsString(), v.Want, v.Want.BitsString())
}

func (r *Report) Failures() []Failure {
	var res []Failure
	for _, result := range r.Results {
		res = append(res, result.Failures...)
	}
	return res
}

func (r *Report) Passed() bool {
	for _, result := range r.Results {
		if len(result.Failures) > 0 {
			return false
		}
	}
	return true
}

// Summary renders one line per converter.
func (r *Report) Summary() string {
	var b strings.Builder
	for _, result := range r.Results {
		status := "ok"
		if len(result.Failures) > 0 {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%-4s %s: %d/%d passed\n", status, result.Converter, result.Passed, r.Vectors)
	}
	return b.String()
}
