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

package wasmer

import (
	"fmt"

	wasmerGo "github.com/wasmerio/wasmer-go/wasmer"

	"mosn.io/numconv/common"
)

// convertFromValue unwraps v into the Go value wasmer-go passes as an arg.
func convertFromValue(v common.Value) (wasmerGo.ValueKind, interface{}, error) {
	switch v.Kind() {
	case common.KindInt32:
		return wasmerGo.I32, v.Int32(), nil
	case common.KindInt64:
		return wasmerGo.I64, v.Int64(), nil
	case common.KindFloat32:
		return wasmerGo.F32, v.Float32(), nil
	case common.KindFloat64:
		return wasmerGo.F64, v.Float64(), nil
	default:
		return 0, nil, fmt.Errorf("[wasmer][type] unsupported kind: %v", v.Kind())
	}
}

// convertToValue wraps a wasmer-go result of the given kind.
func convertToValue(kind wasmerGo.ValueKind, ret interface{}) (common.Value, error) {
	switch r := ret.(type) {
	case int32:
		if kind == wasmerGo.I32 {
			return common.Int32(r), nil
		}
	case int64:
		if kind == wasmerGo.I64 {
			return common.Int64(r), nil
		}
	case float32:
		if kind == wasmerGo.F32 {
			return common.Float32(r), nil
		}
	case float64:
		if kind == wasmerGo.F64 {
			return common.Float64(r), nil
		}
	}
	return common.Value{}, fmt.Errorf("[wasmer][type] convertToValue unexpected result %T for %s", ret, kind)
}
