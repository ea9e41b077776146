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

package wazero

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"mosn.io/numconv/common"
)

func valueType(k common.Kind) (api.ValueType, error) {
	switch k {
	case common.KindInt32:
		return api.ValueTypeI32, nil
	case common.KindInt64:
		return api.ValueTypeI64, nil
	case common.KindFloat32:
		return api.ValueTypeF32, nil
	case common.KindFloat64:
		return api.ValueTypeF64, nil
	default:
		return 0, fmt.Errorf("[wazero][type] unsupported kind: %v", k)
	}
}

// convertFromValue encodes v into a wasm stack slot.
func convertFromValue(v common.Value) (t api.ValueType, slot uint64, err error) {
	switch v.Kind() {
	case common.KindInt32:
		slot = api.EncodeI32(v.Int32())
	case common.KindInt64:
		slot = api.EncodeI64(v.Int64())
	case common.KindFloat32:
		slot = api.EncodeF32(v.Float32())
	case common.KindFloat64:
		slot = api.EncodeF64(v.Float64())
	}
	t, err = valueType(v.Kind())
	return
}

// convertToValue decodes a wasm stack slot of type t.
func convertToValue(t api.ValueType, slot uint64) (common.Value, error) {
	switch t {
	case api.ValueTypeI32:
		return common.Int32(int32(slot)), nil
	case api.ValueTypeI64:
		return common.Int64(int64(slot)), nil
	case api.ValueTypeF32:
		return common.Float32(api.DecodeF32(slot)), nil
	case api.ValueTypeF64:
		return common.Float64(api.DecodeF64(slot)), nil
	default:
		return common.Value{}, fmt.Errorf("[wazero][type] convertToValue unsupported type: %v", api.ValueTypeName(t))
	}
}
