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

// Package refmodule builds the reference WebAssembly module: one export per
// conversion, named by JVM mnemonic, each running the WebAssembly instruction
// that carries the same semantics.
package refmodule

import (
	"github.com/tetratelabs/wabin/binary"
	"github.com/tetratelabs/wabin/wasm"

	"mosn.io/numconv/common"
	"mosn.io/numconv/conv"
)

// Conversion opcodes. The saturating truncations are in the 0xfc (misc)
// space, from the nontrapping float-to-int proposal merged into 2.0.
const (
	opcodeF32ConvertI32S = 0xb2
	opcodeF32ConvertI64S = 0xb4
	opcodeF64ConvertI32S = 0xb7
	opcodeF64ConvertI64S = 0xb9

	opcodeMiscPrefix          = 0xfc
	opcodeMiscI32TruncSatF32S = 0x00
	opcodeMiscI32TruncSatF64S = 0x02
	opcodeMiscI64TruncSatF32S = 0x04
	opcodeMiscI64TruncSatF64S = 0x06
)

var instructions = map[string][]byte{
	"f32.convert_i32_s":   {opcodeF32ConvertI32S},
	"f32.convert_i64_s":   {opcodeF32ConvertI64S},
	"f64.convert_i32_s":   {opcodeF64ConvertI32S},
	"f64.convert_i64_s":   {opcodeF64ConvertI64S},
	"i32.trunc_sat_f32_s": {opcodeMiscPrefix, opcodeMiscI32TruncSatF32S},
	"i32.trunc_sat_f64_s": {opcodeMiscPrefix, opcodeMiscI32TruncSatF64S},
	"i64.trunc_sat_f32_s": {opcodeMiscPrefix, opcodeMiscI64TruncSatF32S},
	"i64.trunc_sat_f64_s": {opcodeMiscPrefix, opcodeMiscI64TruncSatF64S},
}

func valueType(k common.Kind) wasm.ValueType {
	switch k {
	case common.KindInt32:
		return wasm.ValueTypeI32
	case common.KindInt64:
		return wasm.ValueTypeI64
	case common.KindFloat32:
		return wasm.ValueTypeF32
	default:
		return wasm.ValueTypeF64
	}
}

// Module returns the reference module. Function i has type i and is exported
// as conv.Ops()[i].Name.
func Module() *wasm.Module {
	m := &wasm.Module{}

	for i, op := range conv.Ops() {
		insn, ok := instructions[op.WasmName]
		if !ok {
			panic("refmodule: no instruction for " + op.WasmName)
		}

		body := []byte{wasm.OpcodeLocalGet, 0}
		body = append(body, insn...)
		body = append(body, wasm.OpcodeEnd)

		m.TypeSection = append(m.TypeSection, &wasm.FunctionType{
			Params:  []wasm.ValueType{valueType(op.From)},
			Results: []wasm.ValueType{valueType(op.To)},
		})
		m.FunctionSection = append(m.FunctionSection, wasm.Index(i))
		m.CodeSection = append(m.CodeSection, &wasm.Code{Body: body})
		m.ExportSection = append(m.ExportSection, &wasm.Export{
			Name:  op.Name,
			Type:  wasm.ExternTypeFunc,
			Index: wasm.Index(i),
		})
	}

	return m
}

// Binary returns the encoded reference module.
func Binary() []byte {
	return binary.EncodeModule(Module())
}

// Exports lists the exported function names in function index order.
func Exports() []string {
	var names []string
	for _, op := range conv.Ops() {
		names = append(names, op.Name)
	}
	return names
}
