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

package conv

import (
	"fmt"

	"mosn.io/numconv/common"
)

// Op describes one conversion instruction.
type Op struct {
	// Name is the JVM mnemonic, e.g. "d2i".
	Name string
	// Opcode is the JVM bytecode.
	Opcode byte
	From   common.Kind
	To     common.Kind
	// WasmName is the WebAssembly instruction with the same semantics.
	WasmName string

	apply func(common.Value) common.Value
}

// Apply converts v, which must be of kind From.
func (op *Op) Apply(v common.Value) (common.Value, error) {
	if v.Kind() != op.From {
		return common.Value{}, fmt.Errorf("%w: %s takes %s, have %s", common.ErrOperandKind, op.Name, op.From, v.Kind())
	}
	return op.apply(v), nil
}

func (op *Op) String() string {
	return op.Name
}

// ops is ordered by opcode.
var ops = []*Op{
	{
		Name: "i2f", Opcode: 0x86, From: common.KindInt32, To: common.KindFloat32, WasmName: "f32.convert_i32_s",
		apply: func(v common.Value) common.Value { return common.Float32(Int32ToFloat32(v.Int32())) },
	},
	{
		Name: "i2d", Opcode: 0x87, From: common.KindInt32, To: common.KindFloat64, WasmName: "f64.convert_i32_s",
		apply: func(v common.Value) common.Value { return common.Float64(Int32ToFloat64(v.Int32())) },
	},
	{
		Name: "l2f", Opcode: 0x89, From: common.KindInt64, To: common.KindFloat32, WasmName: "f32.convert_i64_s",
		apply: func(v common.Value) common.Value { return common.Float32(Int64ToFloat32(v.Int64())) },
	},
	{
		Name: "l2d", Opcode: 0x8a, From: common.KindInt64, To: common.KindFloat64, WasmName: "f64.convert_i64_s",
		apply: func(v common.Value) common.Value { return common.Float64(Int64ToFloat64(v.Int64())) },
	},
	{
		Name: "f2i", Opcode: 0x8b, From: common.KindFloat32, To: common.KindInt32, WasmName: "i32.trunc_sat_f32_s",
		apply: func(v common.Value) common.Value { return common.Int32(Float32ToInt32(v.Float32())) },
	},
	{
		Name: "f2l", Opcode: 0x8c, From: common.KindFloat32, To: common.KindInt64, WasmName: "i64.trunc_sat_f32_s",
		apply: func(v common.Value) common.Value { return common.Int64(Float32ToInt64(v.Float32())) },
	},
	{
		Name: "d2i", Opcode: 0x8e, From: common.KindFloat64, To: common.KindInt32, WasmName: "i32.trunc_sat_f64_s",
		apply: func(v common.Value) common.Value { return common.Int32(Float64ToInt32(v.Float64())) },
	},
	{
		Name: "d2l", Opcode: 0x8f, From: common.KindFloat64, To: common.KindInt64, WasmName: "i64.trunc_sat_f64_s",
		apply: func(v common.Value) common.Value { return common.Int64(Float64ToInt64(v.Float64())) },
	},
}

var (
	opsByName   = map[string]*Op{}
	opsByOpcode = map[byte]*Op{}
)

func init() {
	for _, op := range ops {
		opsByName[op.Name] = op
		opsByOpcode[op.Opcode] = op
	}
}

// Ops returns the conversion instructions in opcode order.
func Ops() []*Op {
	res := make([]*Op, len(ops))
	copy(res, ops)
	return res
}

func Lookup(name string) (*Op, error) {
	if op, ok := opsByName[name]; ok {
		return op, nil
	}
	return nil, fmt.Errorf("%w: %q", common.ErrUnknownOp, name)
}

func LookupOpcode(opcode byte) (*Op, error) {
	if op, ok := opsByOpcode[opcode]; ok {
		return op, nil
	}
	return nil, fmt.Errorf("%w: opcode 0x%02x", common.ErrUnknownOp, opcode)
}

// Dispatch executes the conversion instruction opcode on operand. It fails
// only for an opcode that is not a conversion or an operand of the wrong
// kind, both of which a bytecode verifier rejects before execution.
func Dispatch(opcode byte, operand common.Value) (common.Value, error) {
	op, err := LookupOpcode(opcode)
	if err != nil {
		return common.Value{}, err
	}
	return op.Apply(operand)
}
