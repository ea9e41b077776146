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
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"mosn.io/numconv/common"
)

func TestOpsTable(t *testing.T) {
	all := Ops()
	require.Len(t, all, 8)

	var names []string
	for i, op := range all {
		names = append(names, op.Name)
		if i > 0 {
			require.Less(t, all[i-1].Opcode, op.Opcode)
		}
		require.Equal(t, op.Name[0], op.From.Letter())
		require.Equal(t, op.Name[2], op.To.Letter())
		require.Contains(t, op.WasmName, op.To.WasmName()+".")
		require.Contains(t, op.WasmName, "_"+op.From.WasmName())
	}
	require.Equal(t, []string{"i2f", "i2d", "l2f", "l2d", "f2i", "f2l", "d2i", "d2l"}, names)

	// callers cannot reorder the table
	all[0] = nil
	require.NotNil(t, Ops()[0])
}

func TestLookup(t *testing.T) {
	op, err := Lookup("d2i")
	require.NoError(t, err)
	require.Equal(t, byte(0x8e), op.Opcode)

	op, err = LookupOpcode(0x8c)
	require.NoError(t, err)
	require.Equal(t, "f2l", op.String())

	_, err = Lookup("d2f")
	require.ErrorIs(t, err, common.ErrUnknownOp)

	// i2l is a conversion, but not one between an integer and a float
	_, err = LookupOpcode(0x85)
	require.ErrorIs(t, err, common.ErrUnknownOp)
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name     string
		opcode   byte
		operand  common.Value
		expected common.Value
	}{
		{name: "i2d min", opcode: 0x87, operand: common.Int32(math.MinInt32), expected: common.Float64(-2147483648.0)},
		{name: "d2i NaN", opcode: 0x8e, operand: common.Float64(math.NaN()), expected: common.Int32(0)},
		{name: "d2i -Inf", opcode: 0x8e, operand: common.Float64(math.Inf(-1)), expected: common.Int32(math.MinInt32)},
		{name: "d2i truncates", opcode: 0x8e, operand: common.Float64(2.5), expected: common.Int32(2)},
		{name: "l2d max", opcode: 0x8a, operand: common.Int64(math.MaxInt64), expected: common.Float64(0x1p63)},
		{name: "d2l +Inf", opcode: 0x8f, operand: common.Float64(math.Inf(1)), expected: common.Int64(math.MaxInt64)},
		{name: "i2f max", opcode: 0x86, operand: common.Int32(math.MaxInt32), expected: common.Float32(0x1p31)},
		{name: "f2i NaN", opcode: 0x8b, operand: common.Float32(float32(math.NaN())), expected: common.Int32(0)},
		{name: "l2f min", opcode: 0x89, operand: common.Int64(math.MinInt64), expected: common.Float32(-0x1p63)},
		{name: "f2l stored value", opcode: 0x8c, operand: common.Float32(2147483647.0), expected: common.Int64(2147483648)},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			v, err := Dispatch(tc.opcode, tc.operand)
			require.NoError(t, err)
			require.True(t, tc.expected.Equal(v), "want %s (%s), have %s (%s)", tc.expected, tc.expected.Kind(), v, v.Kind())
		})
	}
}

func TestDispatchErrors(t *testing.T) {
	_, err := Dispatch(0x00, common.Int32(1))
	require.ErrorIs(t, err, common.ErrUnknownOp)

	_, err = Dispatch(0x8e, common.Float32(1))
	require.ErrorIs(t, err, common.ErrOperandKind)
}

func TestEngine(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	require.Equal(t, "native", e.Name())

	v, err := e.Convert("f2l", common.Float32(2147483647.0))
	require.NoError(t, err)
	require.Equal(t, int64(2147483648), v.Int64())

	_, err = e.Convert("x2y", common.Int32(1))
	require.ErrorIs(t, err, common.ErrUnknownOp)

	_, err = e.Convert("i2d", common.Int64(1))
	require.ErrorIs(t, err, common.ErrOperandKind)
}
