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
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wabin/binary"
	"github.com/tetratelabs/wabin/wasm"

	"mosn.io/numconv/common"
	"mosn.io/numconv/internal/refmodule"
)

var simpleWasm = binary.EncodeModule(&wasm.Module{
	TypeSection:     []*wasm.FunctionType{{}},                     // v_v
	FunctionSection: []wasm.Index{wasm.Index(0)},                  // type[0] == v_v
	CodeSection:     []*wasm.Code{{Body: []byte{wasm.OpcodeEnd}}}, // noop
	ExportSection: []*wasm.Export{
		{Name: "_start", Type: wasm.ExternTypeFunc, Index: wasm.Index(0)}, // export func[0]
	},
})

func TestModuleExports(t *testing.T) {
	vm := NewVM()
	defer vm.Close()

	require.Equal(t, vm.Name(), "wazero")

	module := vm.NewModule(refmodule.Binary())
	require.Equal(t, []string{"d2i", "d2l", "f2i", "f2l", "i2d", "i2f", "l2d", "l2f"}, module.GetExportNames())

	// v_v functions are not conversions
	require.Empty(t, vm.NewModule(simpleWasm).GetExportNames())

	require.Panics(t, func() { vm.NewModule(nil) })
}

func TestInstanceConvert(t *testing.T) {
	vm := NewVM()
	defer vm.Close()

	ins := vm.NewModule(refmodule.Binary()).NewInstance()
	defer ins.Stop()

	require.Equal(t, "wazero", ins.Name())
	require.Nil(t, ins.Start())
	require.Equal(t, ErrInstanceAlreadyStart, ins.Start())

	tests := []struct {
		op       string
		input    common.Value
		expected common.Value
	}{
		{op: "i2d", input: common.Int32(math.MinInt32), expected: common.Float64(-2147483648.0)},
		{op: "d2i", input: common.Float64(math.NaN()), expected: common.Int32(0)},
		{op: "d2i", input: common.Float64(math.Inf(-1)), expected: common.Int32(math.MinInt32)},
		{op: "d2i", input: common.Float64(2.5), expected: common.Int32(2)},
		{op: "l2d", input: common.Int64(math.MaxInt64), expected: common.Float64(0x1p63)},
		{op: "d2l", input: common.Float64(math.Inf(1)), expected: common.Int64(math.MaxInt64)},
		{op: "i2f", input: common.Int32(math.MaxInt32), expected: common.Float32(0x1p31)},
		{op: "f2i", input: common.Float32(float32(math.Inf(1))), expected: common.Int32(math.MaxInt32)},
		{op: "l2f", input: common.Int64(1<<60 + 1<<36 + 1), expected: common.Float32(0x1p60 + 0x1p37)},
		{op: "f2l", input: common.Float32(2147483647.0), expected: common.Int64(2147483648)},
	}

	for _, tc := range tests {
		v, err := ins.Convert(tc.op, tc.input)
		require.NoError(t, err, tc.op)
		require.True(t, tc.expected.Equal(v), "%s(%s): want %s, have %s", tc.op, tc.input, tc.expected, v)
	}
}

func TestInstanceConvertErrors(t *testing.T) {
	vm := NewVM()
	defer vm.Close()

	ins := vm.NewModule(refmodule.Binary()).NewInstance()
	defer ins.Stop()

	_, err := ins.Convert("d2i", common.Float64(1))
	require.ErrorIs(t, err, ErrInstanceNotStart)

	require.Nil(t, ins.Start())

	_, err = ins.Convert("d2f", common.Float64(1))
	require.ErrorIs(t, err, common.ErrUnknownOp)

	_, err = ins.Convert("d2i", common.Float32(1))
	require.ErrorIs(t, err, common.ErrOperandKind)
}

func TestRefCount(t *testing.T) {
	vm := NewVM()
	defer vm.Close()

	ins := vm.NewModule(refmodule.Binary()).NewInstance()

	require.False(t, ins.Acquire())

	require.Nil(t, ins.Start())
	for i := 0; i < 100; i++ {
		require.True(t, ins.Acquire())
	}
	require.Equal(t, ins.refCount, 100)

	ins.Stop()
	ins.Stop() // double stop
	time.Sleep(time.Second)
	require.Equal(t, ins.started, uint32(1))

	for i := 0; i < 100; i++ {
		ins.Release()
	}

	time.Sleep(time.Second)
	require.False(t, ins.Acquire())
	require.Equal(t, ins.started, uint32(0))
	require.Equal(t, ins.refCount, 0)

	_, err := ins.Convert("d2i", common.Float64(1))
	require.ErrorIs(t, err, ErrInstanceNotStart)
}
