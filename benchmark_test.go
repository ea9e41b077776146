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

package numconv

import (
	"math"
	"testing"

	"mosn.io/numconv/common"
	"mosn.io/numconv/conv"
)

var (
	sinkI32 int32
	sinkI64 int64
	sinkF32 float32
	sinkF64 float64
)

var (
	doubles = []float64{math.NaN(), math.Inf(1), math.Inf(-1), 2.5, -1000.0101, 0x1p63, -0x1p31, 1e300}
	singles = []float32{float32(math.NaN()), float32(math.Inf(1)), 2.5, -1000.0101, 2147483647.0, 0x1p63}
	longs   = []int64{math.MaxInt64, math.MinInt64, 1<<60 + 1<<36 + 1, -3000}
	ints    = []int32{math.MaxInt32, math.MinInt32, 16777217, -3000}
)

func BenchmarkNarrowing(b *testing.B) {
	b.Run("d2i", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sinkI32 = conv.Float64ToInt32(doubles[i%len(doubles)])
		}
	})
	b.Run("d2l", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sinkI64 = conv.Float64ToInt64(doubles[i%len(doubles)])
		}
	})
	b.Run("f2i", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sinkI32 = conv.Float32ToInt32(singles[i%len(singles)])
		}
	})
	b.Run("f2l", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sinkI64 = conv.Float32ToInt64(singles[i%len(singles)])
		}
	})
}

func BenchmarkWidening(b *testing.B) {
	b.Run("i2d", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sinkF64 = conv.Int32ToFloat64(ints[i%len(ints)])
		}
	})
	b.Run("l2d", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sinkF64 = conv.Int64ToFloat64(longs[i%len(longs)])
		}
	})
	b.Run("i2f", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sinkF32 = conv.Int32ToFloat32(ints[i%len(ints)])
		}
	})
	b.Run("l2f", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sinkF32 = conv.Int64ToFloat32(longs[i%len(longs)])
		}
	})
}

// BenchmarkDispatch times the opcode path an interpreter takes.
func BenchmarkDispatch(b *testing.B) {
	operand := common.Float64(2.5)

	for i := 0; i < b.N; i++ {
		v, err := conv.Dispatch(0x8e, operand)
		if err != nil {
			b.Fatal(err)
		}
		sinkI32 = v.Int32()
	}
}
