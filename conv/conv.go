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

// Package conv implements the primitive numeric conversions of the JVM
// instruction set: int/long to float/double and back.
//
// Integer to floating point rounds to nearest even. Floating point to integer
// truncates toward zero and saturates: NaN becomes 0, values at or beyond a
// bound of the destination become that bound. No conversion can fail.
package conv

import "math"

// Destination bounds as floats. Both are exact in either float width, the
// integer maxima are not: upper checks must be >= 2^31 and >= 2^63.
const (
	twoPow31 = 0x1p31
	twoPow63 = 0x1p63
)

// Int32ToFloat64 is i2d. Every int32 is exact in a float64.
func Int32ToFloat64(v int32) float64 {
	return float64(v)
}

// Int64ToFloat64 is l2d, rounded to nearest even.
func Int64ToFloat64(v int64) float64 {
	return float64(v)
}

// Int32ToFloat32 is i2f, rounded to nearest even.
func Int32ToFloat32(v int32) float32 {
	return float32(v)
}

// Int64ToFloat32 is l2f. The int64 is rounded once, directly to single
// precision; going through float64 first could round twice.
func Int64ToFloat32(v int64) float32 {
	return float32(v)
}

// Float32ToFloat64 widens a single to a double. It is exact, keeps the sign
// of zeros and infinities, and is the only path by which the float32
// narrowing functions reach the float64 ones.
func Float32ToFloat64(v float32) float64 {
	return float64(v)
}

// Float64ToInt32 is d2i.
func Float64ToInt32(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= twoPow31:
		return math.MaxInt32
	case v <= -twoPow31:
		return math.MinInt32
	}
	// |v| < 2^31: Go conversion truncates toward zero.
	return int32(v)
}

// Float64ToInt64 is d2l.
func Float64ToInt64(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= twoPow63:
		return math.MaxInt64
	case v <= -twoPow63:
		return math.MinInt64
	}
	return int64(v)
}

// Float32ToInt32 is f2i.
func Float32ToInt32(v float32) int32 {
	return Float64ToInt32(Float32ToFloat64(v))
}

// Float32ToInt64 is f2l. The policy applies to the stored single, so
// 2147483647.0f, which is stored as 2^31, converts to 2147483648.
func Float32ToInt64(v float32) int64 {
	return Float64ToInt64(Float32ToFloat64(v))
}
