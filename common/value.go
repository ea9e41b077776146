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

package common

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is one of the four primitive value domains.
type Kind uint8

const (
	KindInt32 Kind = iota + 1
	KindInt64
	KindFloat32
	KindFloat64
)

var kindNames = map[Kind]string{
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindFloat32: "float32",
	KindFloat64: "float64",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Letter returns the JVM type letter of the kind: i, l, f or d.
func (k Kind) Letter() byte {
	switch k {
	case KindInt32:
		return 'i'
	case KindInt64:
		return 'l'
	case KindFloat32:
		return 'f'
	case KindFloat64:
		return 'd'
	}
	return '?'
}

// WasmName returns the WebAssembly value type name of the kind.
func (k Kind) WasmName() string {
	switch k {
	case KindInt32:
		return "i32"
	case KindInt64:
		return "i64"
	case KindFloat32:
		return "f32"
	case KindFloat64:
		return "f64"
	}
	return "?"
}

func (k Kind) Valid() bool {
	return k >= KindInt32 && k <= KindFloat64
}

func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

var ErrInvalidValue = errors.New("invalid value")

// Value is a scalar tagged with its domain. Integers hold their sign-extended
// two's-complement pattern, floats their IEEE-754 bits, so comparison is
// bit-exact.
type Value struct {
	kind Kind
	bits uint64
}

func Int32(v int32) Value {
	return Value{kind: KindInt32, bits: uint64(int64(v))}
}

func Int64(v int64) Value {
	return Value{kind: KindInt64, bits: uint64(v)}
}

func Float32(v float32) Value {
	return Value{kind: KindFloat32, bits: uint64(math.Float32bits(v))}
}

func Float64(v float64) Value {
	return Value{kind: KindFloat64, bits: math.Float64bits(v)}
}

// FromBits builds a value from a raw pattern. Int32 accepts either a 32-bit
// pattern or its sign extension; other patterns wider than the kind are
// rejected.
func FromBits(kind Kind, bits uint64) (Value, error) {
	switch kind {
	case KindInt32:
		switch {
		case bits <= math.MaxUint32:
			return Int32(int32(uint32(bits))), nil
		case int64(bits) < math.MinInt32 || int64(bits) > math.MaxInt32:
			return Value{}, fmt.Errorf("%w: bits 0x%x overflow %s", ErrInvalidValue, bits, kind)
		}
	case KindFloat32:
		if bits > math.MaxUint32 {
			return Value{}, fmt.Errorf("%w: bits 0x%x overflow %s", ErrInvalidValue, bits, kind)
		}
	case KindInt64, KindFloat64:
	default:
		return Value{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidValue, uint8(kind))
	}
	return Value{kind: kind, bits: bits}, nil
}

func (v Value) Kind() Kind {
	return v.kind
}

// Bits returns the raw pattern. Int32 values are sign-extended.
func (v Value) Bits() uint64 {
	return v.bits
}

func (v Value) Int32() int32 {
	return int32(v.bits)
}

func (v Value) Int64() int64 {
	return int64(v.bits)
}

func (v Value) Float32() float32 {
	return math.Float32frombits(uint32(v.bits))
}

func (v Value) Float64() float64 {
	return math.Float64frombits(v.bits)
}

func (v Value) IsZero() bool {
	return v.kind == 0
}

// Equal reports whether both values have the same kind and bit pattern.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.bits == o.bits
}

func (v Value) String() string {
	switch v.kind {
	case KindInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case KindFloat32:
		return strconv.FormatFloat(float64(v.Float32()), 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	}
	return "<invalid>"
}

// BitsString renders the raw pattern at the width of the kind.
func (v Value) BitsString() string {
	switch v.kind {
	case KindInt32, KindFloat32:
		return fmt.Sprintf("bits:0x%08x", uint32(v.bits))
	default:
		return fmt.Sprintf("bits:0x%016x", v.bits)
	}
}

const bitsPrefix = "bits:"

// ParseValue parses text in the given domain. Accepted forms are decimal and
// hex-float literals, NaN and Inf spellings, and raw patterns written as
// bits:0x... . Float32 text is rounded once, directly to single precision.
func ParseValue(kind Kind, text string) (Value, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Value{}, fmt.Errorf("%w: empty %s", ErrInvalidValue, kind)
	}

	if strings.HasPrefix(s, bitsPrefix) {
		raw, err := strconv.ParseUint(strings.TrimPrefix(s, bitsPrefix), 0, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q: %v", ErrInvalidValue, text, err)
		}
		return FromBits(kind, raw)
	}

	switch kind {
	case KindInt32:
		i, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q as %s: %v", ErrInvalidValue, text, kind, err)
		}
		return Int32(int32(i)), nil
	case KindInt64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q as %s: %v", ErrInvalidValue, text, kind, err)
		}
		return Int64(i), nil
	case KindFloat32:
		f, err := parseFloat(s, 32)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q as %s: %v", ErrInvalidValue, text, kind, err)
		}
		return Float32(float32(f)), nil
	case KindFloat64:
		f, err := parseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q as %s: %v", ErrInvalidValue, text, kind, err)
		}
		return Float64(f), nil
	}
	return Value{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidValue, uint8(kind))
}

// parseFloat accepts what strconv does, but keeps out-of-range literals as
// the infinity strconv rounds them to instead of failing.
func parseFloat(s string, bitSize int) (float64, error) {
	f, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange && math.IsInf(f, 0) {
			return f, nil
		}
		return 0, err
	}
	return f, nil
}
