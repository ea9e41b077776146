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
	"encoding/binary"
	"fmt"
)

const (
	// u32Len is the fixed size of a uint32 in little-endian encoding.
	u32Len = 4
	// valueLen is one kind byte followed by a little-endian uint64 pattern.
	valueLen = 1 + 8
)

// EncodeValues encodes values into bytes: a u32 count, then per value the
// kind byte and its 64-bit pattern.
func EncodeValues(values []Value) []byte {
	b := make([]byte, u32Len+valueLen*len(values))
	binary.LittleEndian.PutUint32(b, uint32(len(values)))

	ptr := u32Len
	for _, v := range values {
		b[ptr] = byte(v.kind)
		binary.LittleEndian.PutUint64(b[ptr+1:], v.bits)
		ptr += valueLen
	}

	return b
}

// DecodeValues decodes values from rawData produced by EncodeValues.
func DecodeValues(rawData []byte) ([]Value, error) {
	if len(rawData) < u32Len {
		return nil, fmt.Errorf("%w: batch header needs %d bytes, have %d", ErrInvalidValue, u32Len, len(rawData))
	}

	count := int(binary.LittleEndian.Uint32(rawData[0:u32Len]))

	// count * (kind + bits)
	if want := u32Len + valueLen*count; len(rawData) != want {
		return nil, fmt.Errorf("%w: batch of %d values needs %d bytes, have %d", ErrInvalidValue, count, want, len(rawData))
	}

	res := make([]Value, 0, count)

	for ptr := u32Len; ptr < len(rawData); ptr += valueLen {
		v, err := FromBits(Kind(rawData[ptr]), binary.LittleEndian.Uint64(rawData[ptr+1:ptr+valueLen]))
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", len(res), err)
		}
		res = append(res, v)
	}

	return res, nil
}
