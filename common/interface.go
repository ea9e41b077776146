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

import "errors"

var (
	ErrUnknownOp   = errors.New("unknown conversion op")
	ErrOperandKind = errors.New("operand kind mismatch")
)

// Converter applies a named conversion (JVM mnemonic such as "d2i") to a
// value. The native engine and the reference runtimes all implement it.
type Converter interface {
	Name() string
	Convert(op string, v Value) (Value, error)
	Close() error
}
