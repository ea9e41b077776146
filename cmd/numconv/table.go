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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mosn.io/numconv/conv"
)

func NewTableCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the conversion instructions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-4s %-6s %-7s %-7s %s\n", "OP", "OPCODE", "FROM", "TO", "WASM")
			for _, op := range conv.Ops() {
				fmt.Fprintf(out, "%-4s 0x%02x   %-7s %-7s %s\n", op.Name, op.Opcode, op.From, op.To, op.WasmName)
			}
		},
	}
}
