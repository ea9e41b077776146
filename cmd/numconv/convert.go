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
	"mosn.io/pkg/log"

	"mosn.io/numconv/common"
	"mosn.io/numconv/conv"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Bits     bool
	Backends []string
}

func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert [flags] <op> <value>",
		Short: "Convert one value",
		Long: `Convert one value with a conversion instruction.

The value is parsed in the source domain of the op: decimal or hex-float
literals, NaN, Inf, +Inf, -Inf, or a raw pattern written as bits:0x... .
Flags go before the op so that negative values are not read as flags.

Example:
  numconv convert d2i NaN
  numconv convert --bits f2l 2147483647.0
  numconv convert --backend wazero d2l -Inf`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args[0], args[1])
		},
	}
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().BoolVar(&opts.Bits, "bits", false, "also print the raw bit pattern")
	cmd.Flags().StringSliceVar(&opts.Backends, "backend", nil, "cross-check against a reference runtime (wazero)")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *ConvertOptions, name, text string) error {
	op, err := conv.Lookup(name)
	if err != nil {
		return err
	}
	in, err := common.ParseValue(op.From, text)
	if err != nil {
		return err
	}

	converters, closeAll, err := openConverters(opts.Backends)
	if err != nil {
		return err
	}
	defer closeAll()

	var result common.Value
	for i, c := range converters {
		v, err := c.Convert(op.Name, in)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
		log.DefaultLogger.Debugf("[numconv][convert] %s %s(%s) = %s", c.Name(), op.Name, in, v)

		if i == 0 {
			result = v
		} else if !v.Equal(result) {
			return fmt.Errorf("%s(%s): %s gives %s (%s), %s gives %s (%s)", op.Name, in,
				converters[0].Name(), result, result.BitsString(), c.Name(), v, v.BitsString())
		}
	}

	if opts.Bits {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", result, result.BitsString())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), result)
	}

	return nil
}
