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
	"mosn.io/numconv/internal/refmodule"
	"mosn.io/numconv/wazero"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// ValidBackends are the reference runtimes a command can check against.
var ValidBackends = []string{"wazero"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "numconv",
		Short: "JVM primitive numeric conversions",
		Long: `Convert values with the i2d/d2i/l2d/d2l/i2f/f2i/l2f/f2l instructions and
check converters against conformance suites.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.Verbose {
				log.DefaultLogger.SetLogLevel(log.DEBUG)
			} else {
				log.DefaultLogger.SetLogLevel(log.ERROR)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewTableCommand(opts))

	return cmd
}

// openBackend starts the named reference runtime. The returned converter
// must be closed.
func openBackend(name string) (common.Converter, error) {
	switch name {
	case "wazero":
		vm := wazero.NewVM()
		ins := vm.NewModule(refmodule.Binary()).NewInstance()
		if err := ins.Start(); err != nil {
			_ = vm.Close()
			return nil, fmt.Errorf("failed to start %s: %w", name, err)
		}
		return &backend{Converter: ins, vm: vm}, nil
	}
	return nil, fmt.Errorf("unknown backend %q: must be one of %v", name, ValidBackends)
}

// backend closes the VM along with the instance.
type backend struct {
	common.Converter
	vm *wazero.VM
}

func (b *backend) Close() error {
	_ = b.Converter.Close()
	return b.vm.Close()
}

// openConverters returns the native engine followed by the named backends.
func openConverters(backends []string) ([]common.Converter, func(), error) {
	converters := []common.Converter{conv.NewEngine()}
	closeAll := func() {
		for _, c := range converters {
			_ = c.Close()
		}
	}

	for _, name := range backends {
		c, err := openBackend(name)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		converters = append(converters, c)
	}

	return converters, closeAll, nil
}
