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

	"mosn.io/numconv/internal/conformance"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Backends    []string
	Concurrency int
}

func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify [suite.yaml...]",
		Short: "Check converters against conformance suites",
		Long: `Check the native engine, and optionally reference runtimes, against
conformance suites. Without arguments the built-in suites are used.

Example:
  numconv verify
  numconv verify --backend wazero ./my-suite.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts, args)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Backends, "backend", nil, "also check a reference runtime (wazero)")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 4, "converters checked at once")

	return cmd
}

func loadSuites(files []string) ([]*conformance.Suite, error) {
	if len(files) == 0 {
		return conformance.DefaultSuites()
	}

	var suites []*conformance.Suite
	for _, f := range files {
		s, err := conformance.LoadSuite(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		suites = append(suites, s)
	}
	return suites, nil
}

func runVerify(cmd *cobra.Command, opts *VerifyOptions, files []string) error {
	suites, err := loadSuites(files)
	if err != nil {
		return err
	}

	converters, closeAll, err := openConverters(opts.Backends)
	if err != nil {
		return err
	}
	defer closeAll()

	runner := conformance.NewRunner(
		conformance.WithConverters(converters...),
		conformance.WithConcurrency(opts.Concurrency),
	)

	report, err := runner.Run(cmd.Context(), suites...)
	if err != nil {
		log.DefaultLogger.Errorf("[numconv][verify] run failed, err: %v", err)
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range report.Failures() {
		fmt.Fprintln(out, f)
	}
	fmt.Fprint(out, report.Summary())

	if !report.Passed() {
		return fmt.Errorf("%d conformance failures", len(report.Failures()))
	}
	return nil
}
