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

package conformance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rcrowley/go-metrics"
	"golang.org/x/sync/errgroup"
	"mosn.io/pkg/log"

	"mosn.io/numconv/common"
	"mosn.io/numconv/conv"
)

const defaultConcurrency = 4

type Runner struct {
	converters  []common.Converter
	concurrency int
	registry    metrics.Registry
}

type Option func(r *Runner)

// WithConverters sets the converters to check. The default is the native
// engine alone.
func WithConverters(converters ...common.Converter) Option {
	return func(r *Runner) {
		r.converters = converters
	}
}

// WithConcurrency bounds how many converters are checked at once.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithRegistry records pass/fail counters into registry.
func WithRegistry(registry metrics.Registry) Option {
	return func(r *Runner) {
		if registry != nil {
			r.registry = registry
		}
	}
}

func NewRunner(options ...Option) *Runner {
	r := &Runner{
		converters:  []common.Converter{conv.NewEngine()},
		concurrency: defaultConcurrency,
		registry:    metrics.NewRegistry(),
	}

	for _, option := range options {
		option(r)
	}

	return r
}

func (r *Runner) Registry() metrics.Registry {
	return r.registry
}

// Run checks every converter against every vector of suites. A converter
// that disagrees or errors is a failure in the report, not an error; Run
// fails only on invalid suites or a done context.
func (r *Runner) Run(ctx context.Context, suites ...*Suite) (*Report, error) {
	var vectors []Vector
	for _, s := range suites {
		vs, err := s.Vectors()
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vs...)
	}

	report := &Report{
		ID:      uuid.Must(uuid.NewV7()).String(),
		Vectors: len(vectors),
		Results: make([]*Result, len(r.converters)),
	}

	log.DefaultLogger.Infof("[conformance][runner] run %s: %d vectors, %d converters",
		report.ID, len(vectors), len(r.converters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, c := range r.converters {
		i, c := i, c
		g.Go(func() error {
			result, err := r.check(gctx, c, vectors)
			if err != nil {
				return err
			}
			report.Results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("conformance run %s: %w", report.ID, err)
	}

	return report, nil
}

func (r *Runner) check(ctx context.Context, c common.Converter, vectors []Vector) (*Result, error) {
	name := c.Name()
	result := &Result{Converter: name}

	pass := metrics.GetOrRegisterCounter(fmt.Sprintf("conformance.%s.pass", name), r.registry)
	fail := metrics.GetOrRegisterCounter(fmt.Sprintf("conformance.%s.fail", name), r.registry)

	for _, v := range vectors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		have, err := c.Convert(v.Op.Name, v.In)
		if err == nil && have.Equal(v.Want) {
			result.Passed++
			pass.Inc(1)
			continue
		}

		f := Failure{Converter: name, Vector: v, Have: have, Err: err}
		log.DefaultLogger.Warnf("[conformance][runner] %s", f)
		result.Failures = append(result.Failures, f)
		fail.Inc(1)
	}

	log.DefaultLogger.Debugf("[conformance][runner] %s: %d/%d passed", name, result.Passed, len(vectors))

	return result, nil
}
