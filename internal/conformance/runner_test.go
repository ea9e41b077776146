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
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/require"
	"mosn.io/pkg/log"

	"mosn.io/numconv/common"
	"mosn.io/numconv/common/mock"
	"mosn.io/numconv/conv"
)

func init() {
	log.DefaultLogger.SetLogLevel(log.ERROR)
}

func defaultSuites(t *testing.T) []*Suite {
	suites, err := DefaultSuites()
	require.NoError(t, err)
	return suites
}

func TestRunnerNative(t *testing.T) {
	r := NewRunner()

	report, err := r.Run(context.Background(), defaultSuites(t)...)
	require.NoError(t, err)
	require.NotEmpty(t, report.ID)
	require.True(t, report.Passed(), "%v", report.Failures())
	require.Len(t, report.Results, 1)
	require.Equal(t, "native", report.Results[0].Converter)
	require.Equal(t, 73, report.Results[0].Passed)
	require.Equal(t, "ok   native: 73/73 passed\n", report.Summary())

	pass := r.Registry().Get("conformance.native.pass").(metrics.Counter)
	require.Equal(t, int64(73), pass.Count())
}

// roundingF2L converts f2l by rounding instead of truncating, the bug the
// suites are written to catch.
func roundingF2L(op string, v common.Value) (common.Value, error) {
	if op == "f2l" && v.Float32() == 2.5 {
		return common.Int64(3), nil
	}
	return conv.NewEngine().Convert(op, v)
}

func TestRunnerReportsDisagreement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	broken := mock.NewMockConverter(ctrl)
	broken.EXPECT().Name().Return("broken").AnyTimes()
	broken.EXPECT().Convert(gomock.Any(), gomock.Any()).DoAndReturn(roundingF2L).AnyTimes()

	registry := metrics.NewRegistry()
	r := NewRunner(
		WithConverters(conv.NewEngine(), broken),
		WithConcurrency(2),
		WithRegistry(registry),
	)

	report, err := r.Run(context.Background(), defaultSuites(t)...)
	require.NoError(t, err)
	require.False(t, report.Passed())

	failures := report.Failures()
	require.Len(t, failures, 1)
	f := failures[0]
	require.Equal(t, "broken", f.Converter)
	require.Equal(t, "float-conversion", f.Vector.Suite)
	require.Equal(t, "f2l", f.Vector.Op.Name)
	require.Equal(t, "broken: float-conversion[20] f2l(2.5) = 3 (bits:0x0000000000000003), want 2 (bits:0x0000000000000002)", f.String())

	require.Equal(t, "ok   native: 73/73 passed\nFAIL broken: 72/73 passed\n", report.Summary())

	require.Equal(t, int64(72), registry.Get("conformance.broken.pass").(metrics.Counter).Count())
	require.Equal(t, int64(1), registry.Get("conformance.broken.fail").(metrics.Counter).Count())
}

func TestRunnerRecordsConverterErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := mock.NewMockConverter(ctrl)
	failing.EXPECT().Name().Return("failing").AnyTimes()
	failing.EXPECT().Convert("i2d", gomock.Any()).Return(common.Value{}, errors.New("trap")).Times(1)

	s, err := ParseSuite([]byte("name: one\ncases:\n  - {op: i2d, in: \"1\", want: \"1\"}\n"))
	require.NoError(t, err)

	report, err := NewRunner(WithConverters(failing)).Run(context.Background(), s)
	require.NoError(t, err)

	failures := report.Failures()
	require.Len(t, failures, 1)
	require.EqualError(t, failures[0].Err, "trap")
	require.Equal(t, "failing: one[0] i2d(1): error: trap", failures[0].String())
}

func TestRunnerContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().Run(ctx, defaultSuites(t)...)
	require.ErrorIs(t, err, context.Canceled)
}
