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

package wasmer

import (
	"fmt"
	"sort"

	wasmerGo "github.com/wasmerio/wasmer-go/wasmer"
)

type Module struct {
	vm          *VM
	module      *wasmerGo.Module
	exportNames []string
	signatures  map[string]signature
	rawBytes    []byte
}

// signature is the single param and result of an exported conversion.
type signature struct {
	param  wasmerGo.ValueKind
	result wasmerGo.ValueKind
}

func NewModule(vm *VM, module *wasmerGo.Module, wasmBytes []byte) *Module {
	m := &Module{
		vm:         vm,
		module:     module,
		signatures: map[string]signature{},
		rawBytes:   wasmBytes,
	}

	m.Init()

	return m
}

// Init reads the single-param, single-result exported functions.
func (w *Module) Init() {
	for _, export := range w.module.Exports() {
		ft := export.Type().IntoFunctionType()
		if ft == nil {
			continue
		}
		params, results := ft.Params(), ft.Results()
		if len(params) != 1 || len(results) != 1 {
			continue
		}
		w.exportNames = append(w.exportNames, export.Name())
		w.signatures[export.Name()] = signature{param: params[0].Kind(), result: results[0].Kind()}
	}
	sort.Strings(w.exportNames)
}

func (w *Module) NewInstance() *Instance {
	return NewInstance(w.vm, w)
}

// GetExportNames returns the single-param, single-result exports, sorted.
func (w *Module) GetExportNames() []string {
	return w.exportNames
}

func (w *Module) signature(name string) (signature, error) {
	sig, ok := w.signatures[name]
	if !ok {
		return signature{}, fmt.Errorf("[wasmer][module] export %q not found", name)
	}
	return sig, nil
}
