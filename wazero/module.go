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

package wazero

import (
	"fmt"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

type Module struct {
	vm          *VM
	rawBytes    []byte
	exportNames []string
	signatures  map[string]signature
}

// signature is the single param and result of an exported conversion.
type signature struct {
	param  api.ValueType
	result api.ValueType
}

func NewModule(vm *VM, wasmBytes []byte) *Module {
	m := &Module{vm: vm, rawBytes: wasmBytes, signatures: map[string]signature{}}

	m.Init()

	return m
}

// Init compiles the binary once to read the exported functions. Compilation
// is cached by the VM, so instances compile it again for free.
func (w *Module) Init() {
	r := wazero.NewRuntimeWithConfig(ctx, w.vm.config)
	defer r.Close(ctx)

	m, err := r.CompileModule(ctx, w.rawBytes)
	if err != nil {
		panic(err)
	}

	for export, def := range m.ExportedFunctions() {
		params, results := def.ParamTypes(), def.ResultTypes()
		if len(params) != 1 || len(results) != 1 {
			continue
		}
		w.exportNames = append(w.exportNames, export)
		w.signatures[export] = signature{param: params[0], result: results[0]}
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
		return signature{}, fmt.Errorf("[wazero][module] export %q not found", name)
	}
	return sig, nil
}
