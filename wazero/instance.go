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
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"mosn.io/pkg/log"
	"mosn.io/pkg/utils"

	"mosn.io/numconv/common"
)

var (
	ErrInstanceNotStart     = errors.New("instance has not started")
	ErrInstanceAlreadyStart = errors.New("instance has already started")
)

type Instance struct {
	vm           *VM
	module       *Module
	moduleConfig wazero.ModuleConfig

	runtime  wazero.Runtime
	instance api.Module

	lock     sync.Mutex
	started  uint32
	refCount int
	stopCond *sync.Cond

	// wasm functions are not reentrant
	callLock  sync.Mutex
	funcCache sync.Map // string -> api.Function
}

var _ common.Converter = (*Instance)(nil)

type InstanceOptions func(instance *Instance)

func InstanceWithModuleConfig(config wazero.ModuleConfig) InstanceOptions {
	return func(instance *Instance) {
		if config != nil {
			instance.moduleConfig = config
		}
	}
}

func NewInstance(vm *VM, module *Module, options ...InstanceOptions) *Instance {
	ins := &Instance{
		vm:           vm,
		module:       module,
		moduleConfig: wazero.NewModuleConfig(),
		lock:         sync.Mutex{},
	}
	ins.stopCond = sync.NewCond(&ins.lock)

	for _, option := range options {
		option(ins)
	}

	return ins
}

func (w *Instance) Name() string {
	return w.vm.Name()
}

func (w *Instance) Acquire() bool {
	w.lock.Lock()
	defer w.lock.Unlock()

	if !w.checkStart() {
		return false
	}

	w.refCount++

	return true
}

func (w *Instance) Release() {
	w.lock.Lock()
	w.refCount--

	if w.refCount <= 0 {
		w.stopCond.Broadcast()
	}
	w.lock.Unlock()
}

func (w *Instance) GetModule() *Module {
	return w.module
}

func (w *Instance) Start() error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.checkStart() {
		return ErrInstanceAlreadyStart
	}

	r := wazero.NewRuntimeWithConfig(ctx, w.vm.config)

	compiled, err := r.CompileModule(ctx, w.module.rawBytes)
	if err != nil {
		log.DefaultLogger.Errorf("[wazero][instance] Start fail to compile module, err: %v", err)
		_ = r.Close(ctx)
		return err
	}

	ins, err := r.InstantiateModule(ctx, compiled, w.moduleConfig)
	if err != nil {
		log.DefaultLogger.Errorf("[wazero][instance] Start fail to instantiate module, err: %v", err)
		_ = r.Close(ctx)
		return err
	}

	w.runtime = r
	w.instance = ins

	atomic.StoreUint32(&w.started, 1)

	return nil
}

// Stop closes the runtime once every Acquire has been released. It returns
// immediately; the close happens in the background.
func (w *Instance) Stop() {
	utils.GoWithRecover(func() {
		w.lock.Lock()
		for w.refCount > 0 {
			w.stopCond.Wait()
		}
		if atomic.CompareAndSwapUint32(&w.started, 1, 0) {
			if err := w.runtime.Close(ctx); err != nil {
				log.DefaultLogger.Warnf("[wazero][instance] Stop fail to close runtime, err: %v", err)
			}
			w.funcCache.Range(func(k, _ interface{}) bool {
				w.funcCache.Delete(k)
				return true
			})
		}
		w.lock.Unlock()
	}, nil)
}

// Close implements io.Closer
func (w *Instance) Close() error {
	w.Stop()
	return nil
}

// return true is Instance is started, false if not started.
func (w *Instance) checkStart() bool {
	return atomic.LoadUint32(&w.started) == 1
}

func (w *Instance) getExportsFunc(funcName string) (api.Function, error) {
	if f, ok := w.funcCache.Load(funcName); ok {
		return f.(api.Function), nil
	}

	f := w.instance.ExportedFunction(funcName)
	if f == nil {
		return nil, fmt.Errorf("%w: %q is not exported", common.ErrUnknownOp, funcName)
	}
	w.funcCache.Store(funcName, f)

	return f, nil
}

// Convert runs the export named op on v inside the wasm runtime.
func (w *Instance) Convert(op string, v common.Value) (common.Value, error) {
	if !w.Acquire() {
		log.DefaultLogger.Errorf("[wazero][instance] call Convert before starting instance")
		return common.Value{}, ErrInstanceNotStart
	}
	defer w.Release()

	sig, err := w.module.signature(op)
	if err != nil {
		return common.Value{}, fmt.Errorf("%w: %v", common.ErrUnknownOp, err)
	}

	t, slot, err := convertFromValue(v)
	if err != nil {
		return common.Value{}, fmt.Errorf("%w: %v", common.ErrOperandKind, err)
	}
	if t != sig.param {
		return common.Value{}, fmt.Errorf("%w: %s takes %s, have %s", common.ErrOperandKind,
			op, api.ValueTypeName(sig.param), api.ValueTypeName(t))
	}

	w.callLock.Lock()
	defer w.callLock.Unlock()

	f, err := w.getExportsFunc(op)
	if err != nil {
		return common.Value{}, err
	}

	ret, err := f.Call(ctx, slot)
	if err != nil {
		log.DefaultLogger.Errorf("[wazero][instance] Convert fail to call %s, err: %v", op, err)
		return common.Value{}, err
	}
	if len(ret) != 1 {
		return common.Value{}, fmt.Errorf("[wazero][instance] %s returned %d results", op, len(ret))
	}

	return convertToValue(sig.result, ret[0])
}
