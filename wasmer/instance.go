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
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	wasmerGo "github.com/wasmerio/wasmer-go/wasmer"
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
	importObject *wasmerGo.ImportObject
	instance     *wasmerGo.Instance

	lock     sync.Mutex
	started  uint32
	refCount int
	stopCond *sync.Cond

	// wasm functions are not reentrant
	callLock  sync.Mutex
	funcCache sync.Map // string -> *wasmerGo.Function
}

var _ common.Converter = (*Instance)(nil)

type InstanceOptions func(instance *Instance)

func InstanceWithImportObject(imo *wasmerGo.ImportObject) InstanceOptions {
	return func(instance *Instance) {
		if imo != nil {
			instance.importObject = imo
		}
	}
}

func NewInstance(vm *VM, module *Module, options ...InstanceOptions) *Instance {
	ins := &Instance{
		vm:           vm,
		module:       module,
		importObject: wasmerGo.NewImportObject(),
		lock:         sync.Mutex{},
	}
	ins.stopCond = sync.NewCond(&ins.lock)

	for _, option := range options {
		option(ins)
	}

	return ins
}

func (i *Instance) Name() string {
	return i.vm.Name()
}

func (i *Instance) Acquire() bool {
	i.lock.Lock()
	defer i.lock.Unlock()

	if !i.checkStart() {
		return false
	}

	i.refCount++

	return true
}

func (i *Instance) Release() {
	i.lock.Lock()
	i.refCount--

	if i.refCount <= 0 {
		i.stopCond.Broadcast()
	}
	i.lock.Unlock()
}

func (i *Instance) GetModule() *Module {
	return i.module
}

func (i *Instance) Start() error {
	i.lock.Lock()
	defer i.lock.Unlock()

	if i.checkStart() {
		return ErrInstanceAlreadyStart
	}

	ins, err := wasmerGo.NewInstance(i.module.module, i.importObject)
	if err != nil {
		log.DefaultLogger.Errorf("[wasmer][instance] Start fail to new wasmer-go instance, err: %v", err)
		return err
	}

	i.instance = ins

	atomic.StoreUint32(&i.started, 1)

	return nil
}

// Stop drops the instance once every Acquire has been released. It returns
// immediately; the wait happens in the background.
func (i *Instance) Stop() {
	utils.GoWithRecover(func() {
		i.lock.Lock()
		for i.refCount > 0 {
			i.stopCond.Wait()
		}
		if atomic.CompareAndSwapUint32(&i.started, 1, 0) {
			i.funcCache.Range(func(k, _ interface{}) bool {
				i.funcCache.Delete(k)
				return true
			})
			i.instance = nil
		}
		i.lock.Unlock()
	}, nil)
}

// Close implements io.Closer
func (i *Instance) Close() error {
	i.Stop()
	return nil
}

// return true is Instance is started, false if not started.
func (i *Instance) checkStart() bool {
	return atomic.LoadUint32(&i.started) == 1
}

func (i *Instance) getExportsFunc(funcName string) (*wasmerGo.Function, error) {
	if v, ok := i.funcCache.Load(funcName); ok {
		return v.(*wasmerGo.Function), nil
	}

	f, err := i.instance.Exports.GetRawFunction(funcName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnknownOp, err)
	}

	i.funcCache.Store(funcName, f)

	return f, nil
}

// Convert runs the export named op on v inside the wasm runtime.
func (i *Instance) Convert(op string, v common.Value) (common.Value, error) {
	if !i.Acquire() {
		log.DefaultLogger.Errorf("[wasmer][instance] call Convert before starting instance")
		return common.Value{}, ErrInstanceNotStart
	}
	defer i.Release()

	sig, err := i.module.signature(op)
	if err != nil {
		return common.Value{}, fmt.Errorf("%w: %v", common.ErrUnknownOp, err)
	}

	kind, arg, err := convertFromValue(v)
	if err != nil {
		return common.Value{}, fmt.Errorf("%w: %v", common.ErrOperandKind, err)
	}
	if kind != sig.param {
		return common.Value{}, fmt.Errorf("%w: %s takes %s, have %s", common.ErrOperandKind, op, sig.param, kind)
	}

	i.callLock.Lock()
	defer i.callLock.Unlock()

	f, err := i.getExportsFunc(op)
	if err != nil {
		return common.Value{}, err
	}

	ret, err := f.Call(arg)
	if err != nil {
		i.HandleError(err)
		return common.Value{}, err
	}

	return convertToValue(sig.result, ret)
}

func (i *Instance) HandleError(err error) {
	var trapError *wasmerGo.TrapError
	if !errors.As(err, &trapError) {
		log.DefaultLogger.Errorf("[wasmer][instance] HandleError err: %v", err)
		return
	}

	log.DefaultLogger.Errorf("[wasmer][instance] HandleError err: %v, trace:", err)

	for _, t := range trapError.Trace() {
		log.DefaultLogger.Errorf("[wasmer][instance]\t funcIndex: %v, funcOffset: 0x%08x, moduleOffset: 0x%08x",
			t.FunctionIndex(), t.FunctionOffset(), t.ModuleOffset())
	}
}
