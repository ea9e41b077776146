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
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"mosn.io/pkg/log"

	"mosn.io/numconv/common"
	"mosn.io/numconv/conv"
	"mosn.io/numconv/internal/refmodule"
	"mosn.io/numconv/wazero"
)

// maxBatchBytes bounds a /batch request body.
const maxBatchBytes = 1 << 20

var lock sync.Mutex
var instance *wazero.Instance

// converter picks the converter named by the backend query parameter. The
// reference module runs in wazero unless backend=native.
func converter(r *http.Request) (common.Converter, error) {
	if r.URL.Query().Get("backend") == "native" {
		return conv.NewEngine(), nil
	}
	ins, err := getWasmInstance()
	if err != nil {
		return nil, err
	}
	return ins, nil
}

// ServeConvert handles GET /convert?op=d2i&value=NaN.
func ServeConvert(w http.ResponseWriter, r *http.Request) {
	log.DefaultLogger.Debugf("[example] receive request %s", r.URL)

	query := r.URL.Query()
	op, err := conv.Lookup(query.Get("op"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in, err := common.ParseValue(op.From, query.Get("value"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := converter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out, err := c.Convert(op.Name, in)
	if err != nil {
		log.DefaultLogger.Errorf("[example] %s %s(%s) failed, err: %v", c.Name(), op.Name, in, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Numconv-Bits", out.BitsString())
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintln(w, out)
}

// ServeBatch handles POST /batch?op=f2l. The body and the response are
// encoded with common.EncodeValues.
func ServeBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	op, err := conv.Lookup(r.URL.Query().Get("op"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	values, err := common.DecodeValues(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := converter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	results := make([]common.Value, 0, len(values))
	for i, v := range values {
		out, err := c.Convert(op.Name, v)
		if errors.Is(err, common.ErrOperandKind) {
			http.Error(w, fmt.Sprintf("value %d: %v", i, err), http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		results = append(results, out)
	}

	log.DefaultLogger.Debugf("[example] %s converted %d values with %s", c.Name(), len(results), op.Name)

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(common.EncodeValues(results))
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/convert", ServeConvert)
	mux.HandleFunc("/batch", ServeBatch)
	return mux
}

func main() {
	if err := http.ListenAndServe("127.0.0.1:2045", newMux()); err != nil {
		log.DefaultLogger.Errorf("[example] serve failed, err: %v", err)
	}
}

func getWasmInstance() (*wazero.Instance, error) {
	lock.Lock()
	defer lock.Unlock()

	if instance == nil {
		ins := wazero.NewVM().NewModule(refmodule.Binary()).NewInstance()
		if err := ins.Start(); err != nil {
			return nil, err
		}
		instance = ins
	}

	return instance, nil
}
