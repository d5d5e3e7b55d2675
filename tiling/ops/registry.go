// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ops

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/ajroetker/go-tiling/tiling"
)

// Registry maps operator names to their tiling adapters. It is safe for
// concurrent use.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Op
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Op)}
}

// Register adds op. Registering a name twice is an error.
func (r *Registry) Register(op Op) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ops[op.Name()]; dup {
		return &tiling.ConfigError{Field: "op", Reason: fmt.Sprintf("%q is already registered", op.Name())}
	}
	r.ops[op.Name()] = op
	return nil
}

// Lookup returns the operator registered under name.
func (r *Registry) Lookup(name string) (Op, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	if !ok {
		return nil, &tiling.ConfigError{Field: "op", Reason: fmt.Sprintf("unknown operator %q", name)}
	}
	return op, nil
}

// Names returns the registered operator names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := lo.Keys(r.ops)
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Default holds every built-in operator.
var Default = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	var all []Op
	for _, op := range elementwiseOps {
		all = append(all, op)
	}
	for _, op := range broadcastBinaryOps {
		all = append(all, op)
	}
	for _, op := range reduceOps {
		all = append(all, op)
	}
	all = append(all, broadcastToOp{}, castOp{}, transposeOp{}, padOp{})
	for _, op := range all {
		if err := r.Register(op); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup returns the built-in operator called name.
func Lookup(name string) (Op, error) { return Default.Lookup(name) }

// Names lists the built-in operators.
func Names() []string { return Default.Names() }
