// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package identity manages master seeds and the per-algorithm keypairs
// derived from them.
//
// A Registry holds named Instances. Each Instance owns one master seed and at
// most one keypair per algorithm; every keypair is a pure function of the
// master seed and the algorithm tag.
package identity

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/demosnet/demoscore/internal/util"
)

// DefaultInstanceID is used when GetInstance is called without an id.
const DefaultInstanceID = "default"

// Registry maps instance ids to Instances. It creates instances lazily and
// never holds more than one per id.
type Registry struct {
	log *slog.Logger

	mu        sync.Mutex
	instances map[string]*Instance
}

// NewRegistry creates an empty registry. A nil logger uses util.Logger.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = util.Logger
	}
	return &Registry{
		log:       log,
		instances: make(map[string]*Instance),
	}
}

// GetInstance returns the instance for id, creating it if needed. An empty id
// selects DefaultInstanceID. A non-empty seed is applied with EnsureSeed.
func (r *Registry) GetInstance(id string, seed []byte) (*Instance, error) {
	if id == "" {
		id = DefaultInstanceID
	}

	r.mu.Lock()
	inst, ok := r.instances[id]
	if !ok {
		inst = newInstance(id, r.log)
		r.instances[id] = inst
	}
	r.mu.Unlock()

	if len(seed) > 0 {
		if err := inst.EnsureSeed(seed); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// Default returns the default instance.
func (r *Registry) Default() *Instance {
	inst, _ := r.GetInstance(DefaultInstanceID, nil)
	return inst
}

// RemoveInstance drops the instance and zeroes its key material.
// Returns false if no such instance existed.
func (r *Registry) RemoveInstance(id string) bool {
	r.mu.Lock()
	inst, ok := r.instances[id]
	delete(r.instances, id)
	r.mu.Unlock()

	if ok {
		inst.wipe()
	}
	return ok
}

// InstanceIDs returns the ids of all live instances, sorted.
func (r *Registry) InstanceIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.instances))
	for id := range r.instances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
