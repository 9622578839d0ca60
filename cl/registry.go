// Copyright 2025 Google LLC
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

package cl

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Constructor returns an API implementation given an implementation
// specific configuration string, possibly empty.
type Constructor func(config string) (API, error)

var (
	registryMu      sync.RWMutex
	constructors    = make(map[string]Constructor)
	firstRegistered string
)

// Register makes an API implementation available under name.
//
// Call Register during the initialization of a package.
func Register(name string, constructor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if len(constructors) == 0 {
		firstRegistered = name
	}
	constructors[name] = constructor
}

// Registered returns the names of the registered implementations, sorted.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the name of the first registered implementation.
func Default() string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return firstRegistered
}

// New returns a new API implementation given its registered name.
func New(name, config string) (API, error) {
	registryMu.RLock()
	constructor, found := constructors[name]
	registryMu.RUnlock()
	if !found {
		return nil, errors.Errorf("no native compute API registered as %q: available implementations are %q", name, Registered())
	}
	api, err := constructor(config)
	if err != nil {
		return nil, errors.WithMessagef(err, "cannot create native compute API %q", name)
	}
	return api, nil
}
