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

package backend

// Config holds configuration options for the adapter.
type Config struct {
	// CapabilityCacheSize is the maximum number of platforms with a cached
	// capability record (default 16). A negative size disables the cache:
	// capabilities are queried on every call needing them.
	CapabilityCacheSize int
}

func (cfg Config) withDefaults() Config {
	const defaultCapabilityCacheSize = 16
	if cfg.CapabilityCacheSize == 0 {
		cfg.CapabilityCacheSize = defaultCapabilityCacheSize
	}
	return cfg
}
