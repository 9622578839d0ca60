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

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"
	"k8s.io/klog/v2"

	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
)

// Version is the version of the native API implemented by a platform.
type Version struct {
	Major, Minor int
}

// Compare returns -1, 0, or 1 if v is older, equal, or newer than other.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major < other.Major:
		return -1
	case v.Major > other.Major:
		return 1
	case v.Minor < other.Minor:
		return -1
	case v.Minor > other.Minor:
		return 1
	}
	return 0
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

const versionPrefix = "OpenCL "

// ParseVersion parses the "OpenCL <major>.<minor>" tuple of a platform
// version string. Text before the tuple is ignored.
func ParseVersion(s string) (Version, bool) {
	i := strings.Index(s, versionPrefix)
	if i < 0 {
		return Version{}, false
	}
	rest := s[i+len(versionPrefix):]
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		rest = rest[:i]
	}
	majorS, minorS, ok := strings.Cut(rest, ".")
	if !ok {
		return Version{}, false
	}
	major, err := strconv.Atoi(majorS)
	if err != nil || major < 0 {
		return Version{}, false
	}
	minor, err := strconv.Atoi(minorS)
	if err != nil || minor < 0 {
		return Version{}, false
	}
	return Version{Major: major, Minor: minor}, true
}

var version20 = Version{Major: 2, Minor: 0}

// Capabilities of a platform.
type Capabilities struct {
	// VersionString is the version reported by the platform.
	VersionString string
	// Version is the parsed VersionString. Only valid if Parsed is true.
	Version Version
	// Parsed is false if VersionString does not follow the version format.
	// Such a platform is considered current.
	Parsed bool
	// Extensions is the set of extension tokens reported by the platform.
	Extensions mapset.Set[string]
	// ExtensionsStatus is the status of the extension query. Extensions is
	// empty if the query failed.
	ExtensionsStatus cl.Int

	api                   cl.API
	platform              cl.PlatformID
	createProgramWithIL   extensionFunc[cl.CreateProgramWithILFunc]
	deviceFunctionPointer extensionFunc[cl.GetDeviceFunctionPointerFunc]
}

// LegacyQueues returns true if the platform lacks queue creation with a
// property list, that is if its version is older than 2.0.
func (c *Capabilities) LegacyQueues() bool {
	return c.Parsed && c.Version.Compare(version20) < 0
}

// CoreIL returns true if the platform creates programs from intermediate
// language with a core entry point, that is if its version is newer
// than 2.0.
func (c *Capabilities) CoreIL() bool {
	return !c.Parsed || c.Version.Compare(version20) > 0
}

// HasExtension returns true if the platform reports an extension token.
func (c *Capabilities) HasExtension(name string) bool {
	return c.Extensions.Contains(name)
}

// CreateProgramWithILKHR returns the extension entry point creating programs
// from intermediate language, or false if the platform does not provide it.
func (c *Capabilities) CreateProgramWithILKHR() (cl.CreateProgramWithILFunc, bool) {
	return c.createProgramWithIL.resolve(c.api, c.platform, cl.CreateProgramWithILKHR)
}

// DeviceFunctionPointer returns the extension entry point returning the
// device address of a function, or false if the platform does not provide it.
func (c *Capabilities) DeviceFunctionPointer() (cl.GetDeviceFunctionPointerFunc, bool) {
	return c.deviceFunctionPointer.resolve(c.api, c.platform, cl.GetDeviceFunctionPointerINTEL)
}

func (c *Capabilities) String() string {
	tier := "current"
	if c.LegacyQueues() {
		tier = "legacy"
	}
	return fmt.Sprintf("%q (%s, %d extensions)", c.VersionString, tier, c.Extensions.Cardinality())
}

// extensionFunc is an extension entry point resolved on first use.
type extensionFunc[F any] struct {
	once sync.Once
	fn   F
	ok   bool
}

func (e *extensionFunc[F]) resolve(api cl.API, platform cl.PlatformID, name string) (F, bool) {
	e.once.Do(func() {
		addr := api.GetExtensionFunctionAddressForPlatform(platform, name)
		if addr == nil {
			klog.V(2).Infof("platform %#x does not provide %s", platform, name)
			return
		}
		e.fn, e.ok = addr.(F)
		if !e.ok {
			klog.Warningf("platform %#x returned %T for %s", platform, addr, name)
		}
	})
	return e.fn, e.ok
}

// parseExtensions splits a space separated list of extension tokens.
func parseExtensions(s string) mapset.Set[string] {
	return mapset.NewSet(strings.Fields(s)...)
}

func queryCapabilities(api cl.API, platform cl.PlatformID) (*Capabilities, cl.Int) {
	query := func(name cl.PlatformInfo) func([]byte) (uint, cl.Int) {
		return func(value []byte) (uint, cl.Int) {
			return api.GetPlatformInfo(platform, name, value)
		}
	}
	version, status := hostlayout.QueryString(query(cl.PlatformVersion))
	if status != cl.Success {
		return nil, status
	}
	caps := &Capabilities{
		VersionString: version,
		api:           api,
		platform:      platform,
	}
	caps.Version, caps.Parsed = ParseVersion(version)
	if !caps.Parsed {
		klog.Warningf("cannot parse version %q of platform %#x: considering the platform as current", version, platform)
	}
	extensions, status := hostlayout.QueryString(query(cl.PlatformExtensions))
	caps.ExtensionsStatus = status
	if status != cl.Success {
		extensions = ""
	}
	caps.Extensions = parseExtensions(extensions)
	klog.V(1).Infof("platform %#x: %s", platform, caps)
	return caps, cl.Success
}

// capabilityCache caches the capabilities of the platforms.
type capabilityCache struct {
	api     cl.API
	entries *lru.Cache
	group   singleflight.Group
}

func newCapabilityCache(api cl.API, size int) (*capabilityCache, error) {
	c := &capabilityCache{api: api}
	if size < 0 {
		return c, nil
	}
	var err error
	if c.entries, err = lru.New(size); err != nil {
		return nil, err
	}
	return c, nil
}

type capabilityResult struct {
	caps   *Capabilities
	status cl.Int
}

// get returns the capabilities of a platform.
func (c *capabilityCache) get(platform cl.PlatformID) (*Capabilities, cl.Int) {
	if c.entries == nil {
		return queryCapabilities(c.api, platform)
	}
	if caps, ok := c.entries.Get(platform); ok {
		return caps.(*Capabilities), cl.Success
	}
	key := strconv.FormatUint(uint64(platform), 16)
	v, _, _ := c.group.Do(key, func() (any, error) {
		if caps, ok := c.entries.Get(platform); ok {
			return capabilityResult{caps: caps.(*Capabilities), status: cl.Success}, nil
		}
		klog.V(2).Infof("capability cache miss for platform %#x", platform)
		caps, status := queryCapabilities(c.api, platform)
		// Records with a failed extension query are not kept so that the
		// query is attempted again.
		if status == cl.Success && caps.ExtensionsStatus == cl.Success {
			c.entries.Add(platform, caps)
		}
		return capabilityResult{caps: caps, status: status}, nil
	})
	res := v.(capabilityResult)
	return res.caps, res.status
}

// purge removes all the records from the cache.
func (c *capabilityCache) purge() {
	if c.entries != nil {
		c.entries.Purge()
	}
}
