// Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied. See the License for the
// specific language governing permissions and limitations
// under the License.

// Package environment decides whether a live host is attached to the panel
// and names the channel used to address it.
package environment

import (
	"os"
	"strings"
)

const (
	DefaultProbeEnv        = "NUI_PARENT_RESOURCE"
	DefaultFallbackChannel = "police-tablet"
)

// Probe reports the host-provided resource name, if a host is attached.
type Probe func() (string, bool)

// EnvProbe reads the resource name the host exports into the panel's environment.
func EnvProbe(name string) Probe {
	return func() (string, bool) {
		v, ok := os.LookupEnv(name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
}

// StaticProbe always reports the given resource, or no host when it is empty.
func StaticProbe(resource string) Probe {
	return func() (string, bool) {
		return resource, resource != ""
	}
}

type Detector struct {
	probe    Probe
	fallback string
}

func NewDetector(probe Probe, fallback string) *Detector {
	if probe == nil {
		probe = EnvProbe(DefaultProbeEnv)
	}
	if fallback == "" {
		fallback = DefaultFallbackChannel
	}
	return &Detector{probe: probe, fallback: fallback}
}

// IsHostAttached runs the probe on every call.
func (d *Detector) IsHostAttached() bool {
	_, ok := d.probe()
	return ok
}

// ChannelID returns the host resource name, or the fallback identity in
// standalone mode.
func (d *Detector) ChannelID() string {
	if name, ok := d.probe(); ok {
		return name
	}
	return d.fallback
}
