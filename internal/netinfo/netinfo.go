// Copyright 2024 ropen Authors
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

// Package netinfo determines the fully-qualified name this host should be
// addressed by in generated share URLs.
package netinfo

import (
	"net"
	"os"
	"strings"
)

// Swappable for tests.
var (
	lookupHost = net.LookupHost
	lookupAddr = net.LookupAddr
)

// FQDN returns this host's fully-qualified domain name. The bare hostname is
// returned when qualification fails; a URL with a short name still works on
// LANs with search domains.
func FQDN() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return Qualify(hostname)
}

// Qualify resolves hostname to a dotted name. A hostname that already
// contains a dot is used as-is; otherwise its addresses are reverse-resolved
// until one yields a qualified name.
func Qualify(hostname string) string {
	if strings.Contains(hostname, ".") {
		return hostname
	}

	addrs, err := lookupHost(hostname)
	if err != nil {
		return hostname
	}
	for _, addr := range addrs {
		names, err := lookupAddr(addr)
		if err != nil {
			continue
		}
		for _, name := range names {
			name = strings.TrimSuffix(name, ".")
			if strings.Contains(name, ".") {
				return name
			}
		}
	}
	return hostname
}
