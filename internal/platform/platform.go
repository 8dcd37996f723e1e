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

// Package platform wraps the OS-level mount and open mechanisms behind an
// interface so the listener logic stays testable without touching real
// mounts.
package platform

import "strings"

// Platform is the OS integration surface the listener depends on.
type Platform interface {
	// MountPoint returns the local directory a share is (or would be)
	// mounted at.
	MountPoint(share string) string

	// IsMounted reports whether the share is currently mounted. State is
	// queried fresh on every call, never cached.
	IsMounted(share string) bool

	// Mount mounts the share exported by host and blocks until the mount
	// is visible or fails.
	Mount(host, share string) error

	// Open hands the path to the OS default-open mechanism. Fire and
	// forget: the opened application is not waited on.
	Open(path string) error
}

// containsMount reports whether mountPoint appears as a mount target in the
// output of the mount command. Lines look like
// "//user@host/share on /Volumes/share (smbfs, ...)".
func containsMount(mountOutput, mountPoint string) bool {
	for _, line := range strings.Split(mountOutput, "\n") {
		if strings.Contains(line, " on "+mountPoint+" ") ||
			strings.HasSuffix(line, " on "+mountPoint) {
			return true
		}
	}
	return false
}
