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

//go:build !darwin

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

type otherPlatform struct{}

// New returns a limited implementation for non-macOS systems: xdg-open for
// opening, no automatic mounting.
func New() Platform {
	return &otherPlatform{}
}

func (p *otherPlatform) MountPoint(share string) string {
	return filepath.Join("/mnt", share)
}

func (p *otherPlatform) IsMounted(share string) bool {
	output, err := exec.Command("mount").Output()
	if err != nil {
		return false
	}
	return containsMount(string(output), p.MountPoint(share))
}

func (p *otherPlatform) Mount(host, share string) error {
	return fmt.Errorf("automatic mounting is not supported on %s: mount //%s/%s at %s manually",
		runtime.GOOS, host, share, p.MountPoint(share))
}

func (p *otherPlatform) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open target does not exist: %s", path)
	}
	cmd := exec.Command("xdg-open", path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch xdg-open: %w", err)
	}
	go cmd.Wait()
	return nil
}
