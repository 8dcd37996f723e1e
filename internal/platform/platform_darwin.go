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

//go:build darwin

package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/shalak/ropen/internal/util"
)

type darwinPlatform struct{}

// New returns the macOS implementation: AppleScript mounts under /Volumes
// and the open command.
func New() Platform {
	return &darwinPlatform{}
}

func (p *darwinPlatform) MountPoint(share string) string {
	return filepath.Join("/Volumes", share)
}

func (p *darwinPlatform) IsMounted(share string) bool {
	output, err := exec.Command("mount").Output()
	if err != nil {
		return false
	}

	mountPoint := p.MountPoint(share)
	// On macOS /tmp -> /private/tmp and /var -> /private/var, so resolve
	// symlinks before comparing against the mount table.
	if realPath, err := filepath.EvalSymlinks(mountPoint); err == nil {
		mountPoint = realPath
	}
	return containsMount(string(output), mountPoint)
}

// Mount mounts smb://host/share via AppleScript, the same mechanism Finder's
// "Connect to Server" uses, so Keychain credentials apply. It blocks until
// the mount shows up in the mount table.
func (p *darwinPlatform) Mount(host, share string) error {
	script := fmt.Sprintf("mount volume %q", "smb://"+host+"/"+share)
	cmd := exec.Command("osascript", "-e", script)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("osascript mount failed: %w, output: %s", err, string(output))
	}

	// osascript can return before the volume is browsable; wait for the
	// mount table to agree.
	ctx := context.Background()
	return util.Retry(ctx, func() error {
		if !p.IsMounted(share) {
			return fmt.Errorf("share %s not yet in mount table", share)
		}
		return nil
	}, util.MountPollOptions(ctx)...)
}

func (p *darwinPlatform) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open target does not exist: %s", path)
	}
	cmd := exec.Command("open", path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch open: %w", err)
	}
	// Reap the child without waiting on the opened application.
	go cmd.Wait()
	return nil
}
