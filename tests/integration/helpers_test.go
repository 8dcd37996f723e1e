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

// Package integration exercises the listener over real TCP connections with
// the platform integration faked out, so mount/open side effects never touch
// the host running the tests.
package integration

import (
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	logrus "github.com/sirupsen/logrus"

	"github.com/shalak/ropen/internal/listener"
)

var errMountDenied = errors.New("mount denied")

// recordingPlatform is a platform.Platform that records calls.
type recordingPlatform struct {
	mu         sync.Mutex
	mounted    map[string]bool
	mountErr   error
	mountCalls []string
	openCalls  []string
}

func newRecordingPlatform(mounted ...string) *recordingPlatform {
	p := &recordingPlatform{mounted: make(map[string]bool)}
	for _, share := range mounted {
		p.mounted[share] = true
	}
	return p
}

func (p *recordingPlatform) MountPoint(share string) string {
	return filepath.Join("/Volumes", share)
}

func (p *recordingPlatform) IsMounted(share string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mounted[share]
}

func (p *recordingPlatform) Mount(host, share string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mountCalls = append(p.mountCalls, "//"+host+"/"+share)
	if p.mountErr != nil {
		return p.mountErr
	}
	p.mounted[share] = true
	return nil
}

func (p *recordingPlatform) Open(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.openCalls = append(p.openCalls, path)
	return nil
}

func (p *recordingPlatform) mounts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.mountCalls...)
}

func (p *recordingPlatform) opens() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.openCalls...)
}

// startListener binds a listener on an ephemeral loopback port and serves it
// until the test ends. Returns the listener and its dial address.
func startListener(t *testing.T, p *recordingPlatform) (*listener.Listener, string) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	l := listener.New(p, log)
	if err := l.Start("127.0.0.1:0", filepath.Join(t.TempDir(), "listener.lock")); err != nil {
		t.Fatalf("failed to start listener: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	go l.Serve()

	return l, l.Addr().String()
}
