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

package integration

import (
	"net"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/shalak/ropen/internal/sender"
	"github.com/shalak/ropen/internal/smburl"
)

const (
	eventuallyTimeout = 5 * time.Second
	pollInterval      = 20 * time.Millisecond
)

func TestSendToListen(t *testing.T) {
	g := NewWithT(t)

	p := newRecordingPlatform()
	_, addr := startListener(t, p)

	url := smburl.Build("nas.example.com", "media", "movies/a.mp4")
	g.Expect(sender.Send(addr, url, 2*time.Second)).To(Succeed())

	g.Eventually(p.opens, eventuallyTimeout, pollInterval).Should(
		Equal([]string{"/Volumes/media/movies/a.mp4"}))
	g.Expect(p.mounts()).To(Equal([]string{"//nas.example.com/media"}))
}

func TestSendToListen_AlreadyMounted(t *testing.T) {
	g := NewWithT(t)

	p := newRecordingPlatform("media")
	_, addr := startListener(t, p)

	g.Expect(sender.Send(addr, "smb://nas.example.com/media/docs", 2*time.Second)).To(Succeed())

	g.Eventually(p.opens, eventuallyTimeout, pollInterval).Should(
		Equal([]string{"/Volumes/media/docs"}))
	g.Expect(p.mounts()).To(BeEmpty(), "already-mounted share must not be mounted again")
}

func TestListenerResilience(t *testing.T) {
	g := NewWithT(t)

	p := newRecordingPlatform("media")
	_, addr := startListener(t, p)

	// Garbage first: raw bytes that are not valid UTF-8, then a payload
	// with the wrong scheme.
	conn, err := net.Dial("tcp", addr)
	g.Expect(err).NotTo(HaveOccurred())
	_, err = conn.Write([]byte{0xc3, 0x28, 0xa0, 0xa1})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(conn.Close()).To(Succeed())

	g.Expect(sender.Send(addr, "ftp://nas.example.com/media/a", 2*time.Second)).To(Succeed())

	// The loop must still be alive and process a valid URL.
	g.Expect(sender.Send(addr, "smb://nas.example.com/media/ok.txt", 2*time.Second)).To(Succeed())

	g.Eventually(p.opens, eventuallyTimeout, pollInterval).Should(
		Equal([]string{"/Volumes/media/ok.txt"}))
	g.Expect(p.mounts()).To(BeEmpty())
}

func TestSequentialConnections(t *testing.T) {
	g := NewWithT(t)

	p := newRecordingPlatform("media")
	_, addr := startListener(t, p)

	urls := []string{
		"smb://nas.example.com/media/a",
		"smb://nas.example.com/media/b",
		"smb://nas.example.com/media/c",
	}
	for _, u := range urls {
		g.Expect(sender.Send(addr, u, 2*time.Second)).To(Succeed())
	}

	g.Eventually(p.opens, eventuallyTimeout, pollInterval).Should(Equal([]string{
		"/Volumes/media/a",
		"/Volumes/media/b",
		"/Volumes/media/c",
	}))
}

func TestMountFailureSkipsOpen(t *testing.T) {
	g := NewWithT(t)

	p := newRecordingPlatform()
	p.mountErr = errMountDenied
	_, addr := startListener(t, p)

	g.Expect(sender.Send(addr, "smb://nas.example.com/media/a", 2*time.Second)).To(Succeed())

	g.Eventually(p.mounts, eventuallyTimeout, pollInterval).Should(HaveLen(1))
	g.Consistently(p.opens, 200*time.Millisecond, pollInterval).Should(BeEmpty())
}
