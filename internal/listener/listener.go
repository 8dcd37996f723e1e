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

// Package listener receives share URLs over TCP, mounts the share when
// needed and opens the target path.
package listener

import (
	"errors"
	"fmt"
	"io"
	"net"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"

	"github.com/shalak/ropen/internal/platform"
	"github.com/shalak/ropen/internal/smburl"
)

// maxPayload bounds a single connection's payload. URLs are a few hundred
// bytes; anything near this limit is garbage.
const maxPayload = 64 * 1024

// Listener accepts one connection at a time, reads a share URL from it and
// dispatches mount/open to the platform. Connections arrive from a human
// triggering one open at a time, so handling is strictly sequential.
type Listener struct {
	platform platform.Platform
	log      *logrus.Logger
	lock     *flock.Flock
	ln       net.Listener
}

// New creates a listener backed by the given platform integration.
func New(p platform.Platform, log *logrus.Logger) *Listener {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Listener{platform: p, log: log}
}

// Start acquires the single-instance lock and binds addr. It does not accept
// connections; call Serve for that.
func (l *Listener) Start(addr, lockPath string) error {
	if lockPath != "" {
		l.lock = flock.New(lockPath)
		locked, err := l.lock.TryLock()
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if !locked {
			return fmt.Errorf("another listener instance is already running")
		}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		if l.lock != nil {
			l.lock.Unlock()
		}
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	l.ln = ln
	l.log.WithField("addr", ln.Addr().String()).Info("listening")
	return nil
}

// Addr returns the bound address. Only valid after Start.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Serve runs the accept loop until Close. Per-connection failures are logged
// and never stop the loop.
func (l *Listener) Serve() error {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			l.log.WithError(err).Error("accept failed")
			continue
		}
		l.handleConn(conn)
	}
}

// Close stops the accept loop and releases the instance lock.
func (l *Listener) Close() error {
	var err error
	if l.ln != nil {
		err = l.ln.Close()
	}
	if l.lock != nil {
		l.lock.Unlock()
	}
	return err
}

// handleConn reads one URL from the connection and acts on it. The message
// boundary is the peer closing its write side; there is no framing.
func (l *Listener) handleConn(conn net.Conn) {
	defer conn.Close()

	log := l.log.WithFields(logrus.Fields{
		"conn":   uuid.NewString()[:8],
		"remote": conn.RemoteAddr().String(),
	})

	data, err := readAll(conn)
	if err != nil {
		log.WithError(err).Warn("failed to read payload")
		return
	}
	if !utf8.Valid(data) {
		log.Warn("ignoring non-UTF-8 payload")
		return
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		log.Warn("ignoring empty payload")
		return
	}
	log.WithField("url", raw).Info("received")

	u, err := smburl.Parse(raw)
	if err != nil {
		log.WithError(err).Warn("ignoring non-smb request")
		return
	}

	if l.platform.IsMounted(u.Share) {
		log.WithField("share", u.Share).Debug("share already mounted")
	} else {
		log.WithFields(logrus.Fields{"host": u.Host, "share": u.Share}).Info("mounting share")
		if err := l.platform.Mount(u.Host, u.Share); err != nil {
			log.WithError(err).Error("failed to mount share")
			return
		}
	}

	target := l.platform.MountPoint(u.Share)
	if u.RelPath != "" {
		target = filepath.Join(target, filepath.FromSlash(u.RelPath))
	}
	log.WithField("path", target).Info("opening")
	if err := l.platform.Open(target); err != nil {
		log.WithError(err).Error("failed to open path")
	}
}

// readAll drains the connection up to maxPayload bytes.
func readAll(conn net.Conn) ([]byte, error) {
	return io.ReadAll(io.LimitReader(conn, maxPayload))
}
