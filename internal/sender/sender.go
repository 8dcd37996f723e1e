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

// Package sender delivers a share URL to the listener over a single-use TCP
// connection. The payload is the raw UTF-8 bytes of the URL; the connection
// close marks the message boundary, so there is no framing and no reply.
package sender

import (
	"fmt"
	"net"
	"time"
)

// Send dials addr, writes url and closes the connection. Any failure is
// returned as-is; there are no retries.
func Send(addr, url string, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(url)); err != nil {
		return fmt.Errorf("failed to send url to %s: %w", addr, err)
	}
	return nil
}
