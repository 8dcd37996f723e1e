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

// Package smburl builds and parses smb:// share URLs.
//
// The URL shape is smb://<host>/<share>/<relative/path>. No percent-encoding
// is applied in either direction; paths travel verbatim.
package smburl

import (
	"fmt"
	"net/url"
	"strings"
)

// URL is a parsed smb:// URL.
type URL struct {
	Host    string
	Share   string
	RelPath string
}

// Build formats an smb:// URL for a path inside a share. An empty relPath
// addresses the share root and produces no trailing slash.
func Build(host, share, relPath string) string {
	u := "smb://" + host + "/" + share
	if relPath != "" {
		u += "/" + relPath
	}
	return u
}

// String re-renders the URL in its wire form.
func (u URL) String() string {
	return Build(u.Host, u.Share, u.RelPath)
}

// Parse splits raw into host, share and path-within-share. It rejects any
// scheme other than smb and URLs that name no host or no share.
func Parse(raw string) (URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return URL{}, fmt.Errorf("invalid smb url %q: %w", raw, err)
	}
	if parsed.Scheme != "smb" {
		return URL{}, fmt.Errorf("invalid scheme %q: expected smb", parsed.Scheme)
	}
	if parsed.Hostname() == "" {
		return URL{}, fmt.Errorf("smb url %q has no host", raw)
	}

	parts := strings.SplitN(strings.Trim(parsed.Path, "/"), "/", 2)
	if parts[0] == "" {
		return URL{}, fmt.Errorf("smb url %q has no share", raw)
	}

	u := URL{Host: parsed.Hostname(), Share: parts[0]}
	if len(parts) > 1 {
		u.RelPath = parts[1]
	}
	return u, nil
}
