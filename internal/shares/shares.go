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

// Package shares loads a Samba share definition file and resolves local
// filesystem paths to the share that exports them.
package shares

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Entry is one exported share: the canonical base directory and the share
// name it is published under.
type Entry struct {
	Name string
	Path string
}

// Table is the ordered set of share entries parsed from smb.conf.
// Order follows the file; duplicate base directories keep their first
// position but take the name of the last section that declared them.
type Table struct {
	entries []Entry
}

// Match is a successful resolution: the share exporting the target and the
// target's path relative to the share root ("" when the target is the root
// itself).
type Match struct {
	Share   string
	RelPath string
}

// Load parses the share definition file at confPath.
//
// Sections are share names. A section named "global" (any case) is skipped,
// as is any section that does not declare a path key. Comments start with
// '#' or ';', including trailing comments on a value line. Declared paths
// are canonicalized so that matching later happens on resolved paths.
func Load(confPath string) (*Table, error) {
	f, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, confPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load share config %s: %w", confPath, err)
	}

	t := &Table{}
	index := make(map[string]int)
	for _, sec := range f.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection || strings.EqualFold(name, "global") {
			continue
		}
		if !sec.HasKey("path") {
			continue
		}
		base := Canonicalize(sec.Key("path").String())
		if i, ok := index[base]; ok {
			// Last section wins, first position kept.
			t.entries[i].Name = name
			continue
		}
		index[base] = len(t.entries)
		t.entries = append(t.entries, Entry{Name: name, Path: base})
	}
	return t, nil
}

// Entries returns the share entries in file order.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Len returns the number of configured shares.
func (t *Table) Len() int {
	return len(t.entries)
}

// Resolve maps target to the share whose base directory contains it.
// When several shares nest, the longest base directory wins. The second
// return is false when no configured share contains the target.
func (t *Table) Resolve(target string) (Match, bool) {
	target = Canonicalize(target)

	best := -1
	for i, e := range t.entries {
		if target != e.Path && !strings.HasPrefix(target, e.Path+"/") {
			continue
		}
		if best == -1 || len(e.Path) > len(t.entries[best].Path) {
			best = i
		}
	}
	if best == -1 {
		return Match{}, false
	}

	e := t.entries[best]
	rel := strings.TrimPrefix(strings.TrimPrefix(target, e.Path), "/")
	return Match{Share: e.Name, RelPath: rel}, true
}

// Canonicalize makes path absolute and resolves symlinks. When the path does
// not exist the cleaned absolute form is returned, so nonexistent targets
// still match against their configured ancestors.
func Canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return filepath.Clean(abs)
}
