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

package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/shalak/ropen/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version info for --version flag
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = getVersionString()
}

// getVersionString returns the version string with build info
func getVersionString() string {
	buildDate := date
	if ts, err := strconv.ParseInt(date, 10, 64); err == nil {
		buildDate = time.Unix(ts, 0).Format("2006-01-02")
	}
	return fmt.Sprintf("%s (%s, commit: %s)", version, buildDate, commit)
}

var rootCmd = &cobra.Command{
	Use:   "ropen",
	Short: "Open remote files on your local machine over an SSH tunnel",
	Long: `ropen bridges a filesystem path on a file server to the "open this
file" action on your local machine.

On the server, "ropen send <path>" maps the path to the Samba share that
exports it, builds an smb:// URL and pushes it through a pre-established
reverse SSH tunnel. On your machine, "ropen listen" receives the URL, mounts
the share if needed and opens the file or folder with the OS default handler.`,
}

// Flag values shared by the resolver-side commands (send, resolve, shares).
var (
	flagClientHost string
	flagClientPort int
	flagSMBConf    string
)

// loadSettings layers command-line flags over env vars and settings.yaml.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("host") {
		cfg.ClientHost = flagClientHost
	}
	if cmd.Flags().Changed("port") {
		cfg.ClientPort = flagClientPort
	}
	if cmd.Flags().Changed("smb-conf") {
		cfg.SMBConf = flagSMBConf
	}
	return cfg, nil
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("ropen version {{.Version}}\n")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
