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
	"os"

	"github.com/spf13/cobra"

	"github.com/shalak/ropen/internal/netinfo"
	"github.com/shalak/ropen/internal/sender"
	"github.com/shalak/ropen/internal/shares"
	"github.com/shalak/ropen/internal/smburl"
)

var sendCmd = &cobra.Command{
	Use:   "send [path]",
	Short: "Resolve a path to its share URL and send it to the listener",
	Long: `Resolves a filesystem path to the Samba share exporting it, builds an
smb:// URL and sends it over TCP to a running "ropen listen".

The path defaults to the current working directory. A path outside every
configured share is reported but is not an error.

Examples:
  ropen send /srv/samba/media/movies/a.mp4
  ropen send`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVar(&flagClientHost, "host", "", "Listener host (default from settings)")
	sendCmd.Flags().IntVar(&flagClientPort, "port", 0, "Listener port (default from settings)")
	sendCmd.Flags().StringVar(&flagSMBConf, "smb-conf", "", "Path to the Samba share config (default from settings)")
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	url, ok, err := resolveURL(args, cfg.SMBConf)
	if err != nil || !ok {
		return err
	}

	if err := sender.Send(cfg.ClientAddr(), url, cfg.ConnectTimeout); err != nil {
		return err
	}
	fmt.Printf("Sent %s to %s\n", url, cfg.ClientAddr())
	return nil
}

// resolveURL maps the target path argument (or cwd) to its share URL.
// ok is false when no configured share contains the target; that case has
// already been reported to the user and must exit successfully.
func resolveURL(args []string, smbConf string) (url string, ok bool, err error) {
	target := ""
	if len(args) > 0 {
		target = args[0]
	} else {
		target, err = os.Getwd()
		if err != nil {
			return "", false, fmt.Errorf("failed to determine working directory: %w", err)
		}
	}

	table, err := shares.Load(smbConf)
	if err != nil {
		return "", false, err
	}

	match, ok := table.Resolve(target)
	if !ok {
		fmt.Printf("No matching share for %s\n", target)
		return "", false, nil
	}

	return smburl.Build(netinfo.FQDN(), match.Share, match.RelPath), true, nil
}
