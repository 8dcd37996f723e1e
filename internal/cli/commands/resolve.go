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

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [path]",
	Short: "Print the share URL for a path without sending it",
	Long: `Runs the same share resolution as "ropen send" and prints the
resulting smb:// URL instead of sending it. Useful for checking the share
configuration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&flagSMBConf, "smb-conf", "", "Path to the Samba share config (default from settings)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	url, ok, err := resolveURL(args, cfg.SMBConf)
	if err != nil || !ok {
		return err
	}
	fmt.Println(url)
	return nil
}
