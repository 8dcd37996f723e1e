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

	"github.com/shalak/ropen/internal/shares"
)

var sharesCmd = &cobra.Command{
	Use:   "shares",
	Short: "List the configured shares",
	Long:  `Prints the share table parsed from the Samba config: share name and canonical base directory, in file order.`,
	Args:  cobra.NoArgs,
	RunE:  runShares,
}

func init() {
	rootCmd.AddCommand(sharesCmd)
	sharesCmd.Flags().StringVar(&flagSMBConf, "smb-conf", "", "Path to the Samba share config (default from settings)")
}

func runShares(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	table, err := shares.Load(cfg.SMBConf)
	if err != nil {
		return err
	}
	if table.Len() == 0 {
		fmt.Printf("No shares configured in %s\n", cfg.SMBConf)
		return nil
	}

	for _, e := range table.Entries() {
		fmt.Printf("%-20s %s\n", e.Name, e.Path)
	}
	return nil
}
