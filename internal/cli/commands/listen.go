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
	"os"
	"os/signal"
	"syscall"

	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shalak/ropen/internal/config"
	"github.com/shalak/ropen/internal/listener"
	"github.com/shalak/ropen/internal/platform"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Receive share URLs, mount the share and open the target",
	Long: `Binds the loopback port and waits for smb:// URLs from "ropen send".
For each URL, the corresponding share is mounted if it is not already, and
the target path is opened with the OS default handler.

Runs in the foreground until interrupted. Typically started from a shell
wrapper alongside the SSH tunnel.`,
	Args: cobra.NoArgs,
	RunE: runListen,
}

var listenVerbose bool

func init() {
	rootCmd.AddCommand(listenCmd)
	listenCmd.Flags().IntVar(&flagClientPort, "port", 0, "Port to listen on (default from settings)")
	listenCmd.Flags().BoolVarP(&listenVerbose, "verbose", "v", false, "Enable debug logging")
}

func runListen(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := config.EnsureConfigDir(); err != nil {
		return err
	}

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if listenVerbose {
		log.SetLevel(logrus.DebugLevel)
	}

	l := listener.New(platform.New(), log)
	if err := l.Start(cfg.ListenAddr(), config.LockPath()); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig.String()).Info("shutting down")
		l.Close()
	}()

	return l.Serve()
}
