package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the sender and listener. All of them can be overridden by
// ~/.ropen/settings.yaml, then by ROPEN_* environment variables, then by
// command-line flags.
const (
	DefaultClientHost     = "localhost"
	DefaultClientPort     = 5555
	DefaultSMBConf        = "/etc/samba/smb.conf"
	DefaultConnectTimeout = 2 * time.Second
)

// getConfigDir returns the config directory path.
// Uses ROPEN_CONFIG_DIR env var if set, otherwise defaults to ~/.ropen.
// This is computed dynamically to support test isolation.
func getConfigDir() string {
	if dir := os.Getenv("ROPEN_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ropen")
}

// ConfigDir returns the configuration directory path
func ConfigDir() string {
	return getConfigDir()
}

// SettingsPath returns the settings file path
func SettingsPath() string {
	return filepath.Join(getConfigDir(), "settings.yaml")
}

// LockPath returns the listener lock file path
func LockPath() string {
	return filepath.Join(getConfigDir(), "listener.lock")
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(getConfigDir(), 0700)
}

// Settings holds the values shared by the sender and the listener.
type Settings struct {
	// ClientHost is the host the sender connects to (the machine running
	// `ropen listen` behind the SSH reverse tunnel).
	ClientHost string `yaml:"client_host"`

	// ClientPort is the TCP port the listener binds and the sender dials.
	ClientPort int `yaml:"client_port"`

	// SMBConf is the path to the Samba share definition file.
	SMBConf string `yaml:"smb_conf"`

	// ConnectTimeout bounds the sender's dial. Zero means DefaultConnectTimeout.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// ApplyDefaults fills zero-value fields with their defaults.
func (s *Settings) ApplyDefaults() {
	if s.ClientHost == "" {
		s.ClientHost = DefaultClientHost
	}
	if s.ClientPort == 0 {
		s.ClientPort = DefaultClientPort
	}
	if s.SMBConf == "" {
		s.SMBConf = DefaultSMBConf
	}
	if s.ConnectTimeout == 0 {
		s.ConnectTimeout = DefaultConnectTimeout
	}
}

// ClientAddr returns the host:port the sender dials.
func (s *Settings) ClientAddr() string {
	return fmt.Sprintf("%s:%d", s.ClientHost, s.ClientPort)
}

// ListenAddr returns the loopback address the listener binds.
func (s *Settings) ListenAddr() string {
	return fmt.Sprintf("127.0.0.1:%d", s.ClientPort)
}

// applyEnv overlays ROPEN_* environment variables onto s.
func (s *Settings) applyEnv() {
	if host := os.Getenv("ROPEN_CLIENT_HOST"); host != "" {
		s.ClientHost = host
	}
	if port := os.Getenv("ROPEN_CLIENT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			s.ClientPort = p
		}
	}
	if conf := os.Getenv("ROPEN_SMB_CONF"); conf != "" {
		s.SMBConf = conf
	}
}

// Load reads settings from ~/.ropen/settings.yaml (when present) and applies
// environment overrides and defaults. A missing settings file is not an error.
func Load() (*Settings, error) {
	var s Settings
	data, err := os.ReadFile(SettingsPath())
	if err == nil {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", SettingsPath(), err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	s.applyEnv()
	s.ApplyDefaults()
	return &s, nil
}
