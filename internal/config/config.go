package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "kniazhych/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

// Config holds the settings of the local server.
type Config struct {
	Addr        string `json:"addr"`
	WebDir      string `json:"web_dir"`
	MobileDir   string `json:"mobile_dir"`
	OpenBrowser bool   `json:"open_browser"`
}

// InitConfig starts from DefaultConfig and overlays the first config.json found
// in the XDG config directories.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return &InvalidConfig{"addr is empty"}
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return &InvalidConfig{fmt.Sprintf("addr %q: %v", c.Addr, err)}
	}
	if c.WebDir == "" {
		return &InvalidConfig{"web_dir is empty"}
	}
	return nil
}

// BrowserURL is the address a local browser should open.
func (c *Config) BrowserURL() string {
	host, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return "http://" + c.Addr + "/"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

// Save writes the config to the user's XDG config directory.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a any, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a any) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
