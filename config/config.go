package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config carries the daemon's runtime settings.
type Config struct {
	RPCAddress   string   `toml:"RPCAddress"`
	DataDir      string   `toml:"DataDir"`
	NativeSymbol string   `toml:"NativeSymbol"`
	Environment  string   `toml:"Environment"`
	LogFile      string   `toml:"LogFile"`
	GenesisAdmin []string `toml:"GenesisAdmin"`
}

// Load reads the configuration from the given path, creating a default file
// when none exists yet.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	for _, undecoded := range meta.Undecoded() {
		if len(undecoded) == 1 && undecoded[0] == "AdminKey" {
			return nil, fmt.Errorf("config file %s uses the removed AdminKey field; list admin addresses under GenesisAdmin", path)
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.RPCAddress) == "" {
		c.RPCAddress = "127.0.0.1:8645"
	}
	if strings.TrimSpace(c.NativeSymbol) == "" {
		c.NativeSymbol = "RHT"
	}
	if c.GenesisAdmin == nil {
		c.GenesisAdmin = []string{}
	}
}

// Validate rejects configurations the daemon cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RPCAddress) == "" {
		return fmt.Errorf("RPCAddress must not be empty")
	}
	for _, admin := range c.GenesisAdmin {
		if _, err := ParseAddress(admin); err != nil {
			return fmt.Errorf("GenesisAdmin entry %q: %w", admin, err)
		}
	}
	return nil
}

// AdminAddresses decodes the configured genesis admin entries.
func (c *Config) AdminAddresses() ([][20]byte, error) {
	out := make([][20]byte, 0, len(c.GenesisAdmin))
	for _, admin := range c.GenesisAdmin {
		addr, err := ParseAddress(admin)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	return out, nil
}

// ParseAddress decodes a 20-byte hex address with optional 0x prefix.
func ParseAddress(s string) ([20]byte, error) {
	var addr [20]byte
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return addr, fmt.Errorf("invalid address: %w", err)
	}
	if len(raw) != len(addr) {
		return addr, fmt.Errorf("invalid address: expected %d bytes, got %d", len(addr), len(raw))
	}
	copy(addr[:], raw)
	return addr, nil
}

func createDefault(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
