package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bountyd.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RPCAddress != "127.0.0.1:8645" {
		t.Fatalf("unexpected default RPC address %q", cfg.RPCAddress)
	}
	if cfg.NativeSymbol != "RHT" {
		t.Fatalf("unexpected default native symbol %q", cfg.NativeSymbol)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default file written: %v", err)
	}
}

func TestLoadParsesAdmins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bountyd.toml")
	body := `
RPCAddress = "0.0.0.0:9000"
NativeSymbol = "rht"
GenesisAdmin = ["0x00000000000000000000000000000000000000a1"]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	admins, err := cfg.AdminAddresses()
	if err != nil {
		t.Fatalf("admin addresses: %v", err)
	}
	if len(admins) != 1 || admins[0][19] != 0xA1 {
		t.Fatalf("unexpected admins %v", admins)
	}
}

func TestLoadRejectsBadAdminAndRemovedField(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte(`GenesisAdmin = ["nope"]`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected invalid admin to fail")
	}

	removed := filepath.Join(dir, "removed.toml")
	if err := os.WriteFile(removed, []byte(`AdminKey = "secret"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(removed); err == nil {
		t.Fatalf("expected removed AdminKey field to fail")
	}
}

func TestParseAddress(t *testing.T) {
	if _, err := ParseAddress("0x0102030405060708090a0b0c0d0e0f1011121314"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := ParseAddress("0x0102"); err == nil {
		t.Fatalf("expected short address to fail")
	}
	if _, err := ParseAddress("zz"); err == nil {
		t.Fatalf("expected non-hex address to fail")
	}
}
