package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roothash-pay/auditBounty/config"
	"github.com/roothash-pay/auditBounty/core/events"
	"github.com/roothash-pay/auditBounty/core/state"
	"github.com/roothash-pay/auditBounty/custody"
	"github.com/roothash-pay/auditBounty/native/bounty"
	"github.com/roothash-pay/auditBounty/observability/logging"
	"github.com/roothash-pay/auditBounty/rpc"
	"github.com/roothash-pay/auditBounty/storage"
)

// logEmitter forwards ledger events to the structured log so operators see
// state changes without an external indexer.
type logEmitter struct {
	log *slog.Logger
}

func (l logEmitter) Emit(evt events.Event) {
	l.log.Info("ledger event", "type", evt.EventType(), "event", evt)
}

func main() {
	configPath := flag.String("config", "bountyd.toml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "path", *configPath, "err", err)
		os.Exit(1)
	}

	logger := logging.Setup("bountyd", cfg.Environment, logging.Options{FilePath: cfg.LogFile})

	var db storage.Database
	if cfg.DataDir == "" {
		logger.Warn("no DataDir configured, ledger state is in-memory only")
		db = storage.NewMemDB()
	} else {
		ldb, err := storage.NewLevelDB(filepath.Join(cfg.DataDir, "bounty"))
		if err != nil {
			logger.Error("open database", "err", err)
			os.Exit(1)
		}
		db = ldb
	}
	defer db.Close()

	manager := state.NewManager(db)

	engine := bounty.NewEngine()
	engine.SetState(manager)
	engine.SetVault(custody.NewMemoryVault())
	engine.SetPauses(manager)
	engine.SetNativeSymbol(cfg.NativeSymbol)
	engine.SetEmitter(logEmitter{log: logger})

	admins, err := cfg.AdminAddresses()
	if err != nil {
		logger.Error("parse genesis admins", "err", err)
		os.Exit(1)
	}
	for _, admin := range admins {
		if err := manager.GrantRole(bounty.RoleAdmin, admin[:]); err != nil {
			logger.Error("grant genesis admin role", "err", err)
			os.Exit(1)
		}
	}

	server := rpc.NewServer(engine, logger)
	if err := server.Start(cfg.RPCAddress); err != nil {
		logger.Error("rpc server stopped", "err", err)
		os.Exit(1)
	}
}
