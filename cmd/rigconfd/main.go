package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lc/rigconf/internal/config"
	"github.com/lc/rigconf/internal/filesys"
	"github.com/lc/rigconf/internal/log"
	"github.com/lc/rigconf/internal/manager"
	"github.com/lc/rigconf/internal/project"
	"github.com/lc/rigconf/internal/settings"
	"github.com/lc/rigconf/pkg/api"
)

func main() {
	// load bootstrap config
	cfg, err := config.New().Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// build deps and the process-wide manager
	osfs := filesys.OS()
	mgr, err := manager.Shared(manager.Deps{
		Catalog:  project.NewCatalog(osfs, cfg.Projects.Dir),
		Settings: settings.NewStore(osfs, cfg.Projects.SettingsFile),
		Fallback: cfg.Projects.Fallback,
	})
	if err != nil {
		log.Fatalf("initial project load: %v", err)
	}
	log.Info("active project", "project", mgr.Active().Name())

	// start the api over unix socket
	apiSrv := api.New(mgr)
	sockPath := cfg.Socket.Path

	go func() {
		if err := apiSrv.ListenAndServe(sockPath); err != nil {
			log.Fatalf("api listen: %v", err)
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	<-sig
	log.Info("shutting down…")

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()

	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("api shutdown error: %v", err)
	}
}
