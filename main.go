package main

import (
	"time"

	"github.com/fitquest/fitquest/config"
	"github.com/fitquest/fitquest/routes"
	"github.com/fitquest/fitquest/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	// Opens the store, migrates the schema and seeds the catalog.
	db := config.InitDatabase()

	sessions := utils.NewSessionStore(time.Duration(cfg.SessionTTLHours) * time.Hour)

	r := routes.SetupRouter(db, sessions)

	if cfg.OpenBrowser {
		utils.OpenBrowser("http://localhost:" + cfg.AppPort)
	}

	utils.Sugar.Infof("FitQuest running on http://localhost:%s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
