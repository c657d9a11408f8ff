package main

import (
	"github.com/draftbox/draftbox/config"
	"github.com/draftbox/draftbox/models"
	"github.com/draftbox/draftbox/routes"
	"github.com/draftbox/draftbox/store/gormstore"
	"github.com/draftbox/draftbox/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{}, &models.Comment{})

	r := routes.SetupRouter(gormstore.New(db))

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
