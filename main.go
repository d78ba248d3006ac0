package main

import (
	"log"

	"github.com/philipobiorah/attendance-app/config"
	"github.com/philipobiorah/attendance-app/database"
	"github.com/philipobiorah/attendance-app/handlers"
	"github.com/philipobiorah/attendance-app/sessions"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}

	manager := sessions.NewManager(db)
	manager.RotateEvery = cfg.RotateEvery

	app := &handlers.App{
		Sessions: manager,
		Recorder: sessions.NewRecorder(db),
		BaseURL:  cfg.BaseURL,
	}

	if err := app.Router().Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
